package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/minetheflag/mtf/client"
	"github.com/minetheflag/mtf/models"
)

func (a *App) teamCommand() *cli.Command {
	return &cli.Command{
		Name:   "team",
		Usage:  "Show your team, or create/join one",
		Action: a.showTeam,
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a team you will lead",
				ArgsUsage: "<name>",
				Action:    a.createTeam,
			},
			{
				Name:      "join",
				Usage:     "Join an existing team by name",
				ArgsUsage: "<name>",
				Action:    a.joinTeam,
			},
		},
	}
}

func (a *App) showTeam(cCtx *cli.Context) error {
	member, err := a.Client.CurrentMember(cCtx.Context)
	if errors.Is(err, client.ErrNoSession) {
		fmt.Fprintln(a.Out, "Not logged in. Run `mtf login` first.")
		return nil
	}
	if err != nil {
		return err
	}
	if member.TeamID == nil {
		fmt.Fprintf(a.Out, "%s (%s) has no team yet.\n", member.Name, member.USN)
		fmt.Fprintln(a.Out, "Use `mtf team create <name>` or `mtf team join <name>`.")
		return nil
	}

	// The team record and its roster are independent fetches, loaded
	// concurrently like the two page sections they back.
	var (
		team    *models.Team
		roster  []models.Member
		g, gCtx = errgroup.WithContext(cCtx.Context)
	)
	g.Go(func() error {
		var err error
		team, err = a.Client.Team(gCtx, *member.TeamID)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = a.Client.TeamMembers(gCtx, *member.TeamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load team: %w", err)
	}

	status := "INACTIVE"
	if team.Active {
		status = "ACTIVE"
	}
	fmt.Fprintf(a.Out, "TEAM: %s\n", team.TeamName)
	fmt.Fprintf(a.Out, "Score: %d  Status: %s\n\n", team.Score, status)
	fmt.Fprintf(a.Out, "Team members (%d/3):\n", len(roster))

	w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	for _, m := range roster {
		lead := ""
		if m.USN == team.USNLead {
			lead = "(lead)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", m.Name, m.USN, lead)
	}
	return w.Flush()
}

func (a *App) createTeam(cCtx *cli.Context) error {
	name := cCtx.Args().First()
	if name == "" {
		return errors.New("usage: mtf team create <name>")
	}

	member, err := a.Client.CurrentMember(cCtx.Context)
	if errors.Is(err, client.ErrNoSession) {
		fmt.Fprintln(a.Out, "Not logged in. Run `mtf login` first.")
		return nil
	}
	if err != nil {
		return err
	}

	created, err := a.Client.CreateTeam(cCtx.Context, name, member.USN)
	if errors.Is(err, client.ErrTeamNameTaken) {
		fmt.Fprintln(a.Out, "Team name taken. Choose a different name or join the other one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	fmt.Fprintf(a.Out, "Team created successfully! %s (#%d)\n", created.TeamName, created.TeamID)
	return nil
}

func (a *App) joinTeam(cCtx *cli.Context) error {
	name := cCtx.Args().First()
	if name == "" {
		return errors.New("usage: mtf team join <name>")
	}

	member, err := a.Client.CurrentMember(cCtx.Context)
	if errors.Is(err, client.ErrNoSession) {
		fmt.Fprintln(a.Out, "Not logged in. Run `mtf login` first.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.Client.JoinTeam(cCtx.Context, name, member.USN); err != nil {
		return fmt.Errorf("failed to join team: %w", err)
	}
	fmt.Fprintln(a.Out, "Joined team successfully!")
	return nil
}
