package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func (a *App) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Admin console",
		Subcommands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate against the admin endpoint",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "admin account name", Required: true},
					&cli.StringFlag{Name: "password", Usage: "admin password", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					err := a.Client.AdminLogin(cCtx.Context, cCtx.String("username"), cCtx.String("password"))
					if err != nil {
						return fmt.Errorf("admin login failed: %w", err)
					}
					fmt.Fprintln(a.Out, "Admin session established.")
					return nil
				},
			},
			{
				Name:  "teams",
				Usage: "List all teams with admin scope",
				Action: func(cCtx *cli.Context) error {
					teams, err := a.Client.AdminTeams(cCtx.Context)
					if err != nil {
						return fmt.Errorf("failed to fetch teams: %w", err)
					}
					w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tTEAM\tLEAD\tSCORE\tSTATUS")
					for _, t := range teams {
						status := "INACTIVE"
						if t.Active {
							status = "ACTIVE"
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", t.ID, t.TeamName, t.USNLead, t.Score, status)
					}
					return w.Flush()
				},
			},
			{
				Name:  "logs",
				Usage: "Show the backend log feed",
				Action: func(cCtx *cli.Context) error {
					logs, err := a.Client.AdminLogs(cCtx.Context)
					if err != nil {
						return fmt.Errorf("failed to fetch logs: %w", err)
					}
					for _, l := range logs {
						fmt.Fprintf(a.Out, "[%s] %s %s\n", l.Timestamp, l.Level, l.Message)
					}
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "Drop the stored admin session",
				Action: func(cCtx *cli.Context) error {
					if err := a.Client.AdminLogout(); err != nil {
						return err
					}
					fmt.Fprintln(a.Out, "Admin session cleared.")
					return nil
				},
			},
		},
	}
}
