package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/models"
)

func (a *App) lobbyCommand() *cli.Command {
	return &cli.Command{
		Name:  "lobby",
		Usage: "List all teams competing in the arena",
		Action: func(cCtx *cli.Context) error {
			teams, err := a.Client.Teams(cCtx.Context)
			if err != nil {
				return fmt.Errorf("failed to load teams: %w", err)
			}
			if len(teams) == 0 {
				fmt.Fprintln(a.Out, "No teams have registered yet.")
				return nil
			}

			w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tTEAM\tID\tSCORE\tSTATUS")
			for i, t := range teams {
				status := "INACTIVE"
				if t.Active {
					status = "ACTIVE"
				}
				fmt.Fprintf(w, "#%d\t%s\t%d\t%d\t%s\n", i+1, t.TeamName, t.ID, t.Score, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := lobbyStats(teams)
			fmt.Fprintf(a.Out, "\nTeams: %d  Active: %d  Total points: %d  High score: %d\n",
				stats.Total, stats.Active, stats.TotalPoints, stats.HighScore)
			return nil
		},
	}
}

type lobbySummary struct {
	Total       int
	Active      int
	TotalPoints int
	HighScore   int
}

func lobbyStats(teams []models.Team) lobbySummary {
	var s lobbySummary
	s.Total = len(teams)
	for _, t := range teams {
		if t.Active {
			s.Active++
		}
		s.TotalPoints += t.Score
		if t.Score > s.HighScore {
			s.HighScore = t.Score
		}
	}
	return s
}
