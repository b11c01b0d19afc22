package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/leaderboard"
	"github.com/minetheflag/mtf/models"
)

func (a *App) leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "Show the standings, optionally following live updates",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "keep following pushed updates"},
		},
		Action: func(cCtx *cli.Context) error {
			entries, err := a.Client.Leaderboard(cCtx.Context)
			if err != nil {
				return fmt.Errorf("failed to load leaderboard: %w", err)
			}
			a.printLeaderboard(entries)

			if !cCtx.Bool("watch") {
				return nil
			}
			return a.watchLeaderboard(cCtx.Context)
		},
	}
}

// watchLeaderboard follows the sync channel until interrupted or the
// socket closes. There is no reconnect here: rerunning the command is
// the remount.
func (a *App) watchLeaderboard(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ch, err := leaderboard.Dial(ctx, a.WSURL, a.Logger)
	if err != nil {
		return err
	}
	defer ch.Close()

	fmt.Fprintln(a.Out, "\nWatching for live updates (Ctrl-C to stop)...")
	return ch.Listen(ctx, &watchView{app: a, ctx: ctx})
}

// watchView is the single mutable state cell behind the live view:
// every event ends in one full reprint, latest wins.
type watchView struct {
	app *App
	ctx context.Context
}

func (v *watchView) Snapshot(entries []models.LeaderboardEntry) {
	v.app.printLeaderboard(entries)
}

// Submission re-fetches the standings instead of trusting the pushed
// payload.
func (v *watchView) Submission() {
	entries, err := v.app.Client.Leaderboard(v.ctx)
	if err != nil {
		v.app.Logger.Warn("leaderboard re-fetch after submission failed", slog.Any("error", err))
		return
	}
	v.app.printLeaderboard(entries)
}

func (a *App) printLeaderboard(entries []models.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.Out, "No teams have scored yet.")
		return
	}
	w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTEAM\tSCORE\tSTATUS")
	for i, e := range entries {
		status := "INACTIVE"
		if e.Active {
			status = "ACTIVE"
		}
		fmt.Fprintf(w, "#%d\t%s\t%d\t%s\n", i+1, e.TeamName, e.Score, status)
	}
	w.Flush()
}
