package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/catalog"
)

func (a *App) problemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "problems",
		Usage: "List the coding challenges",
		Action: func(cCtx *cli.Context) error {
			// Solved markers are decoration: a failed fetch degrades to
			// an unmarked listing, same as the page did.
			solved := map[int]bool{}
			ids, err := a.Client.Solved(cCtx.Context)
			if err != nil {
				a.Logger.Debug("failed to fetch solved problems", slog.Any("error", err))
			}
			for _, id := range ids {
				solved[id] = true
			}

			w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
			for _, category := range catalog.Categories {
				fmt.Fprintf(w, "%s\n", category)
				for _, p := range catalog.ByCategory(category) {
					marker := " "
					if solved[p.ID] {
						marker = "*"
					}
					fmt.Fprintf(w, "  %s %d\t%s\t%s\t%d pts\n", marker, p.ID, p.Title, p.Difficulty, p.Points)
				}
			}
			fmt.Fprintln(w, "\n* = solved by your team")
			return w.Flush()
		},
	}
}

func (a *App) problemCommand() *cli.Command {
	return &cli.Command{
		Name:      "problem",
		Usage:     "Show one challenge",
		ArgsUsage: "<id>",
		Action: func(cCtx *cli.Context) error {
			id, err := strconv.Atoi(cCtx.Args().First())
			if err != nil {
				return errors.New("usage: mtf problem <id>")
			}
			p, ok := catalog.ByID(id)
			if !ok {
				return fmt.Errorf("unknown problem %d", id)
			}

			fmt.Fprintf(a.Out, "%s (#%d)\n", p.Title, p.ID)
			fmt.Fprintf(a.Out, "%s | %s | %d points\n\n", p.Category, p.Difficulty, p.Points)
			fmt.Fprintln(a.Out, p.Description)
			fmt.Fprintln(a.Out, "\nFlag format: FLAG{...}")
			fmt.Fprintf(a.Out, "Submit with: mtf submit %d <flag>\n", p.ID)
			return nil
		},
	}
}

func (a *App) submitCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "Submit a flag for a challenge",
		ArgsUsage: "<id> <flag>",
		Action: func(cCtx *cli.Context) error {
			id, err := strconv.Atoi(cCtx.Args().Get(0))
			flag := cCtx.Args().Get(1)
			if err != nil || flag == "" {
				return errors.New("usage: mtf submit <id> <flag>")
			}

			result, err := a.Client.Submit(cCtx.Context, id, flag)
			if err != nil {
				return fmt.Errorf("submission failed: %w", err)
			}
			if result.OK {
				fmt.Fprintln(a.Out, "Correct flag! Points awarded!")
				return nil
			}
			if result.Reason != "" {
				fmt.Fprintf(a.Out, "Incorrect: %s\n", result.Reason)
			} else {
				fmt.Fprintln(a.Out, "Incorrect flag. Try again!")
			}
			return nil
		},
	}
}
