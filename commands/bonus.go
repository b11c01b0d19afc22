package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/catalog"
)

func (a *App) bonusCommand() *cli.Command {
	return &cli.Command{
		Name:   "bonus",
		Usage:  "Sequential bonus quests, judged locally",
		Action: a.bonusIndex,
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show an unlocked bonus level",
				ArgsUsage: "<level>",
				Action:    a.bonusShow,
			},
			{
				Name:      "submit",
				Usage:     "Submit a bonus flag",
				ArgsUsage: "<level> <flag>",
				Action:    a.bonusSubmit,
			},
		},
	}
}

func (a *App) bonusIndex(cCtx *cli.Context) error {
	unlocked := a.Store.BonusLevel()
	fmt.Fprintln(a.Out, "BONUS QUESTS")
	fmt.Fprintln(a.Out, "Complete each quest to unlock the next.")
	for _, level := range catalog.BonusLevels() {
		state := "LOCKED"
		switch {
		case level.ID < unlocked:
			state = "COMPLETED"
		case level.ID <= unlocked:
			state = "UNLOCKED"
		}
		fmt.Fprintf(a.Out, "  Level %d: %s [%s]\n    %s\n", level.ID, level.Title, state, level.Description)
	}
	return nil
}

func (a *App) bonusShow(cCtx *cli.Context) error {
	level, ok := a.bonusLevelArg(cCtx)
	if !ok {
		return errors.New("usage: mtf bonus show <level>")
	}
	if level.ID > a.Store.BonusLevel() {
		// Locked levels fall back to the index, like the page redirect.
		fmt.Fprintf(a.Out, "Level %d is locked. Complete level %d first.\n\n", level.ID, level.ID-1)
		return a.bonusIndex(cCtx)
	}

	fmt.Fprintf(a.Out, "BONUS LEVEL %d: %s\n\n", level.ID, level.Title)
	fmt.Fprintln(a.Out, level.Description)
	fmt.Fprintf(a.Out, "\nSubmit with: mtf bonus submit %d <flag>\n", level.ID)
	return nil
}

func (a *App) bonusSubmit(cCtx *cli.Context) error {
	level, ok := a.bonusLevelArg(cCtx)
	flag := cCtx.Args().Get(1)
	if !ok || flag == "" {
		return errors.New("usage: mtf bonus submit <level> <flag>")
	}
	unlocked := a.Store.BonusLevel()
	if level.ID > unlocked {
		fmt.Fprintf(a.Out, "Level %d is locked. Complete level %d first.\n", level.ID, level.ID-1)
		return nil
	}

	if flag != level.Flag {
		fmt.Fprintln(a.Out, "INCORRECT FLAG. Try again.")
		return nil
	}

	if level.Unlocks > unlocked {
		if err := a.Store.SetBonusLevel(level.Unlocks); err != nil {
			return fmt.Errorf("record unlocked level: %w", err)
		}
		fmt.Fprintf(a.Out, "CORRECT! Level %d unlocked.\n", level.Unlocks)
		return nil
	}
	fmt.Fprintln(a.Out, "CONGRATULATIONS! You have completed the bonus challenges.")
	return nil
}

func (a *App) bonusLevelArg(cCtx *cli.Context) (catalog.BonusLevel, bool) {
	id, err := strconv.Atoi(cCtx.Args().First())
	if err != nil {
		return catalog.BonusLevel{}, false
	}
	return catalog.Bonus(id)
}
