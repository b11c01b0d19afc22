package commands

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/client"
)

func (a *App) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in with your USN and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "usn", Usage: "your enrollment identifier", Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password", Required: true},
		},
		Action: func(cCtx *cli.Context) error {
			if err := a.Client.Login(cCtx.Context, cCtx.String("usn"), cCtx.String("password")); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(a.Out, "Login successful!")
			return nil
		},
	}
}

func (a *App) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create a member account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "display name", Required: true},
			&cli.StringFlag{Name: "usn", Usage: "your enrollment identifier", Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password", Required: true},
		},
		Action: func(cCtx *cli.Context) error {
			err := a.Client.Register(cCtx.Context, cCtx.String("name"), cCtx.String("usn"), cCtx.String("password"))
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Fprintln(a.Out, "Registration successful! Please login.")
			return nil
		},
	}
}

func (a *App) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Drop the stored participant session",
		Action: func(cCtx *cli.Context) error {
			if err := a.Client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "Logged out.")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged-in member",
		Action: func(cCtx *cli.Context) error {
			member, err := a.Client.CurrentMember(cCtx.Context)
			if errors.Is(err, client.ErrNoSession) {
				fmt.Fprintln(a.Out, "Not logged in. Run `mtf login` first.")
				return nil
			}
			if err != nil {
				return err
			}
			if member.TeamID != nil {
				fmt.Fprintf(a.Out, "%s (%s), team #%d\n", member.Name, member.USN, *member.TeamID)
			} else {
				fmt.Fprintf(a.Out, "%s (%s), no team\n", member.Name, member.USN)
			}
			return nil
		},
	}
}
