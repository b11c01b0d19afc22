// Package commands implements the terminal front-end: one command per
// view of the contest site. Every action catches its own gateway
// failures and reports them once; nothing is retried.
package commands

import (
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/client"
	"github.com/minetheflag/mtf/store"
)

// App bundles the dependencies the commands share.
type App struct {
	Client *client.Client
	Store  *store.Store
	WSURL  string
	Logger *slog.Logger
	Out    io.Writer
}

// New wires the command set against a client and its state store.
func New(c *client.Client, st *store.Store, wsURL string, logger *slog.Logger, out io.Writer) *App {
	return &App{
		Client: c,
		Store:  st,
		WSURL:  wsURL,
		Logger: logger,
		Out:    out,
	}
}

// Commands returns the full command tree.
func (a *App) Commands() []*cli.Command {
	return []*cli.Command{
		a.loginCommand(),
		a.registerCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.teamCommand(),
		a.lobbyCommand(),
		a.problemsCommand(),
		a.problemCommand(),
		a.submitCommand(),
		a.bonusCommand(),
		a.leaderboardCommand(),
		a.adminCommand(),
	}
}
