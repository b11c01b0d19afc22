package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/minetheflag/mtf/client"
	"github.com/minetheflag/mtf/commands"
	"github.com/minetheflag/mtf/config"
	"github.com/minetheflag/mtf/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	st, err := store.Open(cfg.StatePath)
	if err != nil {
		// The store degrades to absent reads; sessions just won't
		// survive this process.
		logger.Warn("state storage unavailable", slog.Any("error", err))
	}
	defer st.Close()

	api := client.New(cfg.APIBaseURL, st, logger)

	app := &cli.App{
		Name:     "mtf",
		Usage:    "Mine The Flag contest client",
		Commands: commands.New(api, st, cfg.WSURL, logger, os.Stdout).Commands(),
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		st.Close()
		os.Exit(1)
	}
}
