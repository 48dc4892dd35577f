package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abatilo/todo/internal/output"
	"github.com/abatilo/todo/internal/session"
)

// exitInterrupted is the conventional status for a SIGINT-terminated process.
const exitInterrupted = 130

// menuCmd implements 'todo menu'.
func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu (default)",
		Run: func(_ *cobra.Command, _ []string) {
			runMenu()
		},
	}
}

// runMenu drives an interactive session until exit or interrupt. An
// interrupt still saves before the process ends.
func runMenu() {
	st, err := getStore()
	if err != nil {
		printError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(st, session.Config{
		In:         os.Stdin,
		Out:        os.Stdout,
		Formatter:  output.NewHumanFormatter(),
		Logger:     logger,
		ExportFile: cfg.ExportFile,
	})

	err = sess.Run(ctx)
	if errors.Is(err, session.ErrInterrupted) {
		stop()
		_ = logger.Sync()
		os.Exit(exitInterrupted) //nolint:gocritic // stop is called explicitly above
	}
	if err != nil {
		printError(err)
	}
}
