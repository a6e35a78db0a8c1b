package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dennisdenk/vergabe.ai/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Interrupting between turns aborts the run; the output file is only
	// written after the last field.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(cli.NewApp())
	return rootCmd.ExecuteContext(ctx)
}
