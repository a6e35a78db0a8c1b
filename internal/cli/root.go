package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dennisdenk/vergabe.ai/internal/filler"
	"github.com/dennisdenk/vergabe.ai/internal/form"
	"github.com/dennisdenk/vergabe.ai/internal/llm"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// ErrNoCredential indicates the assistant credential argument is missing.
	ErrNoCredential = errors.New("no API key given")

	// ErrNoDocument indicates the document argument is missing.
	ErrNoDocument = errors.New("no document filename given")
)

// App holds the collaborators CLI commands are wired against. Tests swap
// them for fakes.
type App struct {
	NewSession    func(ctx context.Context, cfg llm.Config, observer llm.Observer) (llm.Session, error)
	OpenDocument  func(path string) (form.Document, error)
	NewResolver   func() filler.MissingResolver
	IsInteractive func() bool
	NewRunID      func() string
}

// NewApp returns an App wired to the real backends.
func NewApp() *App {
	return &App{
		NewSession: func(ctx context.Context, cfg llm.Config, observer llm.Observer) (llm.Session, error) {
			conv, err := llm.NewSession(ctx, cfg, observer)
			if err != nil {
				return nil, err
			}
			return conv, nil
		},
		OpenDocument: form.Open,
		NewResolver:  func() filler.MissingResolver { return newPromptResolver() },
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		NewRunID: func() string { return uuid.NewString() },
	}
}

// NewRootCmd creates the top-level "vergabe" command. Run with a credential
// and a document it fills the document; subcommands inspect documents.
func NewRootCmd(app *App) *cobra.Command {
	opts := &fillOptions{}

	root := &cobra.Command{
		Use:   "vergabe <api-key> <document>",
		Short: "Fill tender forms with an AI assistant",
		Long: `Fills the text fields of a tender form (PDF AcroForm or YAML/JSON form
description) by asking an AI assistant, one field at a time, using a sheet
of known company facts. The filled copy is written to ./filled.<ext>.`,
		Args:          requireCredentialAndDocument,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, app, opts, args[0], args[1])
		},
	}

	opts.register(root.Flags())
	root.AddCommand(newFieldsCmd(app))

	return root
}

// requireCredentialAndDocument validates the positional arguments before
// anything is opened or dialled.
func requireCredentialAndDocument(_ *cobra.Command, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return ErrNoCredential
	}
	if len(args) < 2 || args[1] == "" {
		return ErrNoDocument
	}
	if len(args) > 2 {
		return fmt.Errorf("unexpected arguments after document: %v", args[2:])
	}
	return nil
}
