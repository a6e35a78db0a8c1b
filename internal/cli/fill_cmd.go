package cli

import (
	"fmt"
	"strings"

	"github.com/dennisdenk/vergabe.ai/internal/cli/formatter"
	"github.com/dennisdenk/vergabe.ai/internal/facts"
	"github.com/dennisdenk/vergabe.ai/internal/filler"
	"github.com/dennisdenk/vergabe.ai/internal/form"
	"github.com/dennisdenk/vergabe.ai/internal/llm"
	"github.com/dennisdenk/vergabe.ai/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type fillOptions struct {
	provider    string
	model       string
	endpoint    string
	factsPath   string
	interactive bool
	verbose     bool
	quiet       bool
}

func (o *fillOptions) register(f *pflag.FlagSet) {
	names := make([]string, len(llm.Providers))
	for i, p := range llm.Providers {
		names[i] = string(p)
	}

	f.StringVar(&o.provider, "provider", "", "assistant backend ("+strings.Join(names, ", ")+")")
	f.StringVar(&o.model, "model", "", "model name (default depends on provider)")
	f.StringVar(&o.endpoint, "endpoint", "", "backend base URL")
	f.StringVar(&o.factsPath, "facts", "", "YAML fact sheet (default: built-in sample sheet)")
	f.BoolVarP(&o.interactive, "interactive", "i", false, "prompt for missing facts on the terminal")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output and every assistant call")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "skip the summary table")
}

// llmConfig layers command-line overrides over the environment.
func (o *fillOptions) llmConfig(cmd *cobra.Command, credential string) llm.Config {
	cfg := llm.LoadConfig()
	cfg.APIKey = credential

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = llm.Provider(strings.ToLower(o.provider))
	}
	if flags.Changed("model") {
		cfg.Model = o.model
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = o.endpoint
	}
	if o.verbose {
		cfg.LogCalls = true
	}
	return cfg
}

func (o *fillOptions) logLevel() zerolog.Level {
	if o.verbose {
		return zerolog.DebugLevel
	}
	return logger.LevelFromEnv()
}

func (o *fillOptions) factSheet() (facts.Sheet, error) {
	if o.factsPath == "" {
		return facts.Default(), nil
	}
	return facts.Load(o.factsPath)
}

func runFill(cmd *cobra.Command, app *App, opts *fillOptions, credential, docPath string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	log := logger.New(out, opts.logLevel()).With().Str("run_id", app.NewRunID()).Logger()

	llmCfg := opts.llmConfig(cmd, credential)
	if !llmCfg.Provider.Valid() {
		return fmt.Errorf("%w: %q", llm.ErrUnknownProvider, llmCfg.Provider)
	}

	sheet, err := opts.factSheet()
	if err != nil {
		return err
	}

	doc, err := app.OpenDocument(docPath)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}

	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(log)
	}
	session, err := app.NewSession(ctx, llmCfg, observer)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", llmCfg.Provider, err)
	}

	cfg := filler.DefaultConfig()
	cfg.Facts = sheet
	cfg.OutputPath = form.OutputPath(docPath)

	fillerOpts := []filler.Option{filler.WithLogger(log)}
	if opts.interactive {
		if app.IsInteractive() {
			fillerOpts = append(fillerOpts, filler.WithMissingResolver(app.NewResolver()))
		} else {
			log.Warn().Msg("Not a terminal, missing facts will not be prompted for")
		}
	}

	log.Info().
		Str("document", docPath).
		Str("provider", string(llmCfg.Provider)).
		Str("model", llmCfg.ModelName()).
		Msg("Starting run")

	report, err := filler.New(session, doc, cfg, fillerOpts...).Run(ctx)
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatReport(report))
	}
	return nil
}
