// Package filler drives one form-filling conversation: it seeds the
// assistant with the protocol rules and the fact sheet, then walks the
// document's fields in order, one FILL turn at a time.
package filler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dennisdenk/vergabe.ai/internal/facts"
	"github.com/dennisdenk/vergabe.ai/internal/form"
	"github.com/dennisdenk/vergabe.ai/internal/llm"
	"github.com/dennisdenk/vergabe.ai/internal/protocol"
	"github.com/rs/zerolog"
)

var (
	// ErrAlreadyRun indicates Run was called on a Filler that already ran.
	ErrAlreadyRun = errors.New("filler has already run")

	// ErrInvalidConfig indicates a Config that cannot drive a run.
	ErrInvalidConfig = errors.New("invalid filler config")
)

// Config is the fixed data for one run.
type Config struct {
	SystemPrompt string
	Facts        facts.Sheet
	OutputPath   string
}

// DefaultConfig returns the built-in instructions and sample fact sheet,
// writing to ./filled.pdf.
func DefaultConfig() Config {
	return Config{
		SystemPrompt: DefaultSystemPrompt,
		Facts:        facts.Default(),
		OutputPath:   "./filled.pdf",
	}
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.SystemPrompt) == "" {
		errs = append(errs, errors.New("system prompt is required"))
	}
	if len(c.Facts) == 0 {
		errs = append(errs, facts.ErrEmptySheet)
	}
	errs = append(errs, facts.Validate(c.Facts)...)
	if c.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// MissingRequest describes a fact the assistant asked for.
type MissingRequest struct {
	Index       int
	Label       string
	Name        string
	Description string
}

// MissingResolver supplies a missing fact on demand. Returning ok=false
// leaves the field unfilled; a non-nil error aborts the run.
type MissingResolver interface {
	Resolve(ctx context.Context, req MissingRequest) (value string, ok bool, err error)
}

// MissingResolverFunc adapts a function to MissingResolver.
type MissingResolverFunc func(ctx context.Context, req MissingRequest) (string, bool, error)

func (f MissingResolverFunc) Resolve(ctx context.Context, req MissingRequest) (string, bool, error) {
	return f(ctx, req)
}

// Option configures a Filler.
type Option func(*Filler)

// WithLogger sets the logger progress and notices are written to.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Filler) { f.log = log }
}

// WithMissingResolver asks r for a missing fact and retries the field
// once with it.
func WithMissingResolver(r MissingResolver) Option {
	return func(f *Filler) { f.resolver = r }
}

// Filler owns a session and a document for the duration of one run.
// Neither may be used by anything else while Run is in progress.
type Filler struct {
	session  llm.Session
	doc      form.Document
	cfg      Config
	log      zerolog.Logger
	resolver MissingResolver

	ran   bool
	turns int
}

// New creates a Filler. The session must be fresh: Run sends the system
// instructions as its first message.
func New(session llm.Session, doc form.Document, cfg Config, opts ...Option) *Filler {
	f := &Filler{
		session: session,
		doc:     doc,
		cfg:     cfg,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run performs the whole conversation and saves the filled document. The
// returned Report is non-nil even on error and covers the fields visited
// so far.
func (f *Filler) Run(ctx context.Context) (*Report, error) {
	report := &Report{OutputPath: f.cfg.OutputPath}

	if f.ran {
		return report, ErrAlreadyRun
	}
	f.ran = true

	if err := f.cfg.validate(); err != nil {
		return report, err
	}

	if err := f.seed(ctx); err != nil {
		report.Turns = f.turns
		return report, err
	}

	count := f.doc.FieldCount()
	f.log.Info().Int("fields", count).Msg("Filling form")

	for i := 0; i < count; i++ {
		res, err := f.fillField(ctx, i)
		report.Fields = append(report.Fields, res)
		if err != nil {
			report.Turns = f.turns
			return report, err
		}
	}
	report.Turns = f.turns

	if err := f.doc.Save(f.cfg.OutputPath); err != nil {
		return report, fmt.Errorf("saving %s: %w", f.cfg.OutputPath, err)
	}

	f.log.Info().
		Str("output", f.cfg.OutputPath).
		Int("filled", report.Count(OutcomeFilled)).
		Int("missing", report.Count(OutcomeMissing)).
		Int("turns", report.Turns).
		Msg("Form saved")

	return report, nil
}

// seed sends the system instructions and the fact sheet. Neither reply is
// validated.
func (f *Filler) seed(ctx context.Context) error {
	if _, err := f.send(ctx, llm.RoleSystem, f.cfg.SystemPrompt); err != nil {
		return fmt.Errorf("sending system instructions: %w", err)
	}

	reply, err := f.send(ctx, llm.RoleUser, f.cfg.Facts.Encode())
	if err != nil {
		return fmt.Errorf("sending fact sheet: %w", err)
	}
	f.log.Info().
		Int("facts", len(f.cfg.Facts)).
		Str("reply", reply.Content).
		Msg("Fact sheet sent")

	return nil
}

// Inspect reports how field i of doc would be treated, without contacting
// the assistant. Fields that get a FILL turn have an empty Outcome.
func Inspect(doc form.Document, i int) FieldResult {
	res := FieldResult{Index: i, Type: doc.FieldType(i)}
	if res.Type != form.FieldText {
		res.Outcome = OutcomeSkippedType
		return res
	}

	label, ok := protocol.Label(doc.FieldDescription(i), doc.FieldName(i))
	if !ok {
		res.Outcome = OutcomeSkippedUnlabelled
		return res
	}
	res.Label = label
	return res
}

func (f *Filler) fillField(ctx context.Context, i int) (FieldResult, error) {
	res := Inspect(f.doc, i)
	switch res.Outcome {
	case OutcomeSkippedType:
		f.log.Debug().Int("field", i).Str("type", string(res.Type)).Msg("Skipping non-text field")
		return res, nil
	case OutcomeSkippedUnlabelled:
		f.log.Debug().Int("field", i).Msg("Skipping field without name or description")
		return res, nil
	}

	reply, err := f.fill(ctx, i, res.Label)
	if err != nil {
		return res, err
	}
	res, err = f.apply(ctx, res, reply, f.resolver != nil)
	if err == nil {
		f.log.Debug().Int("field", i).Str("label", res.Label).Str("outcome", string(res.Outcome)).Msg("Field visited")
	}
	return res, err
}

func (f *Filler) fill(ctx context.Context, i int, label string) (protocol.Reply, error) {
	msg, err := f.sendPlain(ctx, protocol.EncodeFill(label))
	if err != nil {
		return protocol.Reply{}, fmt.Errorf("fill turn for field %d: %w", i, err)
	}
	// An unrecognized reply is still a usable Reply; the error only reports
	// the classification.
	reply, _ := protocol.Decode(msg.Content)
	return reply, nil
}

func (f *Filler) apply(ctx context.Context, res FieldResult, reply protocol.Reply, mayResolve bool) (FieldResult, error) {
	i := res.Index

	switch reply.Kind {
	case protocol.KindEntered:
		if err := f.doc.SetFieldText(i, reply.Text); err != nil {
			return res, fmt.Errorf("writing field %d: %w", i, err)
		}
		res.Outcome = OutcomeFilled
		res.Value = reply.Text
		f.log.Info().Int("field", i).Str("label", res.Label).Str("value", reply.Text).Msg("Field filled")

	case protocol.KindMissing:
		res.Outcome = OutcomeMissing
		res.Value = reply.Payload
		f.log.Warn().
			Int("field", i).
			Str("label", res.Label).
			Str("missing", reply.Name()).
			Str("description", reply.Description()).
			Msg("Missing information")
		if mayResolve {
			return f.resolve(ctx, res, reply)
		}

	case protocol.KindAcknowledged:
		res.Outcome = OutcomeAcknowledged
		f.log.Debug().Int("field", i).Str("label", res.Label).Msg("Assistant acknowledged a FILL turn")

	default:
		res.Outcome = OutcomeUnrecognized
		res.Value = reply.Raw
		f.log.Warn().Int("field", i).Str("label", res.Label).Str("reply", reply.Raw).Msg("Unrecognized reply")
	}

	return res, nil
}

// resolve asks the operator for the missing fact, hands it to the assistant
// as an INFO turn and retries the field once.
func (f *Filler) resolve(ctx context.Context, res FieldResult, reply protocol.Reply) (FieldResult, error) {
	req := MissingRequest{
		Index:       res.Index,
		Label:       res.Label,
		Name:        reply.Name(),
		Description: reply.Description(),
	}

	value, ok, err := f.resolver.Resolve(ctx, req)
	if err != nil {
		return res, fmt.Errorf("resolving missing %q for field %d: %w", req.Name, res.Index, err)
	}
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return res, nil
	}

	key := req.Name
	if key == "" || strings.ContainsAny(key, " \t\r\n") {
		key = "info"
	}
	if strings.ContainsAny(value, "\r\n") {
		value = strings.Join(strings.Fields(value), " ")
	}

	ack, err := f.sendPlain(ctx, protocol.EncodeInfo(key, value))
	if err != nil {
		return res, fmt.Errorf("info turn for field %d: %w", res.Index, err)
	}
	f.log.Info().Str("fact", key).Str("reply", ack.Content).Msg("Supplied missing fact")

	retry, err := f.fill(ctx, res.Index, res.Label)
	if err != nil {
		return res, err
	}

	res, err = f.apply(ctx, res, retry, false)
	res.Resolved = res.Outcome == OutcomeFilled
	return res, err
}

func (f *Filler) send(ctx context.Context, role llm.Role, content string) (*llm.Reply, error) {
	f.turns++
	return f.session.SendRoleMessage(ctx, role, content)
}

func (f *Filler) sendPlain(ctx context.Context, content string) (*llm.Reply, error) {
	f.turns++
	return f.session.SendMessage(ctx, content)
}
