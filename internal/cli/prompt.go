package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dennisdenk/vergabe.ai/internal/cli/formatter"
	"github.com/dennisdenk/vergabe.ai/internal/filler"
)

// promptResolver asks the operator for a missing fact with a one-field
// huh form. Leaving the input blank or aborting skips the field. The form
// draws on stderr so stdout carries only the run log and summary.
type promptResolver struct {
	theme *huh.Theme
}

func newPromptResolver() *promptResolver {
	return &promptResolver{theme: vergabeHuhTheme()}
}

func (r *promptResolver) Resolve(ctx context.Context, req filler.MissingRequest) (string, bool, error) {
	var value string
	err := missingFactForm(req, &value).
		WithTheme(r.theme).
		WithProgramOptions(tea.WithOutput(os.Stderr)).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prompting for %q: %w", req.Name, err)
	}
	value = strings.TrimSpace(value)
	return value, value != "", nil
}

func missingFactForm(req filler.MissingRequest, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(missingFactTitle(req)).
				Description(missingFactDescription(req)).
				Placeholder("blank to skip").
				Value(value),
		),
	).WithShowHelp(false)
}

func missingFactTitle(req filler.MissingRequest) string {
	if req.Name == "" {
		return fmt.Sprintf("Missing information for %q", req.Label)
	}
	return fmt.Sprintf("Missing %q for %q", req.Name, req.Label)
}

func missingFactDescription(req filler.MissingRequest) string {
	if req.Description == "" {
		return fmt.Sprintf("Field %d", req.Index)
	}
	return req.Description
}

// vergabeHuhTheme applies the formatter palette to huh forms.
func vergabeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
