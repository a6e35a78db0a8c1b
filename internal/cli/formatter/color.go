package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dennisdenk/vergabe.ai/internal/filler"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeStyle returns the style a field outcome is rendered with.
func OutcomeStyle(o filler.Outcome) lipgloss.Style {
	switch o {
	case filler.OutcomeFilled:
		return StyleGreen
	case filler.OutcomeMissing:
		return StyleYellow
	case filler.OutcomeUnrecognized:
		return StyleRed
	case filler.OutcomeAcknowledged:
		return StyleBlue
	default:
		return StyleDim
	}
}

// OutcomeIndicator returns a colored marker such as "● filled".
func OutcomeIndicator(o filler.Outcome) string {
	switch o {
	case filler.OutcomeFilled:
		return StyleGreen.Render("● filled")
	case filler.OutcomeMissing:
		return StyleYellow.Render("▲ missing")
	case filler.OutcomeUnrecognized:
		return StyleRed.Render("✖ unrecognized")
	case filler.OutcomeAcknowledged:
		return StyleBlue.Render("○ acknowledged")
	case filler.OutcomeSkippedType:
		return StyleDim.Render("⊘ skipped (type)")
	case filler.OutcomeSkippedUnlabelled:
		return StyleDim.Render("⊘ skipped (no label)")
	case "":
		return StylePurple.Render("→ fill")
	default:
		return StyleDim.Render(string(o))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
