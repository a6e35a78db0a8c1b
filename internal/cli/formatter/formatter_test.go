package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/dennisdenk/vergabe.ai/internal/filler"
	"github.com/dennisdenk/vergabe.ai/internal/form"
	"github.com/dennisdenk/vergabe.ai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"#", "LABEL"},
		[][]string{{"0", "ceo"}, {"12", "Name des Geschäftsführers"}},
	)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)

	// Second column starts at the same visible offset on every row.
	col := strings.Index(lines[0], "LABEL")
	assert.Equal(t, col, strings.Index(lines[2], "ceo"))
	assert.Equal(t, col, strings.Index(lines[3], "Name"))
	assert.Contains(t, lines[1], "──")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_ShortRows(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"1"}})
	assert.Contains(t, out, "1")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "Ingolstadt", 20, "Ingolstadt"},
		{"exact", "abcd", 4, "abcd"},
		{"cut", "abcdef", 4, "abc…"},
		{"umlauts", "Geschäftsführer", 6, "Gesch…"},
		{"newlines", "eins\nzwei", 20, "eins zwei"},
		{"no limit", "abcdef", 0, "abcdef"},
		{"one", "abc", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestRenderProgress(t *testing.T) {
	assert.Contains(t, RenderProgress(0.5, 10), " 50%")
	assert.Contains(t, RenderProgress(1.5, 10), "100%")
	assert.Contains(t, RenderProgress(-1, 10), "  0%")
	assert.Equal(t, 4, strings.Count(RenderProgress(0.5, 8), filledBlock))
	assert.Equal(t, 0.0, Ratio(3, 0))
	assert.Equal(t, 0.25, Ratio(1, 4))
}

func TestOutcomeIndicator(t *testing.T) {
	assert.Contains(t, OutcomeIndicator(filler.OutcomeFilled), "filled")
	assert.Contains(t, OutcomeIndicator(filler.OutcomeMissing), "missing")
	assert.Contains(t, OutcomeIndicator(filler.OutcomeSkippedUnlabelled), "no label")
	assert.Contains(t, OutcomeIndicator(""), "fill")
	assert.Contains(t, OutcomeIndicator("strange"), "strange")
}

func TestHeader_UnderlineMatchesWidth(t *testing.T) {
	out := Header("Fields")
	parts := strings.Split(out, "\n")
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], "FIELDS")
	assert.Equal(t, lipgloss.Width("FIELDS"), strings.Count(parts[1], "─"))
}

func TestFormatReport(t *testing.T) {
	report := &filler.Report{
		OutputPath: "./filled.pdf",
		Turns:      6,
		Fields: []filler.FieldResult{
			{Index: 0, Type: form.FieldText, Label: "ceo", Outcome: filler.OutcomeFilled, Value: "Hans Huber"},
			{Index: 1, Type: form.FieldCheckbox, Outcome: filler.OutcomeSkippedType},
			{Index: 2, Type: form.FieldText, Label: "gruendungsjahr_text", Outcome: filler.OutcomeMissing,
				Value: "gruendungsjahr Jahr der Firmengründung"},
			{Index: 3, Type: form.FieldText, Label: "ort", Outcome: filler.OutcomeFilled, Value: "Ingolstadt", Resolved: true},
		},
	}

	out := FormatReport(report)
	assert.Contains(t, out, "FORM SUMMARY")
	assert.Contains(t, out, "Hans Huber")
	assert.Contains(t, out, "(supplied)")
	assert.Contains(t, out, "2 of 3 asked, 1 missing, 0 unrecognized")
	assert.Contains(t, out, "./filled.pdf")
	assert.Contains(t, out, "MISSING INFORMATION")
	assert.Contains(t, out, "Jahr der Firmengründung")
}

func TestFormatReport_Empty(t *testing.T) {
	out := FormatReport(&filler.Report{OutputPath: "./filled.yaml"})
	assert.Contains(t, out, "no fields")
	assert.Contains(t, out, "0 of 0 asked")
	assert.NotContains(t, out, "MISSING INFORMATION")
}

func TestFormatFields(t *testing.T) {
	doc := testutil.NewTestDocument(
		testutil.TextField("ceo", testutil.WithDescription("Geschäftsführer")),
		testutil.TypedField("agb", form.FieldCheckbox),
		testutil.TextField(""),
	)

	out := FormatFields(doc)
	assert.Contains(t, out, "FIELDS (3)")
	assert.Contains(t, out, "Geschäftsführer")
	assert.Contains(t, out, "→ fill")
	assert.Contains(t, out, "skipped (type)")
	assert.Contains(t, out, "skipped (no label)")
	assert.Contains(t, out, "1 of 3 fields get a FILL turn")
}

func TestFormatFields_Empty(t *testing.T) {
	out := FormatFields(testutil.NewTestDocument())
	assert.Contains(t, out, "FIELDS (0)")
	assert.Contains(t, out, "no fields")
}
