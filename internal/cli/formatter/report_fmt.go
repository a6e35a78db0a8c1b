package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dennisdenk/vergabe.ai/internal/filler"
	"github.com/dennisdenk/vergabe.ai/internal/form"
)

// FormatReport renders the end-of-run summary: one row per visited field,
// followed by totals and the output path.
func FormatReport(r *filler.Report) string {
	var b strings.Builder

	b.WriteString(Header("Form Summary"))
	b.WriteString("\n\n")

	if len(r.Fields) == 0 {
		b.WriteString(Dim("The document has no fields."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(r.Fields))
		for _, f := range r.Fields {
			value := Truncate(f.Value, MaxCellWidth)
			if f.Resolved {
				value += " " + StylePurple.Render("(supplied)")
			}
			rows = append(rows, []string{
				Dim(strconv.Itoa(f.Index)),
				string(f.Type),
				Truncate(f.Label, MaxCellWidth),
				OutcomeIndicator(f.Outcome),
				value,
			})
		}
		b.WriteString(RenderTable([]string{"#", "TYPE", "LABEL", "OUTCOME", "VALUE"}, rows))
	}

	asked := len(r.Fields) - r.Count(filler.OutcomeSkippedType) - r.Count(filler.OutcomeSkippedUnlabelled)
	filled := r.Count(filler.OutcomeFilled)

	totals := []string{
		fmt.Sprintf("%s  %s", Bold("Filled"), RenderProgress(Ratio(filled, asked), 20)),
		fmt.Sprintf("%s %d of %d asked, %d missing, %d unrecognized",
			Dim("Fields:"), filled, asked,
			r.Count(filler.OutcomeMissing), r.Count(filler.OutcomeUnrecognized)),
		fmt.Sprintf("%s %d", Dim("Turns: "), r.Turns),
		fmt.Sprintf("%s %s", Dim("Output:"), r.OutputPath),
	}
	b.WriteString("\n")
	b.WriteString(RenderBox("", strings.Join(totals, "\n")))
	b.WriteString("\n")

	if missing := r.Filter(filler.OutcomeMissing); len(missing) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Missing Information"))
		b.WriteString("\n")
		for _, f := range missing {
			fmt.Fprintf(&b, "  %s %s %s\n", StyleYellow.Render("▲"), Bold(f.Label), Dim(f.Value))
		}
	}

	return b.String()
}

// FormatFields renders how each field of doc would be treated by a run.
func FormatFields(doc form.Document) string {
	var b strings.Builder

	count := doc.FieldCount()
	b.WriteString(Header(fmt.Sprintf("Fields (%d)", count)))
	b.WriteString("\n\n")

	if count == 0 {
		b.WriteString(Dim("The document has no fields."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, count)
	asked := 0
	for i := 0; i < count; i++ {
		res := filler.Inspect(doc, i)
		if res.Outcome == "" {
			asked++
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(i)),
			string(res.Type),
			Truncate(OrDash(doc.FieldName(i)), MaxCellWidth),
			Truncate(OrDash(doc.FieldDescription(i)), MaxCellWidth),
			OutcomeIndicator(res.Outcome),
		})
	}
	b.WriteString(RenderTable([]string{"#", "TYPE", "NAME", "DESCRIPTION", "TREATMENT"}, rows))
	fmt.Fprintf(&b, "\n%s %d of %d fields get a FILL turn\n", Dim("Summary:"), asked, count)

	return b.String()
}
