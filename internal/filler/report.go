package filler

import "github.com/dennisdenk/vergabe.ai/internal/form"

// Outcome is what happened to one visited field.
type Outcome string

const (
	OutcomeFilled            Outcome = "filled"
	OutcomeMissing           Outcome = "missing"
	OutcomeAcknowledged      Outcome = "acknowledged"
	OutcomeUnrecognized      Outcome = "unrecognized"
	OutcomeSkippedType       Outcome = "skipped-type"
	OutcomeSkippedUnlabelled Outcome = "skipped-unlabelled"
)

// Skipped reports whether no FILL turn was issued for the field.
func (o Outcome) Skipped() bool {
	return o == OutcomeSkippedType || o == OutcomeSkippedUnlabelled
}

// FieldResult records one field's pass through the loop.
type FieldResult struct {
	Index   int
	Type    form.FieldType
	Label   string
	Outcome Outcome

	// Value is the written text for filled fields, the MISSING payload
	// for missing ones and the raw reply for unrecognized ones.
	Value string

	// Resolved is set when the value came from a second FILL after the
	// operator supplied a missing fact.
	Resolved bool
}

// Report summarizes a run. It lives only as long as the process.
type Report struct {
	OutputPath string
	Fields     []FieldResult
	Turns      int
}

// Count returns how many fields ended with outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, f := range r.Fields {
		if f.Outcome == o {
			n++
		}
	}
	return n
}

// Filter returns the fields that ended with outcome o, in document order.
func (r *Report) Filter(o Outcome) []FieldResult {
	var out []FieldResult
	for _, f := range r.Fields {
		if f.Outcome == o {
			out = append(out, f)
		}
	}
	return out
}
