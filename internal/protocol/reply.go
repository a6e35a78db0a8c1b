package protocol

import "strings"

// ReplyKind identifies which variant a decoded reply holds.
type ReplyKind int

const (
	KindUnrecognized ReplyKind = iota
	KindAcknowledged
	KindEntered
	KindMissing
)

func (k ReplyKind) String() string {
	switch k {
	case KindAcknowledged:
		return "acknowledged"
	case KindEntered:
		return "entered"
	case KindMissing:
		return "missing"
	default:
		return "unrecognized"
	}
}

// Reply is the decoded form of one assistant answer. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Reply struct {
	Kind ReplyKind

	// Text is the proposed field value for KindEntered.
	Text string

	// Payload is the undivided remainder after MISSING.
	Payload string

	// Raw is the untouched reply text, kept for every kind.
	Raw string
}

// Acknowledged reports whether the reply is a bare OK.
func (r Reply) Acknowledged() bool { return r.Kind == KindAcknowledged }

// Entered returns the proposed value and whether the reply was ENTER.
func (r Reply) Entered() (string, bool) {
	return r.Text, r.Kind == KindEntered
}

// Missing returns the MISSING payload and whether the reply was MISSING.
func (r Reply) Missing() (string, bool) {
	return r.Payload, r.Kind == KindMissing
}

// Name is the first word of a MISSING payload. The payload itself stays
// opaque; this split is for operator display only.
func (r Reply) Name() string {
	name, _, _ := strings.Cut(r.Payload, " ")
	return name
}

// Description is everything in a MISSING payload after its first word.
func (r Reply) Description() string {
	_, desc, _ := strings.Cut(r.Payload, " ")
	return desc
}
