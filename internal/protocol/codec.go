// Package protocol implements the line-oriented command language spoken
// with the form-filling assistant.
//
// The user side sends two commands:
//
//	INFO <key> <value>
//	FILL <label>
//
// and the assistant answers with one of:
//
//	OK
//	ENTER <value>
//	MISSING <name> <description>
//
// Everything here is pure string translation; no I/O happens in this
// package.
package protocol

import (
	"strings"
	"unicode"
)

// Command keywords.
const (
	CmdInfo = "INFO"
	CmdFill = "FILL"

	ReplyOK      = "OK"
	ReplyEnter   = "ENTER"
	ReplyMissing = "MISSING"
)

// separator between a keyword and its payload.
const sep = " "

// Fact is one item of background knowledge sent with INFO.
type Fact struct {
	Key   string
	Value string
}

// EncodeInfo renders a single INFO line. Key and value must not contain
// line breaks.
func EncodeInfo(key, value string) string {
	return CmdInfo + sep + key + sep + value
}

// EncodeFactSheet renders all facts as newline-joined INFO lines, in order.
func EncodeFactSheet(facts []Fact) string {
	lines := make([]string, len(facts))
	for i, f := range facts {
		lines[i] = EncodeInfo(f.Key, f.Value)
	}
	return strings.Join(lines, "\n")
}

// EncodeFill renders a FILL line for the given field label.
func EncodeFill(label string) string {
	return CmdFill + sep + label
}

// Label picks the text a FILL turn is issued with: the description when
// present, else the name. ok is false when the field has neither and must
// be skipped.
func Label(description, name *string) (label string, ok bool) {
	if description != nil && *description != "" {
		return *description, true
	}
	if name != nil && *name != "" {
		return *name, true
	}
	return "", false
}

// Decode classifies an assistant reply by its leading token. The returned
// error is non-nil only for unrecognized replies, in which case the Reply
// still carries the raw text with KindUnrecognized.
func Decode(raw string) (Reply, error) {
	token, rest := cutToken(raw)

	switch token {
	case ReplyEnter:
		// A single separator is stripped; the rest is the value verbatim.
		return Reply{Kind: KindEntered, Text: payload(rest), Raw: raw}, nil
	case ReplyMissing:
		return Reply{Kind: KindMissing, Payload: payload(rest), Raw: raw}, nil
	case ReplyOK:
		return Reply{Kind: KindAcknowledged, Raw: raw}, nil
	}

	return Reply{Kind: KindUnrecognized, Raw: raw}, &UnrecognizedReplyError{Raw: raw}
}

// cutToken splits off the leading keyword. The keyword ends at the first
// whitespace rune, so "MISSING:" is not the MISSING keyword.
func cutToken(raw string) (token, rest string) {
	i := strings.IndexFunc(raw, unicode.IsSpace)
	if i < 0 {
		return raw, ""
	}
	return raw[:i], raw[i:]
}

// payload drops exactly one separator space or tab from rest. A keyword
// followed by a line break keeps the break as part of its payload.
func payload(rest string) string {
	if rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
		return rest[1:]
	}
	return rest
}
