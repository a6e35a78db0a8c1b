package protocol

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedReply indicates the assistant answered with something
// other than OK, ENTER or MISSING.
var ErrUnrecognizedReply = errors.New("unrecognized assistant reply")

// UnrecognizedReplyError carries the raw reply that failed to decode.
type UnrecognizedReplyError struct {
	Raw string
}

func (e *UnrecognizedReplyError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnrecognizedReply, e.Raw)
}

func (e *UnrecognizedReplyError) Unwrap() error {
	return ErrUnrecognizedReply
}
