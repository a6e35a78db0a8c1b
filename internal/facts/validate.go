package facts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dennisdenk/vergabe.ai/internal/protocol"
)

var (
	// ErrEmptySheet indicates a fact sheet without any facts.
	ErrEmptySheet = errors.New("fact sheet is empty")

	// ErrInvalidFact indicates a fact that cannot be sent as one INFO line.
	ErrInvalidFact = errors.New("invalid fact")
)

// Validate checks every fact can be encoded as a single INFO line: a
// non-empty key without whitespace, and a value without line breaks.
// Returns all problems found.
func Validate(sheet Sheet) []error {
	var errs []error
	for i, f := range sheet {
		errs = append(errs, validateFact(i, f)...)
	}
	return errs
}

func validateFact(i int, f protocol.Fact) []error {
	var errs []error

	switch {
	case f.Key == "":
		errs = append(errs, fmt.Errorf("%w: fact %d: key is required", ErrInvalidFact, i))
	case strings.ContainsAny(f.Key, " \t\r\n"):
		errs = append(errs, fmt.Errorf("%w: fact %d: key %q must be a single word", ErrInvalidFact, i, f.Key))
	}

	if strings.ContainsAny(f.Value, "\r\n") {
		errs = append(errs, fmt.Errorf("%w: fact %d (%s): value must be a single line", ErrInvalidFact, i, f.Key))
	}

	return errs
}
