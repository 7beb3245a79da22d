package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a feature line that cannot be converted: too
	// few columns, non-integer coordinates or no ID attribute.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMalformedDate marks a creation header whose date is not YYMMDD.
	ErrMalformedDate = errors.New("malformed date")

	// ErrMalformedHeader marks a creation header with an empty product or
	// source.
	ErrMalformedHeader = errors.New("malformed provenance header")

	// ErrOrphanContinuation marks a "# #" line seen before any creation header.
	ErrOrphanContinuation = errors.New("continuation comment before any creation header")
)

// maxErrorText caps how much of the offending line an error message quotes.
const maxErrorText = 80

// LineError ties a conversion failure to its 1-based input line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	text := e.Text
	if len(text) > maxErrorText {
		text = text[:maxErrorText] + "..."
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(lineNo int, text string, err error) error {
	return &LineError{Line: lineNo, Text: text, Err: err}
}
