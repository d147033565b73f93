package nordic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructural matches errors about the shape or order of whole lines.
	ErrStructural = errors.New("nordic: structural error")

	// ErrFieldFormat matches errors confined to a single field.
	ErrFieldFormat = errors.New("nordic: field format error")
)

// Reasons carried by OutOfOrderError.
const (
	ReasonRefinementBeforeHypocenter = "refinement before hypocenter"
	ReasonPhaseBeforeTerminator      = "phase card before header terminator"
)

// LineLengthError reports a non-blank line that is not exactly LineWidth
// characters long. Length counts characters, not bytes.
type LineLengthError struct {
	Line   int
	Text   string
	Length int
}

func (e *LineLengthError) Error() string {
	return fmt.Sprintf("line %d: invalid line length %d, want %d", e.Line, e.Length, LineWidth)
}

func (e *LineLengthError) Is(target error) bool { return target == ErrStructural }

// LineTypeError reports a line handed to a decoder for a different type.
type LineTypeError struct {
	Line int
	Text string
	Want rune
	Got  rune
}

func (e *LineTypeError) Error() string {
	return fmt.Sprintf("line %d: invalid line type %q, want %q", e.Line, e.Got, e.Want)
}

func (e *LineTypeError) Is(target error) bool { return target == ErrStructural }

// NumericFormatError reports a non-blank field that does not parse as a number.
type NumericFormatError struct {
	Line int
	Span Span
	Raw  string
	Kind string // "int" or "float"
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("line %d: columns %d-%d: invalid %s %q", e.Line, e.Span.Start, e.Span.End, e.Kind, e.Raw)
}

func (e *NumericFormatError) Is(target error) bool { return target == ErrFieldFormat }

// FieldErrors collects the field-level failures of one line. The record
// returned alongside it has those fields absent.
type FieldErrors []*NumericFormatError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (fe FieldErrors) Unwrap() []error {
	errs := make([]error, len(fe))
	for i, e := range fe {
		errs[i] = e
	}
	return errs
}

// OutOfOrderError reports a card that is not allowed in the current state.
type OutOfOrderError struct {
	Line   int
	Text   string
	Reason string
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("line %d: out of order: %s", e.Line, e.Reason)
}

func (e *OutOfOrderError) Is(target error) bool { return target == ErrStructural }

// DuplicateHypocenterWarning reports a second type-1 line inside an open
// event. The line is dropped; it never aborts processing.
type DuplicateHypocenterWarning struct {
	Line  int
	Text  string
	First int // line of the hypocenter that opened the event
}

func (e *DuplicateHypocenterWarning) Error() string {
	return fmt.Sprintf("line %d: ignoring extra hypocenter line for event opened at line %d", e.Line, e.First)
}

// UnterminatedEventError reports end of input while an event is still open.
type UnterminatedEventError struct {
	Line  int // line of the hypocenter that opened the event
	Picks int
}

func (e *UnterminatedEventError) Error() string {
	return fmt.Sprintf("line %d: event not terminated by a blank line (%d picks)", e.Line, e.Picks)
}

func (e *UnterminatedEventError) Is(target error) bool { return target == ErrStructural }

// InvalidTimestampError reports calendar fields that do not form a valid time.
type InvalidTimestampError struct {
	Year, Month, Day, Hour, Minute int
	Second                         float64
	Reason                         string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %04d-%02d-%02d %02d:%02d:%06.3f: %s",
		e.Year, e.Month, e.Day, e.Hour, e.Minute, e.Second, e.Reason)
}

// Diagnostic is a recoverable problem reported in lenient mode, or a warning
// reported in either mode.
type Diagnostic struct {
	Line int
	Err  error
}

// Kind returns a stable label for the diagnostic's error, suitable for
// metrics and log fields.
func (d Diagnostic) Kind() string { return ErrorKind(d.Err) }

// ErrorKind maps an error from this package to a short label.
func ErrorKind(err error) string {
	var (
		lengthErr    *LineLengthError
		typeErr      *LineTypeError
		numErr       *NumericFormatError
		orderErr     *OutOfOrderError
		dupWarn      *DuplicateHypocenterWarning
		unterminated *UnterminatedEventError
		tsErr        *InvalidTimestampError
	)
	switch {
	case errors.As(err, &lengthErr):
		return "line_length"
	case errors.As(err, &typeErr):
		return "line_type"
	case errors.As(err, &numErr):
		return "numeric_format"
	case errors.As(err, &orderErr):
		return "out_of_order"
	case errors.As(err, &dupWarn):
		return "duplicate_hypocenter"
	case errors.As(err, &unterminated):
		return "unterminated_event"
	case errors.As(err, &tsErr):
		return "invalid_timestamp"
	default:
		return "unknown"
	}
}
