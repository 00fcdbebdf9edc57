package osufile

import (
	"errors"
	"fmt"
)

// Error pairs a parse failure with the 0-based index of the source line it
// occurred on. The rendered message uses 1-based line numbers.
type Error struct {
	Line int   // 0-based line index within the parsed text.
	Err  error // Underlying error kind.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("Line %d, %v", e.Line+1, e.Err)
}

// Unwrap returns the underlying error kind.
func (e *Error) Unwrap() error {
	return e.Err
}

// Structural and lexical error kinds shared across section parsers.
var (
	ErrNoFileVersion      = errors.New("no file version defined, expected `osu file format v..` on the first line")
	ErrInvalidFileVersion = errors.New("invalid file version")
	ErrDuplicateSection   = errors.New("duplicate section")
	ErrUnknownSection     = errors.New("unknown section name")
	ErrMissingSection     = errors.New("content outside of any section")

	ErrDuplicateField   = errors.New("duplicate field")
	ErrInvalidKey       = errors.New("invalid key")
	ErrMissingColon     = errors.New("expected `key: value` pair")
	ErrInvalidCommaList = errors.New("invalid comma list, expected format of `value,value,...`")

	ErrMissingField = errors.New("missing field")
	ErrInvalidBool  = errors.New("invalid boolean, expected 0 or 1")

	ErrUnknownObjType      = errors.New("unknown hit object type")
	ErrUnknownEventType    = errors.New("unknown event type")
	ErrUnknownCommandType  = errors.New("unknown storyboard command type")
	ErrCommandWithNoObject = errors.New("storyboard command has no sprite or animation to belong to")

	ErrVariableSyntax = errors.New("invalid variable, expected format of `$name=value`")
)

// InvalidIndentationError reports a storyboard command line whose indentation
// does not fit the current command tree.
type InvalidIndentationError struct {
	Expected int // Deepest indentation the tree currently accepts.
	Got      int
}

// Error implements the error interface.
func (e *InvalidIndentationError) Error() string {
	return fmt.Sprintf("invalid indentation, expected at most %d, got %d", e.Expected, e.Got)
}

// missingField reports a required field that was absent from the input.
func missingField(name string) error {
	return fmt.Errorf("%w %s", ErrMissingField, name)
}

// errOutOfRange reports a numeric value outside its allowed domain.
func errOutOfRange(n int) error {
	return fmt.Errorf("value %d out of range", n)
}

// invalidField wraps a value parse failure with the field's name.
func invalidField(name string, err error) error {
	return fmt.Errorf("invalid %s: %w", name, err)
}

// errLine attaches a 0-based line index to err. If err already carries one,
// the index is shifted instead so nested frames accumulate their offsets.
func errLine(err error, line int) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{Line: e.Line + line, Err: e.Err}
	}
	return &Error{Line: line, Err: err}
}

// ErrorLine returns the 0-based line index carried by err, or -1 if err holds
// no positional information.
func ErrorLine(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Line
	}
	return -1
}

// ShowErrorLine formats err together with the offending source line and a
// caret marker. Errors without positional information format as-is.
func ShowErrorLine(src string, err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	lines := splitLines(src)
	if e.Line < 0 || e.Line >= len(lines) {
		return e.Error()
	}
	return fmt.Sprintf("%s\n%s\n^", e.Error(), lines[e.Line])
}
