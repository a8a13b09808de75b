package numext

import (
	"fmt"

	"github.com/juju/errors"
)

// Sentinel causes for construction-time failures. They sit at the
// bottom of every *Error's cause chain, so callers can classify a
// failure with errors.Is without inspecting message text.
const (
	// ErrBadToken reports a mini-language atom that does not conform
	// to the token grammar.
	ErrBadToken = errors.ConstError("bad token")

	// ErrLineCompile reports a line pattern whose token sequence
	// cannot be compiled into a regex fragment.
	ErrLineCompile = errors.ConstError("cannot compile line pattern")

	// ErrBadSection reports a structurally invalid parser definition,
	// such as a missing body or a nested parser used as head or tail.
	ErrBadSection = errors.ConstError("bad parser section")
)

// This Error type is being used to address an error during token
// parsing, line compilation or parser construction. Sender names the
// component that raised it ("token", "line" or "parser"); Atom and
// Pattern carry the offending input where available. It's okay if only
// OrigError is filled in when no other details are at hand.
//
// A failure to match at extraction time is never reported through
// Error: the Capture methods return empty results instead.
type Error struct {
	Sender    string
	Atom      string
	Pattern   string
	OrigError error
}

// Returns a nice formatted error string.
func (e *Error) Error() string {
	s := "[Error"
	if e.Sender != "" {
		s += " (where: " + e.Sender + ")"
	}
	if e.Atom != "" {
		s += fmt.Sprintf(" near '%s'", e.Atom)
	}
	if e.Pattern != "" {
		s += fmt.Sprintf(" in pattern '%s'", e.Pattern)
	}
	s += "] "
	if e.OrigError != nil {
		s += e.OrigError.Error()
	}
	return s
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.OrigError
}

func badToken(atom, format string, args ...any) error {
	return &Error{
		Sender:    "token",
		Atom:      atom,
		OrigError: fmt.Errorf("%w: %s", ErrBadToken, fmt.Sprintf(format, args...)),
	}
}

func badLine(pattern, format string, args ...any) error {
	return &Error{
		Sender:    "line",
		Pattern:   pattern,
		OrigError: fmt.Errorf("%w: %s", ErrLineCompile, fmt.Sprintf(format, args...)),
	}
}

func badSection(format string, args ...any) error {
	return &Error{
		Sender:    "parser",
		OrigError: fmt.Errorf("%w: %s", ErrBadSection, fmt.Sprintf(format, args...)),
	}
}
