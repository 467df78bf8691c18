package globset

import "fmt"

// ErrorKind is the category of pattern parse error.
type ErrorKind int

const (
	// UnclosedClass is an unclosed character class, e.g. `[a-z`.
	UnclosedClass ErrorKind = iota + 1
	// InvalidRange is an inverted character range, e.g. `[z-a]`.
	InvalidRange
	// UnopenedAlternates is a `}` with no matching `{`.
	UnopenedAlternates
	// UnclosedAlternates is a `{` with no matching `}`.
	UnclosedAlternates
	// DanglingEscape is a pattern ending with `\`.
	DanglingEscape
)

func (k ErrorKind) String() string {
	switch k {
	case UnclosedClass:
		return "unclosed character class"
	case InvalidRange:
		return "invalid character range"
	case UnopenedAlternates:
		return "unopened alternation group '}' without '{"
	case UnclosedAlternates:
		return "unclosed alternation group '{' without '}'"
	case DanglingEscape:
		return `dangling escape '\' at end of pattern`
	default:
		return "unknown error"
	}
}

// Error reports a structurally invalid glob pattern.
type Error struct {
	glob   string
	kind   ErrorKind
	lo, hi byte // the offending bounds when kind is InvalidRange
}

func newError(kind ErrorKind, glob string) *Error {
	return &Error{glob: glob, kind: kind}
}

// Glob returns the pattern that caused this error.
func (e *Error) Glob() string { return e.glob }

// Kind returns the category of this error.
func (e *Error) Kind() ErrorKind { return e.kind }

// Range returns the offending range bounds for an InvalidRange error.
func (e *Error) Range() (lo, hi byte) { return e.lo, e.hi }

func (e *Error) Error() string {
	if e.kind == InvalidRange {
		return fmt.Sprintf("error parsing glob %q: invalid character range '%c'-'%c'", e.glob, e.lo, e.hi)
	}
	return fmt.Sprintf("error parsing glob %q: %s", e.glob, e.kind)
}
