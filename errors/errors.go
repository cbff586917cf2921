package errors

import "fmt"

// Kind identifies the class of fault detected while parsing a line.
type Kind int

const (
	// MissingKey is reported when a pair starts with '=', a quote or any
	// other character that cannot begin a key.
	MissingKey Kind = iota + 1
	// MissingAssignmentOperator is reported when a key is followed by
	// something other than '='.
	MissingAssignmentOperator
	// MissingValue is reported when input ends after '=' without a value.
	MissingValue
	// MissingEndQuote is reported when a quoted value is never closed.
	MissingEndQuote
	// IncompleteKeyValuePair is reported when input ends while a key is
	// still being read or before its '=' was seen.
	IncompleteKeyValuePair
	// InvalidKey is reported by strict parsers for keys outside the allow-list.
	InvalidKey
)

var kindNames = map[Kind]string{
	MissingKey:                "missing key",
	MissingAssignmentOperator: "missing assignment operator",
	MissingValue:              "missing value",
	MissingEndQuote:           "missing end quote",
	IncompleteKeyValuePair:    "incomplete key value pair",
	InvalidKey:                "invalid key",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseError represents the single fault that aborted a parse.
// Position is the zero-based character offset into the original input.
// Key is empty when no key is associated with the fault.
type ParseError struct {
	Kind     Kind
	Key      string
	Position int
}

// New returns a ParseError of the given kind without an associated key.
func New(kind Kind, position int) *ParseError {
	return &ParseError{Kind: kind, Position: position}
}

// WithKey returns a ParseError of the given kind for key.
func WithKey(kind Kind, key string, position int) *ParseError {
	return &ParseError{Kind: kind, Key: key, Position: position}
}

func (e *ParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("kvline: %s at position %d (key %q)", e.Kind, e.Position, e.Key)
	}
	return fmt.Sprintf("kvline: %s at position %d", e.Kind, e.Position)
}

// Is reports whether target is a ParseError of the same Kind. This lets
// callers match on the sentinels below with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrMissingKey                = &ParseError{Kind: MissingKey}
	ErrMissingAssignmentOperator = &ParseError{Kind: MissingAssignmentOperator}
	ErrMissingValue              = &ParseError{Kind: MissingValue}
	ErrMissingEndQuote           = &ParseError{Kind: MissingEndQuote}
	ErrIncompleteKeyValuePair    = &ParseError{Kind: IncompleteKeyValuePair}
	ErrInvalidKey                = &ParseError{Kind: InvalidKey}
)
