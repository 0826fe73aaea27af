package json

import "fmt"

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnterminatedString
	InvalidEscape
	InvalidNumber
	UnexpectedEnd
	TrailingContent
	DepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedString:
		return "unterminated string"
	case InvalidEscape:
		return "invalid escape"
	case InvalidNumber:
		return "invalid number"
	case UnexpectedEnd:
		return "unexpected end of input"
	case TrailingContent:
		return "trailing content"
	case DepthExceeded:
		return "depth exceeded"
	}
	return "parse error"
}

// ParseError describes a single malformed spot in the source text.
// It carries no partial tree: a document either parses or it doesn't.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Kind)
}

// TypeMismatchError is returned by the typed accessors on Value when the
// caller asked for a shape the value does not have.
type TypeMismatchError struct {
	Expected Kind
	Actual   Kind
	Path     string
}

func (e *TypeMismatchError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("expected %s at %s, found %s", e.Expected, path, e.Actual)
}

// NotFoundError reports a missing object key or an array index out of range.
type NotFoundError struct {
	Path  string
	Key   string
	Index int
}

func (e *NotFoundError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	if e.Key != "" {
		return fmt.Sprintf("missing key %q at %s", e.Key, path)
	}
	return fmt.Sprintf("index %d out of range at %s", e.Index, path)
}
