// Package errors defines the syntax error type shared by the lexer and parser.
package errors

import "fmt"

// SourceLocation is a 1-indexed line/column position in the input source.
type SourceLocation struct {
	Line   uint32
	Column uint32
}

// String returns the location as "line:column".
func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// SyntaxError is the single error kind produced by the compiler front-end.
// The first error latches: once one is recorded, all later parse routines
// fail without replacing it.
type SyntaxError struct {
	Message  string
	Location SourceLocation
}

// New returns a SyntaxError with the given message and location.
func New(message string, location SourceLocation) *SyntaxError {
	return &SyntaxError{Message: message, Location: location}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: Syntax error: %s.", e.Location, e.Message)
}
