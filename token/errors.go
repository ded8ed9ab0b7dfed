package token

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyToken is returned by StrictParser for an empty subject or an
	// empty segment between separators.
	ErrEmptyToken = errors.New("empty token")

	// ErrMultiWildcardNotAtEnd is returned when any token follows a multi
	// wildcard.
	ErrMultiWildcardNotAtEnd = errors.New("multi wildcard not at end")
)

// ParseError describes why a subject could not be parsed.
type ParseError struct {
	Subject  string
	Position int // 1-based segment index of the offending token
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: segment %d: %v", e.Subject, e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
