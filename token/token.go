// Package token defines the typed tokens that subject patterns are made of
// and the parsers that produce them from text.
//
// A subject such as "orders.eu.created" is split on a separator into
// segments. Each segment of a pattern becomes a Literal, a SingleWildcard
// (matches exactly one segment) or a MultiWildcard (matches one or more
// trailing segments and may only appear last).
//
// Wildcard-ness is decided once, at parse time. Code that walks a Sequence
// compares Kinds, never marker text, so a literal segment can never be
// mistaken for a wildcard.
package token

import "strings"

// Kind identifies the variant of a Token.
type Kind uint8

const (
	Literal Kind = iota
	SingleWildcard
	MultiWildcard
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case SingleWildcard:
		return "single-wildcard"
	case MultiWildcard:
		return "multi-wildcard"
	default:
		return "unknown"
	}
}

// Token is one segment of a subject pattern.
// Text is only meaningful for literals; wildcard tokens always carry an
// empty Text so that == compares by variant.
type Token struct {
	Kind Kind
	Text string
}

var (
	// Single matches exactly one segment.
	Single = Token{Kind: SingleWildcard}
	// Multi matches one or more trailing segments.
	Multi = Token{Kind: MultiWildcard}
)

// Lit returns a literal token.
func Lit(text string) Token {
	return Token{Kind: Literal, Text: text}
}

// IsWildcard reports whether t is a single or multi wildcard.
func (t Token) IsWildcard() bool {
	return t.Kind != Literal
}

// Sequence is an ordered list of tokens addressing one subscription entry.
type Sequence []Token

// Validate checks that a multi wildcard, if present, is the last token.
// Parsers enforce this already; Validate is for hand-built sequences.
func (s Sequence) Validate() error {
	for i, t := range s {
		if t.Kind == MultiWildcard && i != len(s)-1 {
			return &ParseError{Subject: s.String(), Position: i + 2, Err: ErrMultiWildcardNotAtEnd}
		}
	}
	return nil
}

// HasWildcard reports whether any token of s is a wildcard.
func (s Sequence) HasWildcard() bool {
	for _, t := range s {
		if t.IsWildcard() {
			return true
		}
	}
	return false
}

// Matches reports whether a cached result for keys could depend on the
// pattern s, i.e. whether inserting or removing s may change what a lookup
// of keys returns. It errs on the side of true.
func (s Sequence) Matches(keys []string) bool {
	switch {
	case len(s) > len(keys):
		return false
	case len(s) < len(keys):
		if len(s) == 0 || s[len(s)-1].Kind != MultiWildcard {
			return false
		}
	}

	for i, t := range s {
		if t.Kind == Literal && t.Text != keys[i] {
			return false
		}
	}
	return true
}

// Format renders s back to text with the given separator and markers.
func (s Sequence) Format(sep rune, single, multi string) string {
	parts := make([]string, len(s))
	for i, t := range s {
		switch t.Kind {
		case SingleWildcard:
			parts[i] = single
		case MultiWildcard:
			parts[i] = multi
		default:
			parts[i] = t.Text
		}
	}
	return strings.Join(parts, string(sep))
}

// String renders s with the NATS-style defaults ('.', "*", ">").
func (s Sequence) String() string {
	return s.Format(DefaultSeparator, DefaultSingleWildcard, DefaultMultiWildcard)
}

// Clone returns a copy of s that shares no backing array with it.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
