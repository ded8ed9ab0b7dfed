package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultSeparator      = '.'
	DefaultSingleWildcard = "*"
	DefaultMultiWildcard  = ">"
)

// ParseSeparator converts a one-character string, as given on a command
// line, into a separator rune.
func ParseSeparator(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Parser turns subject text into tokens.
type Parser interface {
	// Parse parses a subscription pattern, classifying wildcard markers.
	Parse(subject string) (Sequence, error)

	// Keys splits a concrete subject into lookup keys. No segment is
	// treated as a wildcard.
	Keys(subject string) ([]string, error)
}

// CommonParser splits on a separator rune and recognizes two wildcard
// markers. Empty segments are legal empty literals.
type CommonParser struct {
	Separator      rune
	SingleWildcard string
	MultiWildcard  string
}

// NewCommonParser returns a parser for the given separator and markers.
func NewCommonParser(sep rune, single, multi string) (*CommonParser, error) {
	p := &CommonParser{
		Separator:      sep,
		SingleWildcard: single,
		MultiWildcard:  multi,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// DefaultParser returns the NATS-style parser: '.', "*" and ">".
func DefaultParser() *CommonParser {
	return &CommonParser{
		Separator:      DefaultSeparator,
		SingleWildcard: DefaultSingleWildcard,
		MultiWildcard:  DefaultMultiWildcard,
	}
}

func (p *CommonParser) validate() error {
	sep := string(p.Separator)
	switch {
	case p.Separator == 0:
		return fmt.Errorf("separator is required")
	case p.SingleWildcard == "" || p.MultiWildcard == "":
		return fmt.Errorf("wildcard markers must not be empty")
	case p.SingleWildcard == p.MultiWildcard:
		return fmt.Errorf("wildcard markers must differ, both are %q", p.SingleWildcard)
	case strings.Contains(p.SingleWildcard, sep) || strings.Contains(p.MultiWildcard, sep):
		return fmt.Errorf("wildcard markers must not contain the separator %q", sep)
	}
	return nil
}

// Parse implements Parser.
func (p *CommonParser) Parse(subject string) (Sequence, error) {
	segments := strings.Split(subject, string(p.Separator))
	seq := make(Sequence, 0, len(segments))

	for i, s := range segments {
		if len(seq) > 0 && seq[len(seq)-1].Kind == MultiWildcard {
			return nil, &ParseError{Subject: subject, Position: i + 1, Err: ErrMultiWildcardNotAtEnd}
		}

		switch s {
		case p.SingleWildcard:
			seq = append(seq, Single)
		case p.MultiWildcard:
			seq = append(seq, Multi)
		default:
			seq = append(seq, Lit(s))
		}
	}

	return seq, nil
}

// Keys implements Parser.
func (p *CommonParser) Keys(subject string) ([]string, error) {
	return strings.Split(subject, string(p.Separator)), nil
}

// Format renders seq with this parser's separator and markers.
func (p *CommonParser) Format(seq Sequence) string {
	return seq.Format(p.Separator, p.SingleWildcard, p.MultiWildcard)
}

// StrictParser is a CommonParser that also rejects empty segments,
// including the empty subject.
type StrictParser struct {
	*CommonParser
}

// NewStrictParser wraps p.
func NewStrictParser(p *CommonParser) *StrictParser {
	return &StrictParser{CommonParser: p}
}

// Parse implements Parser.
func (p *StrictParser) Parse(subject string) (Sequence, error) {
	seq, err := p.CommonParser.Parse(subject)
	if err != nil {
		return nil, err
	}
	for i, t := range seq {
		if t.Kind == Literal && t.Text == "" {
			return nil, &ParseError{Subject: subject, Position: i + 1, Err: ErrEmptyToken}
		}
	}
	return seq, nil
}

// Keys implements Parser.
func (p *StrictParser) Keys(subject string) ([]string, error) {
	keys, _ := p.CommonParser.Keys(subject)
	for i, k := range keys {
		if k == "" {
			return nil, &ParseError{Subject: subject, Position: i + 1, Err: ErrEmptyToken}
		}
	}
	return keys, nil
}
