package trie

import (
	"fmt"

	"github.com/shruggr/subjecttrie/cache"
	"github.com/shruggr/subjecttrie/cache/memory"
	"github.com/shruggr/subjecttrie/cache/noop"
	"github.com/shruggr/subjecttrie/token"
)

// Config for building a Trie with its own text parser and result cache
type Config struct {
	CacheSize      int    // Max cached lookups; 0 disables the cache
	Separator      rune   // Segment separator, default '.'
	SingleWildcard string // Single-segment marker, default "*"
	MultiWildcard  string // Multi-segment marker, default ">"
	RejectEmpty    bool   // Treat empty segments as parse errors
}

// DefaultConfig returns NATS-style syntax with a 1024-entry cache
func DefaultConfig() Config {
	return Config{
		CacheSize:      1024,
		Separator:      token.DefaultSeparator,
		SingleWildcard: token.DefaultSingleWildcard,
		MultiWildcard:  token.DefaultMultiWildcard,
	}
}

// New creates an empty trie from config. A nil config means DefaultConfig.
func New[V comparable](config *Config) (*Trie[V], error) {
	if config == nil {
		c := DefaultConfig()
		config = &c
	}
	if config.CacheSize < 0 {
		return nil, fmt.Errorf("CacheSize must not be negative, got %d", config.CacheSize)
	}

	common, err := token.NewCommonParser(config.Separator, config.SingleWildcard, config.MultiWildcard)
	if err != nil {
		return nil, fmt.Errorf("invalid parser config: %w", err)
	}
	var parser token.Parser = common
	if config.RejectEmpty {
		parser = token.NewStrictParser(common)
	}

	var rc cache.ResultCache[V]
	if config.CacheSize == 0 {
		rc = noop.New[V]()
	} else {
		rc, err = memory.New[V](config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
	}

	return NewWithParser(parser, rc), nil
}
