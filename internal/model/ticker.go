package model

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyTicker is returned when a symbol is blank after normalization.
var ErrEmptyTicker = errors.New("empty ticker")

// NormalizeTicker trims surrounding whitespace and upper-cases a symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseTicker normalizes s and rejects empty symbols.
func ParseTicker(s string) (string, error) {
	t := NormalizeTicker(s)
	if t == "" {
		return "", ErrEmptyTicker
	}
	return t, nil
}

// TickerSet is an unordered set of normalized symbols.
type TickerSet map[string]struct{}

// NewTickerSet builds a set from raw symbols, skipping blanks.
func NewTickerSet(symbols ...string) TickerSet {
	s := make(TickerSet, len(symbols))
	for _, sym := range symbols {
		s.Add(sym)
	}
	return s
}

// Has reports whether the normalized symbol is in the set.
func (s TickerSet) Has(symbol string) bool {
	_, ok := s[NormalizeTicker(symbol)]
	return ok
}

// Add inserts a symbol and reports whether the set changed.
func (s TickerSet) Add(symbol string) bool {
	t := NormalizeTicker(symbol)
	if t == "" {
		return false
	}
	if _, ok := s[t]; ok {
		return false
	}
	s[t] = struct{}{}
	return true
}

// Remove deletes a symbol and reports whether the set changed.
func (s TickerSet) Remove(symbol string) bool {
	t := NormalizeTicker(symbol)
	if _, ok := s[t]; !ok {
		return false
	}
	delete(s, t)
	return true
}

// Sorted returns the members in ascending order for presentation.
func (s TickerSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s TickerSet) Clone() TickerSet {
	c := make(TickerSet, len(s))
	for t := range s {
		c[t] = struct{}{}
	}
	return c
}
