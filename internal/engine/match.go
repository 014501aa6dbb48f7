package engine

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// LongestPrefix scans items in order and returns the one owning the key that
// matches the longest prefix of input. Empty keys never match. When two keys
// have the same length the item scanned first wins.
func LongestPrefix[T any](items []T, input string, keys func(T) []string) (best T, key string, ok bool) {
	for _, item := range items {
		for _, k := range keys(item) {
			if k == "" || len(k) <= len(key) {
				continue
			}
			if strings.HasPrefix(input, k) {
				best, key, ok = item, k, true
			}
		}
	}
	return best, key, ok
}

// ReadSymbols returns the symbols a transition reads, whatever its payload.
func ReadSymbols(t domain.Transition) []string {
	switch p := t.Payload.(type) {
	case domain.Symbols:
		return p
	case domain.Pairs:
		out := make([]string, 0, len(p))
		for _, pair := range p {
			out = append(out, pair.In)
		}
		return out
	case domain.StackOp:
		return []string{p.Read}
	case domain.TapeOp:
		return []string{p.Read}
	}
	return nil
}

// SymbolsOf returns the symbol set of a transition, or nil when the payload is not Symbols.
func SymbolsOf(t domain.Transition) []string {
	if p, ok := t.Payload.(domain.Symbols); ok {
		return p
	}
	return nil
}

// Contains reports whether symbols holds s.
func Contains(symbols []string, s string) bool {
	for _, sym := range symbols {
		if sym == s {
			return true
		}
	}
	return false
}
