package engine

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// NormalizeSymbols trims every symbol, drops empty ones and removes duplicates.
// The order of first occurrence is kept. The result is never nil.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizePairs trims both sides of every pair and drops pairs with an empty input.
// A repeated input keeps the position of its first occurrence and the output of its last.
func NormalizePairs(pairs []domain.Pair) []domain.Pair {
	out := make([]domain.Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		in := strings.TrimSpace(p.In)
		if in == "" {
			continue
		}
		norm := domain.Pair{In: in, Out: strings.TrimSpace(p.Out)}
		if i, ok := index[in]; ok {
			out[i] = norm
			continue
		}
		index[in] = len(out)
		out = append(out, norm)
	}
	return out
}

// SplitSymbols splits s into one symbol per rune.
func SplitSymbols(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// SymbolConflict checks that no symbol of t is already used by another
// transition leaving the same state. It returns "" when t keeps the source deterministic.
func SymbolConflict(snap *domain.Snapshot, t domain.Transition) string {
	for _, sym := range SymbolsOf(t) {
		for _, tr := range snap.Transitions {
			if tr.From != t.From || tr.ID == t.ID {
				continue
			}
			if Contains(SymbolsOf(tr), sym) {
				return fmt.Sprintf("symbol '%s' is already used from %s", sym, t.From)
			}
		}
	}
	return ""
}

// JoinSymbols renders a symbol list as an edge label.
func JoinSymbols(t domain.Transition) string {
	return strings.Join(SymbolsOf(t), ", ")
}
