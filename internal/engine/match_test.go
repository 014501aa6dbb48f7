package engine

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type keyed struct {
	name string
	keys []string
}

func keysOf(k keyed) []string { return k.keys }

func TestLongestPrefix(t *testing.T) {
	tests := []struct {
		name    string
		items   []keyed
		input   string
		want    string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "longest wins",
			items:   []keyed{{"short", []string{"a"}}, {"long", []string{"ab"}}},
			input:   "abc",
			want:    "long",
			wantKey: "ab",
			wantOK:  true,
		},
		{
			name:    "longest wins regardless of order",
			items:   []keyed{{"long", []string{"ab"}}, {"short", []string{"a"}}},
			input:   "abc",
			want:    "long",
			wantKey: "ab",
			wantOK:  true,
		},
		{
			name:    "tie goes to first scanned",
			items:   []keyed{{"first", []string{"ab"}}, {"second", []string{"ab"}}},
			input:   "ab",
			want:    "first",
			wantKey: "ab",
			wantOK:  true,
		},
		{
			name:    "tie inside one item keeps its first key",
			items:   []keyed{{"only", []string{"ab", "ab"}}},
			input:   "ab",
			want:    "only",
			wantKey: "ab",
			wantOK:  true,
		},
		{
			name:   "empty key never matches",
			items:  []keyed{{"empty", []string{""}}},
			input:  "abc",
			wantOK: false,
		},
		{
			name:    "empty key ignored next to a real one",
			items:   []keyed{{"empty", []string{""}}, {"real", []string{"a"}}},
			input:   "abc",
			want:    "real",
			wantKey: "a",
			wantOK:  true,
		},
		{
			name:   "empty input",
			items:  []keyed{{"a", []string{"a"}}},
			input:  "",
			wantOK: false,
		},
		{
			name:   "no match",
			items:  []keyed{{"x", []string{"x", "yz"}}},
			input:  "abc",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, key, ok := LongestPrefix(tt.items, tt.input, keysOf)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.want, got.name)
		})
	}
}

func TestReadSymbols(t *testing.T) {
	tests := []struct {
		name    string
		payload domain.Payload
		want    []string
	}{
		{"symbols", domain.Symbols{"a", "b"}, []string{"a", "b"}},
		{"pairs", domain.Pairs{{In: "a", Out: "x"}, {In: "bc", Out: "y"}}, []string{"a", "bc"}},
		{"stack", domain.StackOp{Read: "a", Pop: "$", Push: "A$"}, []string{"a"}},
		{"tape", domain.TapeOp{Read: "0", Write: "1", Move: "R"}, []string{"0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadSymbols(domain.Transition{Payload: tt.payload}))
		})
	}
	assert.Nil(t, SymbolsOf(domain.Transition{Payload: domain.TapeOp{Read: "0"}}))
}
