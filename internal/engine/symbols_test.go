package engine

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbols(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeSymbols([]string{" a", "b ", "", "a", "  "}))
	assert.Equal(t, []string{}, NormalizeSymbols(nil))
}

func TestNormalizePairs(t *testing.T) {
	tests := []struct {
		name string
		in   []domain.Pair
		want []domain.Pair
	}{
		{
			name: "trims both sides",
			in:   []domain.Pair{{In: " a ", Out: " x "}},
			want: []domain.Pair{{In: "a", Out: "x"}},
		},
		{
			name: "drops empty inputs",
			in:   []domain.Pair{{In: "  ", Out: "x"}, {In: "b", Out: ""}},
			want: []domain.Pair{{In: "b", Out: ""}},
		},
		{
			name: "last output wins at first position",
			in: []domain.Pair{
				{In: "a", Out: "1"},
				{In: "b", Out: "2"},
				{In: " a", Out: "3"},
			},
			want: []domain.Pair{{In: "a", Out: "3"}, {In: "b", Out: "2"}},
		},
		{
			name: "empty",
			in:   nil,
			want: []domain.Pair{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePairs(tt.in))
		})
	}
}

func TestSymbolConflict(t *testing.T) {
	snap := &domain.Snapshot{
		Type:   domain.KindDFA,
		States: []domain.State{{ID: "q0", IsInitial: true}, {ID: "q1"}},
		Transitions: []domain.Transition{
			{ID: "t1", From: "q0", To: "q1", Payload: domain.Symbols{"a", "b"}},
		},
	}

	assert.Equal(t, "symbol 'b' is already used from q0",
		SymbolConflict(snap, domain.Transition{ID: "t2", From: "q0", To: "q0", Payload: domain.Symbols{"c", "b"}}))
	assert.Empty(t, SymbolConflict(snap, domain.Transition{ID: "t2", From: "q1", To: "q0", Payload: domain.Symbols{"a"}}))
	assert.Empty(t, SymbolConflict(snap, domain.Transition{ID: "t1", From: "q0", To: "q0", Payload: domain.Symbols{"a"}}), "editing t1 itself")
}

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"a", "ε", "b"}, SplitSymbols("aεb"))
	assert.Empty(t, SplitSymbols(""))
}
