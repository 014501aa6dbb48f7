package dfa

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(id, from, to string, symbols ...string) domain.Transition {
	return domain.Transition{ID: id, From: from, To: to, Payload: domain.Symbols(symbols)}
}

// evenAs accepts strings over {a,b} with an even number of a's.
func evenAs() *domain.Snapshot {
	return &domain.Snapshot{
		Type: domain.KindDFA,
		Meta: domain.Meta{},
		States: []domain.State{
			{ID: "q0", Label: "q0", IsInitial: true, IsFinal: true},
			{ID: "q1", Label: "q1"},
		},
		Transitions: []domain.Transition{
			sym("t1", "q0", "q1", "a"),
			sym("t2", "q0", "q0", "b"),
			sym("t3", "q1", "q0", "a"),
			sym("t4", "q1", "q1", "b"),
		},
	}
}

func TestSimulate_EvenAs(t *testing.T) {
	f := New()
	tests := []struct {
		input string
		want  domain.Status
	}{
		{"", domain.StatusAccepted},
		{"aa", domain.StatusAccepted},
		{"abba", domain.StatusAccepted},
		{"aaaa", domain.StatusAccepted},
		{"bbb", domain.StatusAccepted},
		{"aba", domain.StatusAccepted},
		{"a", domain.StatusRejected},
		{"ab", domain.StatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := f.Simulate(evenAs(), tt.input)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestSimulate_StepTrace(t *testing.T) {
	res := New().Simulate(evenAs(), "abba")

	require.Len(t, res.Steps, 5)
	assert.Equal(t, domain.SimulationStep{CurrentState: "q0", RemainingInput: "abba"}, res.Steps[0])
	assert.Equal(t, "q1", res.Steps[1].CurrentState)
	assert.Equal(t, "a", res.Steps[1].ConsumedSymbol)
	assert.Equal(t, "bba", res.Steps[1].RemainingInput)
	assert.Equal(t, "", res.Steps[4].RemainingInput)
	assert.Equal(t, []string{"q0"}, res.FinalStates)
}

func TestSimulate_LongestMatch(t *testing.T) {
	snap := &domain.Snapshot{
		Type: domain.KindDFA,
		States: []domain.State{
			{ID: "q0", IsInitial: true},
			{ID: "q1", IsFinal: true},
		},
		Transitions: []domain.Transition{sym("t1", "q0", "q1", "a", "ab")},
	}

	res := New().Simulate(snap, "ab")

	assert.Equal(t, domain.StatusAccepted, res.Status)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, "ab", res.Steps[1].ConsumedSymbol)
}

func TestSimulate_TieGoesToDeclarationOrder(t *testing.T) {
	snap := &domain.Snapshot{
		Type: domain.KindDFA,
		States: []domain.State{
			{ID: "q0", IsInitial: true},
			{ID: "q1", IsFinal: true},
			{ID: "q2"},
		},
		Transitions: []domain.Transition{
			sym("t1", "q0", "q1", "a"),
			sym("t2", "q0", "q2", "a"),
		},
	}

	res := New().Simulate(snap, "a")

	assert.Equal(t, domain.StatusAccepted, res.Status)
	assert.Equal(t, []string{"q1"}, res.FinalStates)
}

func TestSimulate_RejectsWhereInputStops(t *testing.T) {
	snap := evenAs()
	snap.Transitions = snap.Transitions[:1]

	res := New().Simulate(snap, "ab")

	assert.Equal(t, domain.StatusRejected, res.Status)
	assert.Len(t, res.Steps, 2)
	assert.Equal(t, []string{"q1"}, res.FinalStates)
	assert.Equal(t, "b", res.Steps[1].RemainingInput)
}

func TestSimulate_NoInitialState(t *testing.T) {
	snap := evenAs()
	snap.States[0].IsInitial = false

	res := New().Simulate(snap, "aa")

	assert.Equal(t, domain.StatusRejected, res.Status)
	assert.Empty(t, res.Steps)
}

func TestSimulate_DoesNotMutateSnapshot(t *testing.T) {
	snap := evenAs()
	before := snap.Clone()

	New().Simulate(snap, "abba")

	assert.Equal(t, before, snap)
}

func TestValidateAddTransition(t *testing.T) {
	f := New()
	snap := evenAs()

	msg := f.ValidateAddTransition(snap, sym("t9", "q0", "q1", "c", "a"))
	assert.Contains(t, msg, "'a'")
	assert.Contains(t, msg, "q0")

	assert.Empty(t, f.ValidateAddTransition(snap, sym("t9", "q0", "q1", "c")))
	// Editing an existing transition does not conflict with itself.
	assert.Empty(t, f.ValidateAddTransition(snap, sym("t1", "q0", "q1", "a")))
}

func TestNormalizeTransition(t *testing.T) {
	got := New().NormalizeTransition(sym("t1", "q0", "q1", " a ", "b", "a", "", "  "))
	assert.Equal(t, domain.Symbols{"a", "b"}, got.Payload)
	assert.Equal(t, "a, b", New().FormatTransitionLabel(got))
}

func TestCreateState(t *testing.T) {
	f := New()
	first := f.CreateState(0, 10, 20)
	assert.Equal(t, domain.State{ID: "q0", Label: "q0", X: 10, Y: 20, IsInitial: true}, first)
	assert.False(t, f.CreateState(3, 0, 0).IsInitial)
	assert.Equal(t, "q3", f.CreateState(3, 0, 0).ID)
}

func TestConvertFrom(t *testing.T) {
	f := New()

	t.Run("same kind copies", func(t *testing.T) {
		src := evenAs()
		conv := f.ConvertFrom(src)
		assert.Empty(t, conv.Warnings)
		assert.Equal(t, src, conv.Snapshot)
		conv.Snapshot.States[0].Label = "changed"
		assert.Equal(t, "q0", src.States[0].Label)
	})

	t.Run("from nfa", func(t *testing.T) {
		src := &domain.Snapshot{
			Type:   domain.KindNFA,
			Meta:   domain.Meta{"epsilon": "ε"},
			States: []domain.State{{ID: "q0", IsInitial: true, IsFinal: true}},
			Transitions: []domain.Transition{
				sym("t1", "q0", "q0", "a", "b"),
			},
		}
		conv := f.ConvertFrom(src)
		assert.Equal(t, domain.KindDFA, conv.Snapshot.Type)
		assert.Len(t, conv.Snapshot.States, 1)
		assert.Len(t, conv.Snapshot.Transitions, 1)
		assert.Empty(t, conv.Warnings)
	})

	t.Run("nondeterministic source is reported", func(t *testing.T) {
		src := &domain.Snapshot{
			Type:   domain.KindNFA,
			States: []domain.State{{ID: "q0", IsInitial: true}, {ID: "q1"}},
			Transitions: []domain.Transition{
				sym("t1", "q0", "q0", "a"),
				sym("t2", "q0", "q1", "a"),
			},
		}
		conv := f.ConvertFrom(src)
		require.NotEmpty(t, conv.Warnings)
		assert.Contains(t, conv.Warnings[0], "not deterministic")
	})

	t.Run("from mealy keeps inputs", func(t *testing.T) {
		src := &domain.Snapshot{
			Type:   domain.KindMealy,
			States: []domain.State{{ID: "q0", IsInitial: true}},
			Transitions: []domain.Transition{
				{ID: "t1", From: "q0", To: "q0", Payload: domain.Pairs{{In: "a", Out: "x"}, {In: "b", Out: "y"}}},
			},
		}
		conv := f.ConvertFrom(src)
		require.Len(t, conv.Snapshot.Transitions, 1)
		assert.Equal(t, domain.Symbols{"a", "b"}, conv.Snapshot.Transitions[0].Payload)
		assert.NotEmpty(t, conv.Warnings)
	})
}
