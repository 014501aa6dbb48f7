package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diffBase() *Snapshot {
	return &Snapshot{
		Type: KindDFA,
		Meta: Meta{"author": "alice", "note": "draft"},
		States: []State{
			{ID: "q0", Label: "q0", IsInitial: true},
			{ID: "q1", Label: "q1"},
		},
		Transitions: []Transition{
			{ID: "t1", From: "q0", To: "q1", Payload: Symbols{"a"}},
		},
	}
}

func TestDiff_InitialLoad(t *testing.T) {
	next := diffBase()
	diff := Diff(nil, next)
	require.NotNil(t, diff)
	require.NotNil(t, diff.Type)
	assert.Equal(t, KindDFA, *diff.Type)
	assert.Len(t, diff.AddedStates, 2)
	assert.Len(t, diff.AddedTransitions, 1)
	assert.Equal(t, "alice", diff.Meta["author"])
}

func TestDiff_NoChanges(t *testing.T) {
	assert.Nil(t, Diff(diffBase(), diffBase()))
	assert.Nil(t, Diff(diffBase(), nil))
}

func TestDiff_Changes(t *testing.T) {
	next := diffBase()
	next.Meta["note"] = "final"
	delete(next.Meta, "author")
	next.States[1].IsFinal = true
	next.States = append(next.States, State{ID: "q2", Label: "q2"})
	next.Transitions[0].Payload = Symbols{"a", "b"}
	next.Transitions = append(next.Transitions, Transition{ID: "t2", From: "q1", To: "q2", Payload: Symbols{"c"}})

	diff := Diff(diffBase(), next)
	require.NotNil(t, diff)
	assert.Nil(t, diff.Type)
	assert.Equal(t, map[string]any{"note": "final", "author": nil}, diff.Meta)
	require.Len(t, diff.AddedStates, 1)
	assert.Equal(t, "q2", diff.AddedStates[0].ID)
	require.Len(t, diff.ChangedStates, 1)
	assert.True(t, diff.ChangedStates[0].IsFinal)
	assert.Len(t, diff.ChangedTransitions, 1)
	assert.Len(t, diff.AddedTransitions, 1)
	assert.False(t, diff.IsEmpty())
}

func TestDiff_Removals(t *testing.T) {
	next := diffBase()
	next.States = next.States[:1]
	next.Transitions = nil

	diff := Diff(diffBase(), next)
	require.NotNil(t, diff)
	assert.Equal(t, []string{"q1"}, diff.RemovedStates)
	assert.Equal(t, []string{"t1"}, diff.RemovedTransitions)
	assert.Empty(t, diff.AddedStates)
}
