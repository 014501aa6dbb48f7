package moore

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(id, from, to string, symbols ...string) domain.Transition {
	return domain.Transition{ID: id, From: from, To: to, Payload: domain.Symbols(symbols)}
}

func alternating(mode any) *domain.Snapshot {
	return &domain.Snapshot{
		Type: domain.KindMoore,
		Meta: domain.Meta{"recognitionMode": mode},
		States: []domain.State{
			{ID: "q0", IsInitial: true, Output: "A"},
			{ID: "q1", Output: "B"},
		},
		Transitions: []domain.Transition{
			sym("t1", "q0", "q1", "a"),
			sym("t2", "q1", "q0", "b"),
		},
	}
}

func TestSimulate_OutputTiming(t *testing.T) {
	f := New()
	tests := []struct {
		input string
		want  string
	}{
		{"", "A"},
		{"a", "AB"},
		{"aba", "ABAB"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := f.Simulate(alternating(false), tt.input)
			assert.Equal(t, domain.StatusTransduced, res.Status)
			assert.Equal(t, tt.want, res.OutputTrace)
		})
	}
}

func TestSimulate_StepOutputs(t *testing.T) {
	res := New().Simulate(alternating(false), "ab")

	require.Len(t, res.Steps, 3)
	assert.Equal(t, "A", res.Steps[0].CumulativeOutput)
	assert.Empty(t, res.Steps[0].ProducedOutput)
	assert.Equal(t, "B", res.Steps[1].ProducedOutput)
	assert.Equal(t, "AB", res.Steps[1].CumulativeOutput)
	assert.Equal(t, "A", res.Steps[2].ProducedOutput)
	assert.Equal(t, "ABA", res.Steps[2].CumulativeOutput)
}

func TestSimulate_RecognitionModes(t *testing.T) {
	snap := func(mode any) *domain.Snapshot {
		return &domain.Snapshot{
			Type: domain.KindMoore,
			Meta: domain.Meta{"recognitionMode": mode},
			States: []domain.State{
				{ID: "q0", IsInitial: true, Output: "0"},
				{ID: "q1", IsFinal: true, Output: "1"},
			},
			Transitions: []domain.Transition{sym("t1", "q0", "q1", "a")},
		}
	}

	tests := []struct {
		name   string
		mode   any
		input  string
		status domain.Status
		trace  string
	}{
		{"final accepts", "final", "a", domain.StatusAccepted, "01"},
		{"final rejects non-final", "final", "", domain.StatusRejected, "0"},
		{"true is final", true, "", domain.StatusRejected, "0"},
		{"consumption accepts", "consumption", "", domain.StatusAccepted, "0"},
		{"consumption rejects leftover", "consumption", "ab", domain.StatusRejected, "01"},
		{"transducer", false, "ab", domain.StatusTransduced, "01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New().Simulate(snap(tt.mode), tt.input)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.trace, res.OutputTrace)
		})
	}
}

func TestValidateAddTransition(t *testing.T) {
	snap := alternating(false)
	assert.Contains(t, New().ValidateAddTransition(snap, sym("t9", "q0", "q0", "a")), "'a'")
	assert.Empty(t, New().ValidateAddTransition(snap, sym("t9", "q0", "q0", "b")))
}

func TestConvertFrom(t *testing.T) {
	src := &domain.Snapshot{
		Type: domain.KindDFA,
		Meta: domain.Meta{},
		States: []domain.State{
			{ID: "q0", IsInitial: true},
			{ID: "q1", IsFinal: true},
		},
		Transitions: []domain.Transition{sym("t1", "q0", "q1", "a", "b")},
	}

	conv := New().ConvertFrom(src)

	assert.Equal(t, domain.KindMoore, conv.Snapshot.Type)
	assert.NotEmpty(t, conv.Warnings)
	for _, st := range conv.Snapshot.States {
		assert.False(t, st.IsFinal)
		assert.Empty(t, st.Output)
	}
	assert.Equal(t, domain.Symbols{"a", "b"}, conv.Snapshot.Transitions[0].Payload)
}
