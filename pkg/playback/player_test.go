package playback

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result() *domain.SimulationResult {
	return &domain.SimulationResult{
		Status: domain.StatusAccepted,
		Steps: []domain.SimulationStep{
			{CurrentState: "q0", RemainingInput: "ab"},
			{CurrentState: "q1", RemainingInput: "b", ConsumedSymbol: "a"},
			{ActiveStates: []string{"q1", "q2"}, RemainingInput: "", ConsumedSymbol: "b"},
		},
	}
}

func TestPlayer_Navigation(t *testing.T) {
	p := New(result())

	assert.Equal(t, 0, p.Index())
	assert.Equal(t, []string{"q0"}, p.CurrentStateIDs())
	assert.Equal(t, domain.StatusRunning, p.Status())
	assert.False(t, p.StepBackward())

	assert.True(t, p.StepForward())
	assert.True(t, p.StepForward())
	assert.False(t, p.StepForward())
	assert.True(t, p.Done())
	assert.Equal(t, domain.StatusAccepted, p.Status())
	assert.Equal(t, []string{"q1", "q2"}, p.CurrentStateIDs())

	p.Seek(99)
	assert.Equal(t, 2, p.Index())
	p.Seek(-3)
	assert.Equal(t, 0, p.Index())

	p.Seek(1)
	p.Reset()
	assert.Equal(t, 0, p.Index())
}

func TestPlayer_Empty(t *testing.T) {
	p := New(&domain.SimulationResult{Status: domain.StatusRejected})

	_, ok := p.Current()
	assert.False(t, ok)
	assert.True(t, p.Done())
	assert.Equal(t, domain.StatusRejected, p.Status())
	assert.NoError(t, p.Play(context.Background(), time.Millisecond, nil))
}

func TestPlayer_PlayToEnd(t *testing.T) {
	p := New(result())
	var seen []int

	err := p.Play(context.Background(), time.Millisecond, func(i int, _ domain.SimulationStep) {
		seen = append(seen, i)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.True(t, p.Done())
}

func TestPlayer_PlayCanceled(t *testing.T) {
	res := result()
	before := len(res.Steps)
	p := New(res)
	ctx, cancel := context.WithCancel(context.Background())

	err := p.Play(ctx, time.Hour, func(int, domain.SimulationStep) { cancel() })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.Index())
	assert.Len(t, res.Steps, before)
}
