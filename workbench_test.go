package automata_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkbench(t *testing.T, opts ...automata.Option) *automata.Workbench {
	t.Helper()
	wb, err := automata.New(opts...)
	require.NoError(t, err)
	return wb
}

func TestWorkbench_Types(t *testing.T) {
	types := newWorkbench(t).Types()
	require.Len(t, types, 6)
	assert.Equal(t, registry.TypeInfo{Type: domain.KindDFA, Name: "DFA (Deterministic)"}, types[0])
	assert.Equal(t, domain.KindTuring, types[5].Type)
}

func TestWorkbench_Simulate(t *testing.T) {
	metrics := observability.NewMetrics()
	var events []observability.SimulationEvent
	var logs bytes.Buffer

	wb := newWorkbench(t,
		automata.WithMetrics(metrics),
		automata.WithLogger(logging.NewWithWriter(&logs, slog.LevelDebug)),
		automata.WithLifecycleHooks(observability.Hooks{
			OnSimulate: func(_ context.Context, e observability.SimulationEvent) { events = append(events, e) },
		}),
	)
	ctx := context.Background()

	snap, err := wb.Library().Get(ctx, "anbn")
	require.NoError(t, err)

	res, err := wb.Simulate(ctx, snap, "aabb")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, res.Status)

	require.Len(t, events, 1)
	assert.Equal(t, domain.KindPDA, events[0].Kind)
	assert.Equal(t, len(res.Steps), events[0].Steps)
	series, err := testutil.GatherAndCount(metrics.Registry(), "automata_simulations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
	assert.Contains(t, logs.String(), "simulation finished")
}

func TestWorkbench_SimulateErrors(t *testing.T) {
	wb := newWorkbench(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := wb.Simulate(ctx, domain.NewSnapshot(domain.KindDFA, nil), "a")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = wb.Simulate(context.Background(), domain.NewSnapshot("buchi", nil), "a")
	assert.ErrorIs(t, err, domain.ErrKindNotRegistered)

	_, err = wb.Simulate(context.Background(), nil, "a")
	assert.Error(t, err)
}

func TestWorkbench_SimulateRejectsUnknownModes(t *testing.T) {
	wb := newWorkbench(t)
	tests := []struct {
		kind domain.Kind
		meta domain.Meta
	}{
		{domain.KindMealy, domain.Meta{domain.MetaRecognitionMode: "bogus"}},
		{domain.KindMoore, domain.Meta{domain.MetaRecognitionMode: "off"}},
		{domain.KindPDA, domain.Meta{domain.MetaAcceptanceMode: "maybe"}},
		{domain.KindTuring, domain.Meta{domain.MetaMaxSteps: -1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			snap := domain.NewSnapshot(tt.kind, tt.meta)
			snap.States = []domain.State{{ID: "q0", IsInitial: true}}

			_, err := wb.Simulate(context.Background(), snap, "")
			assert.ErrorIs(t, err, domain.ErrInvalidMeta)
		})
	}
}

func TestWorkbench_Convert(t *testing.T) {
	wb := newWorkbench(t)
	ctx := context.Background()

	snap, err := wb.Library().Get(ctx, "even-as")
	require.NoError(t, err)

	conv, err := wb.Convert(ctx, snap, domain.KindNFA)
	require.NoError(t, err)
	assert.Equal(t, domain.KindNFA, conv.Snapshot.Type)
	assert.Len(t, conv.Snapshot.Transitions, len(snap.Transitions))
	assert.Equal(t, domain.KindDFA, snap.Type, "source must not change")

	_, err = wb.Convert(ctx, snap, "buchi")
	assert.ErrorIs(t, err, domain.ErrKindNotRegistered)
}

func TestWorkbench_EditingRoundTrip(t *testing.T) {
	wb := newWorkbench(t, automata.WithStore(file.New(t.TempDir())))
	ctx := context.Background()

	_, err := wb.Create(ctx, "mine", domain.KindDFA)
	require.NoError(t, err)

	_, q0, err := wb.AddState(ctx, "mine", 0, 0)
	require.NoError(t, err)
	_, q1, err := wb.AddState(ctx, "mine", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, "q0", q0.ID)
	assert.True(t, q0.IsInitial)
	assert.Equal(t, "q1", q1.ID)
	assert.False(t, q1.IsInitial)

	snap, err := wb.AddTransition(ctx, "mine", domain.Transition{From: "q0", To: "q1", Payload: domain.Symbols{" a ", "a", ""}})
	require.NoError(t, err)
	require.Len(t, snap.Transitions, 1)
	assert.Equal(t, "t1", snap.Transitions[0].ID)
	assert.Equal(t, domain.Symbols{"a"}, snap.Transitions[0].Payload)

	_, err = wb.AddTransition(ctx, "mine", domain.Transition{From: "q0", To: "q0", Payload: domain.Symbols{"a"}})
	assert.ErrorIs(t, err, domain.ErrTransitionConflict)

	_, err = wb.AddTransition(ctx, "mine", domain.Transition{From: "q0", To: "q9", Payload: domain.Symbols{"b"}})
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	snap, err = wb.RemoveState(ctx, "mine", "q1")
	require.NoError(t, err)
	assert.Len(t, snap.States, 1)
	assert.Empty(t, snap.Transitions)

	names, err := wb.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, names)

	require.NoError(t, wb.Delete(ctx, "mine"))
	_, err = wb.Load(ctx, "mine")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestWorkbench_SaveRejectsInvalid(t *testing.T) {
	wb := newWorkbench(t)

	snap := domain.NewSnapshot(domain.KindDFA, nil)
	snap.States = []domain.State{{ID: "a", IsInitial: true}, {ID: "b", IsInitial: true}}

	err := wb.Save(context.Background(), "two-starts", snap)
	assert.Error(t, err)
	assert.NoError(t, wb.Validate(domain.NewSnapshot(domain.KindNFA, nil)))
}

func TestWorkbench_ImportAndSimulateNamed(t *testing.T) {
	wb := newWorkbench(t)
	ctx := context.Background()

	_, err := wb.Import(ctx, "bit-flip", "flip")
	require.NoError(t, err)

	res, err := wb.SimulateNamed(ctx, "flip", "0101")
	require.NoError(t, err)
	last, ok := res.Last()
	require.True(t, ok)
	assert.Equal(t, []string{"1", "0", "1", "0"}, last.Tape)

	_, err = wb.Import(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestWorkbench_ConcurrentAddState(t *testing.T) {
	wb := newWorkbench(t)
	ctx := context.Background()
	_, err := wb.Create(ctx, "shared", domain.KindNFA)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := wb.AddState(ctx, "shared", 0, 0)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := wb.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, snap.States, 20)
	assert.NoError(t, wb.Validate(snap))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, automata.Version)
	assert.Equal(t, automata.Version, newWorkbench(t).Version())
}
