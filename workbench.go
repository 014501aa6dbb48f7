package automata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/automata/pkg/session"
)

// Workbench is the high-level entry point of the library.
// It ties the factory registry to persistence, logging and metrics.
type Workbench struct {
	registry    *registry.Registry
	store       ports.SnapshotStore
	sessionOpts []session.Option
	sessions    *session.Manager
	library     ports.SnapshotLoader
	metrics     *observability.Metrics
	hooks       observability.Hooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Workbench.
type Option func(*Workbench)

// WithRegistry replaces the built-in registry, e.g. to add custom kinds.
func WithRegistry(r *registry.Registry) Option {
	return func(w *Workbench) {
		w.registry = r
	}
}

// WithStore sets where named snapshots are persisted (default: in memory).
func WithStore(store ports.SnapshotStore) Option {
	return func(w *Workbench) {
		w.store = store
	}
}

// WithLocker enables distributed locking of snapshot edits.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(w *Workbench) {
		w.sessionOpts = append(w.sessionOpts, session.WithLocker(locker))
	}
}

// WithLibrary replaces the built-in example library.
func WithLibrary(loader ports.SnapshotLoader) Option {
	return func(w *Workbench) {
		w.library = loader
	}
}

// WithMetrics records simulations and conversions in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(w *Workbench) {
		w.metrics = m
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks observability.Hooks) Option {
	return func(w *Workbench) {
		w.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbench) {
		w.logger = logger
	}
}

// New initializes a Workbench. Without options it serves the six built-in
// kinds, keeps snapshots in memory and exposes the example library.
func New(opts ...Option) (*Workbench, error) {
	w := &Workbench{}
	for _, opt := range opts {
		opt(w)
	}

	if w.registry == nil {
		w.registry = registry.Default()
	}
	if w.store == nil {
		w.store = memory.NewStore()
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	if w.library == nil {
		lib, err := dsl.ExampleLibrary()
		if err != nil {
			return nil, fmt.Errorf("failed to build example library: %w", err)
		}
		w.library = lib
	}
	if w.metrics != nil {
		w.hooks = chain(w.hooks, w.metrics.Hooks())
	}

	opts2 := append([]session.Option{
		session.WithLogger(w.logger),
		session.WithValidator(schema.ValidateSnapshot),
	}, w.sessionOpts...)
	w.sessions = session.NewManager(w.store, opts2...)
	return w, nil
}

func chain(a, b observability.Hooks) observability.Hooks {
	return observability.Hooks{
		OnSimulate: func(ctx context.Context, e observability.SimulationEvent) {
			a.Simulated(ctx, e)
			b.Simulated(ctx, e)
		},
		OnConvert: func(ctx context.Context, e observability.ConversionEvent) {
			a.Converted(ctx, e)
			b.Converted(ctx, e)
		},
	}
}

// Types lists the registered kinds in canonical order.
func (w *Workbench) Types() []registry.TypeInfo {
	return w.registry.List()
}

// Factory returns the factory registered for kind.
func (w *Workbench) Factory(kind domain.Kind) (ports.Factory, error) {
	return w.registry.Get(kind)
}

// Empty returns a fresh snapshot of kind with its default meta.
func (w *Workbench) Empty(kind domain.Kind) (*domain.Snapshot, error) {
	f, err := w.registry.Get(kind)
	if err != nil {
		return nil, err
	}
	return f.CreateEmpty(), nil
}

// Simulate runs input through snap. The run itself is synchronous; ctx is
// only checked before it starts.
func (w *Workbench) Simulate(ctx context.Context, snap *domain.Snapshot, input string) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("simulate: nil snapshot")
	}
	f, err := w.registry.Get(snap.Type)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.MetaSchemas[snap.Type], snap.Meta); err != nil {
		return nil, fmt.Errorf("simulate: %w: %w", domain.ErrInvalidMeta, err)
	}

	start := time.Now()
	res := f.Simulate(snap, input)
	elapsed := time.Since(start)

	w.hooks.Simulated(ctx, observability.SimulationEvent{
		Kind:        snap.Type,
		Status:      res.Status,
		Steps:       len(res.Steps),
		InputLength: len(input),
		Duration:    elapsed,
	})
	w.logger.Debug("simulation finished",
		"kind", snap.Type,
		"status", res.Status,
		"steps", len(res.Steps),
		"duration", elapsed,
	)
	return res, nil
}

// SimulateNamed loads a stored snapshot and simulates it.
func (w *Workbench) SimulateNamed(ctx context.Context, name, input string) (*domain.SimulationResult, error) {
	snap, err := w.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return w.Simulate(ctx, snap, input)
}

// Convert maps snap onto the target kind. The source is never modified.
func (w *Workbench) Convert(ctx context.Context, snap *domain.Snapshot, target domain.Kind) (domain.Conversion, error) {
	if snap == nil {
		return domain.Conversion{}, fmt.Errorf("convert: nil snapshot")
	}
	conv, err := w.registry.Convert(snap, target)
	if err != nil {
		return domain.Conversion{}, err
	}
	w.hooks.Converted(ctx, observability.ConversionEvent{
		From:     snap.Type,
		To:       target,
		Warnings: len(conv.Warnings),
	})
	if len(conv.Warnings) > 0 {
		w.logger.Info("lossy conversion", "from", snap.Type, "to", target, "warnings", conv.Warnings)
	}
	return conv, nil
}

// Validate performs the structural check of snap.
func (w *Workbench) Validate(snap *domain.Snapshot) error {
	return schema.ValidateSnapshot(snap)
}

// ValidateAddTransition normalizes t and asks the factory whether it can be added.
// It returns the normalized transition and the factory's conflict message ("" when ok).
func (w *Workbench) ValidateAddTransition(snap *domain.Snapshot, t domain.Transition) (domain.Transition, string, error) {
	f, err := w.registry.Get(snap.Type)
	if err != nil {
		return t, "", err
	}
	t = f.NormalizeTransition(t)
	return t, f.ValidateAddTransition(snap, t), nil
}

// Library returns the read-only snapshot library.
func (w *Workbench) Library() ports.SnapshotLoader {
	return w.library
}

// Metrics returns the recorder passed with WithMetrics, or nil.
func (w *Workbench) Metrics() *observability.Metrics {
	return w.metrics
}

// Logger returns the workbench logger.
func (w *Workbench) Logger() *slog.Logger {
	return w.logger
}

// Version returns the module release.
func (w *Workbench) Version() string {
	return Version
}
