package observability

import (
	"context"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// SimulationEvent describes one finished simulation.
type SimulationEvent struct {
	Kind        domain.Kind
	Status      domain.Status
	Steps       int
	InputLength int
	Duration    time.Duration
}

// ConversionEvent describes one conversion between kinds.
type ConversionEvent struct {
	From     domain.Kind
	To       domain.Kind
	Warnings int
}

// Hooks are optional callbacks invoked by the workbench.
type Hooks struct {
	OnSimulate func(ctx context.Context, e SimulationEvent)
	OnConvert  func(ctx context.Context, e ConversionEvent)
}

// Simulated calls OnSimulate when set.
func (h Hooks) Simulated(ctx context.Context, e SimulationEvent) {
	if h.OnSimulate != nil {
		h.OnSimulate(ctx, e)
	}
}

// Converted calls OnConvert when set.
func (h Hooks) Converted(ctx context.Context, e ConversionEvent) {
	if h.OnConvert != nil {
		h.OnConvert(ctx, e)
	}
}
