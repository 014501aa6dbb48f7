// Package playback steps through a finished simulation at the user's pace.
//
// A Player only moves a cursor over an immutable SimulationResult. Stopping or
// rewinding a playback never touches the result itself.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// DefaultInterval is the delay between two steps of an automatic playback.
const DefaultInterval = 800 * time.Millisecond

// Player is a cursor over the steps of a simulation. It is safe for concurrent use.
type Player struct {
	mu     sync.Mutex
	result *domain.SimulationResult
	index  int
}

// New creates a player positioned on the first step.
func New(result *domain.SimulationResult) *Player {
	if result == nil {
		result = &domain.SimulationResult{}
	}
	return &Player{result: result}
}

// Result returns the underlying simulation result.
func (p *Player) Result() *domain.SimulationResult { return p.result }

// Len returns the number of steps.
func (p *Player) Len() int { return len(p.result.Steps) }

// Index returns the position of the cursor.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Current returns the step under the cursor. ok is false when there are no steps.
func (p *Player) Current() (step domain.SimulationStep, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current()
}

func (p *Player) current() (domain.SimulationStep, bool) {
	if len(p.result.Steps) == 0 {
		return domain.SimulationStep{}, false
	}
	return p.result.Steps[p.index], true
}

// CurrentStateIDs returns the states highlighted by the current step.
func (p *Player) CurrentStateIDs() []string {
	step, ok := p.Current()
	if !ok {
		return nil
	}
	return step.StateIDs()
}

// Done reports whether the cursor is on the last step.
func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index >= len(p.result.Steps)-1
}

// Status returns the terminal status once the cursor reached the last step,
// and StatusRunning before that.
func (p *Player) Status() domain.Status {
	if p.Done() {
		return p.result.Status
	}
	return domain.StatusRunning
}

// StepForward advances the cursor and reports whether it moved.
func (p *Player) StepForward() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.result.Steps)-1 {
		return false
	}
	p.index++
	return true
}

// StepBackward moves the cursor back and reports whether it moved.
func (p *Player) StepBackward() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index == 0 {
		return false
	}
	p.index--
	return true
}

// Seek moves the cursor to i, clamped to the valid range.
func (p *Player) Seek(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	last := len(p.result.Steps) - 1
	switch {
	case i < 0 || last < 0:
		i = 0
	case i > last:
		i = last
	}
	p.index = i
}

// Reset moves the cursor back to the first step.
func (p *Player) Reset() { p.Seek(0) }

// Play calls onStep for the current step, then advances every interval until
// the last step is reached or ctx is done. It returns ctx.Err() when canceled.
func (p *Player) Play(ctx context.Context, interval time.Duration, onStep func(index int, step domain.SimulationStep)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	emit := func() {
		p.mu.Lock()
		step, ok := p.current()
		index := p.index
		p.mu.Unlock()
		if ok && onStep != nil {
			onStep(index, step)
		}
	}

	emit()
	if p.Done() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !p.StepForward() {
				return nil
			}
			emit()
			if p.Done() {
				return nil
			}
		}
	}
}
