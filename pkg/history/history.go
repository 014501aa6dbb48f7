// Package history keeps a bounded undo/redo stack of snapshots.
package history

import (
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// DefaultLimit is the number of entries kept when New is given a non-positive limit.
const DefaultLimit = 50

// History stores deep copies, so later edits of a pushed snapshot never leak into it.
type History struct {
	mu      sync.Mutex
	entries []*domain.Snapshot
	cursor  int
	limit   int
}

// New creates a history whose present is initial.
func New(initial *domain.Snapshot, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		entries: []*domain.Snapshot{initial.Clone()},
		limit:   limit,
	}
}

// Present returns a copy of the current snapshot.
func (h *History) Present() *domain.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor].Clone()
}

// Push records snap as the new present and drops the redo tail.
// The oldest entry is discarded once the limit is exceeded.
func (h *History) Push(snap *domain.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.cursor+1], snap.Clone())
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps back and returns the new present. ok is false when there is nothing to undo.
func (h *History) Undo() (*domain.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps forward and returns the new present. ok is false when there is nothing to redo.
func (h *History) Redo() (*domain.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.entries)-1
}
