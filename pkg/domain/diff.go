package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	Type *Kind `json:"type,omitempty"`

	// Meta contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Meta map[string]any `json:"meta,omitempty"`

	AddedStates   []State  `json:"addedStates,omitempty"`
	ChangedStates []State  `json:"changedStates,omitempty"`
	RemovedStates []string `json:"removedStates,omitempty"`

	AddedTransitions   []Transition `json:"addedTransitions,omitempty"`
	ChangedTransitions []Transition `json:"changedTransitions,omitempty"`
	RemovedTransitions []string     `json:"removedTransitions,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, the diff carries the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}
	if oldSnap == nil {
		oldSnap = &Snapshot{}
	}

	diff := &SnapshotDiff{}
	if oldSnap.Type != newSnap.Type {
		kind := newSnap.Type
		diff.Type = &kind
	}
	diff.Meta = diffMeta(oldSnap.Meta, newSnap.Meta)
	diff.AddedStates, diff.ChangedStates, diff.RemovedStates = diffByID(oldSnap.States, newSnap.States,
		func(s State) string { return s.ID })
	diff.AddedTransitions, diff.ChangedTransitions, diff.RemovedTransitions = diffByID(oldSnap.Transitions, newSnap.Transitions,
		func(t Transition) string { return t.ID })

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffMeta(old, new Meta) map[string]any {
	delta := make(map[string]any)
	for k, newVal := range new {
		if oldVal, exists := old[k]; !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = nil
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffByID keeps the order of next for added and changed items and of prev for removed ones.
func diffByID[T any](prev, next []T, id func(T) string) (added, changed []T, removed []string) {
	before := make(map[string]T, len(prev))
	for _, item := range prev {
		before[id(item)] = item
	}
	seen := make(map[string]bool, len(next))
	for _, item := range next {
		key := id(item)
		seen[key] = true
		old, ok := before[key]
		switch {
		case !ok:
			added = append(added, item)
		case !reflect.DeepEqual(old, item):
			changed = append(changed, item)
		}
	}
	for _, item := range prev {
		if key := id(item); !seen[key] {
			removed = append(removed, key)
		}
	}
	return added, changed, removed
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Type == nil &&
		len(d.Meta) == 0 &&
		len(d.AddedStates) == 0 &&
		len(d.ChangedStates) == 0 &&
		len(d.RemovedStates) == 0 &&
		len(d.AddedTransitions) == 0 &&
		len(d.ChangedTransitions) == 0 &&
		len(d.RemovedTransitions) == 0
}
