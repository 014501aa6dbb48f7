package domain

import "errors"

// ErrKindNotRegistered is returned when a factory lookup names an unknown kind.
var ErrKindNotRegistered = errors.New("automaton type not registered")

// ErrSnapshotNotFound is returned when a snapshot name cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrInvalidPayload is returned when a transition carries zero or several payloads where one is required.
var ErrInvalidPayload = errors.New("invalid transition payload")

// ErrInvalidMeta is returned when a metadata value falls outside the values a kind accepts.
var ErrInvalidMeta = errors.New("invalid metadata")

// ErrConversionUnsupported is returned when the target factory cannot convert snapshots.
var ErrConversionUnsupported = errors.New("conversion not supported")

// ErrTransitionConflict is returned when a factory refuses to add a transition.
// The wrapping error carries the factory's message.
var ErrTransitionConflict = errors.New("transition conflict")

// ErrStateNotFound is returned by edits that reference a missing state.
var ErrStateNotFound = errors.New("state not found")
