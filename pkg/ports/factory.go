package ports

import "github.com/aretw0/automata/pkg/domain"

// Factory is the contract every machine kind implements.
// Implementations are stateless and safe for concurrent use.
type Factory interface {
	// Config describes the kind: tag, display name, capabilities and default metadata.
	Config() domain.Config

	// CreateEmpty returns a valid snapshot with no states and no transitions.
	CreateEmpty() *domain.Snapshot

	// CreateState builds the state the editor adds at position index.
	CreateState(index int, x, y float64) domain.State

	// ValidateAddTransition checks t against the transitions already in snap.
	// It returns a human-readable conflict, or "" when t can be added.
	ValidateAddTransition(snap *domain.Snapshot, t domain.Transition) string

	// NormalizeTransition returns t with its payload cleaned up.
	NormalizeTransition(t domain.Transition) domain.Transition

	// FormatTransitionLabel renders the payload of t as an edge label.
	FormatTransitionLabel(t domain.Transition) string

	// Simulate runs input through snap. It only reads snap and never fails:
	// every outcome is expressed through the result status.
	Simulate(snap *domain.Snapshot, input string) *domain.SimulationResult
}

// Converter is implemented by factories that can import snapshots of other kinds.
type Converter interface {
	// ConvertFrom maps source onto the receiver's kind.
	// Anything the conversion cannot carry over is reported as a warning.
	ConvertFrom(source *domain.Snapshot) domain.Conversion
}
