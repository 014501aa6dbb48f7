package domain

import "fmt"

// Metadata keys shared by the factories and the persistence format.
const (
	MetaEpsilon            = "epsilon"
	MetaInitialStackSymbol = "initialStackSymbol"
	MetaMaxDepth           = "maxDepth"
	MetaAcceptanceMode     = "acceptanceMode"
	MetaBlank              = "blank"
	MetaMaxSteps           = "maxSteps"
	MetaRecognitionMode    = "recognitionMode"
)

// Defaults applied when the metadata omits a value.
const (
	DefaultEpsilon     = "ε"
	DefaultStackBottom = "$"
	DefaultMaxDepth    = 500
	DefaultBlank       = "_"
	DefaultMaxSteps    = 300
)

// RecognitionMode decides whether a transducer also acts as an acceptor.
type RecognitionMode string

const (
	// RecognitionOff runs as a pure transducer and reports StatusTransduced.
	RecognitionOff RecognitionMode = ""
	// RecognitionConsumption accepts iff the whole input was consumed.
	RecognitionConsumption RecognitionMode = "consumption"
	// RecognitionFinal accepts iff the whole input was consumed and the run ended in a final state.
	RecognitionFinal RecognitionMode = "final"
)

// AcceptanceMode decides how a PDA accepts a fully consumed input.
type AcceptanceMode string

const (
	AcceptByFinalState AcceptanceMode = "final"
	AcceptByEmptyStack AcceptanceMode = "empty-stack"
)

// ParseRecognitionMode reads a recognitionMode metadata value.
// nil, false and "" switch recognition off; true is "final".
func ParseRecognitionMode(v any) (RecognitionMode, error) {
	switch val := v.(type) {
	case nil:
		return RecognitionOff, nil
	case bool:
		if val {
			return RecognitionFinal, nil
		}
		return RecognitionOff, nil
	case RecognitionMode:
		return ParseRecognitionMode(string(val))
	case string:
		switch val {
		case "", "false":
			return RecognitionOff, nil
		case "true", string(RecognitionFinal):
			return RecognitionFinal, nil
		case string(RecognitionConsumption):
			return RecognitionConsumption, nil
		}
	}
	return RecognitionOff, fmt.Errorf("%w: recognitionMode %v, expected false, true, \"consumption\" or \"final\"", ErrInvalidMeta, v)
}

// ParseAcceptanceMode reads an acceptanceMode metadata value. Absent means final state.
func ParseAcceptanceMode(v any) (AcceptanceMode, error) {
	switch val := v.(type) {
	case nil:
		return AcceptByFinalState, nil
	case AcceptanceMode:
		return ParseAcceptanceMode(string(val))
	case string:
		switch AcceptanceMode(val) {
		case "", AcceptByFinalState:
			return AcceptByFinalState, nil
		case AcceptByEmptyStack:
			return AcceptByEmptyStack, nil
		}
	}
	return AcceptByFinalState, fmt.Errorf("%w: acceptanceMode %v, expected \"final\" or \"empty-stack\"", ErrInvalidMeta, v)
}

// NFAMeta is the typed view of NFA metadata.
type NFAMeta struct {
	Epsilon string `mapstructure:"epsilon"`
}

// TransducerMeta is the typed view of Mealy and Moore metadata.
type TransducerMeta struct {
	RecognitionMode RecognitionMode `mapstructure:"recognitionMode"`
}

// PDAMeta is the typed view of PDA metadata.
type PDAMeta struct {
	InitialStackSymbol string         `mapstructure:"initialStackSymbol"`
	Epsilon            string         `mapstructure:"epsilon"`
	MaxDepth           int            `mapstructure:"maxDepth"`
	AcceptanceMode     AcceptanceMode `mapstructure:"acceptanceMode"`
}

// TuringMeta is the typed view of Turing machine metadata.
type TuringMeta struct {
	Blank    string `mapstructure:"blank"`
	MaxSteps int    `mapstructure:"maxSteps"`
}

// WithDefaults fills unset fields.
func (m NFAMeta) WithDefaults() NFAMeta {
	if m.Epsilon == "" {
		m.Epsilon = DefaultEpsilon
	}
	return m
}

// WithDefaults fills unset fields.
func (m PDAMeta) WithDefaults() PDAMeta {
	if m.InitialStackSymbol == "" {
		m.InitialStackSymbol = DefaultStackBottom
	}
	if m.Epsilon == "" {
		m.Epsilon = DefaultEpsilon
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = DefaultMaxDepth
	}
	if m.AcceptanceMode == "" {
		m.AcceptanceMode = AcceptByFinalState
	}
	return m
}

// WithDefaults fills unset fields.
func (m TuringMeta) WithDefaults() TuringMeta {
	if m.Blank == "" {
		m.Blank = DefaultBlank
	}
	if m.MaxSteps <= 0 {
		m.MaxSteps = DefaultMaxSteps
	}
	return m
}
