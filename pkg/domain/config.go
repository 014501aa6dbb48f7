package domain

// Capabilities describes which editor affordances apply to a kind.
// The flags carry no behavior of their own.
type Capabilities struct {
	SupportsOutputPerTransition bool `json:"supportsOutputPerTransition,omitempty"`
	SupportsOutputPerState      bool `json:"supportsOutputPerState,omitempty"`
	SupportsEpsilon             bool `json:"supportsEpsilon,omitempty"`
	SupportsNondeterminism      bool `json:"supportsNondeterminism,omitempty"`
	SupportsStack               bool `json:"supportsStack,omitempty"`
	SupportsTape                bool `json:"supportsTape,omitempty"`
	SupportsRecognitionMode     bool `json:"supportsRecognitionMode,omitempty"`
}

// Config is the descriptive part of a factory.
type Config struct {
	Type         Kind         `json:"type"`
	DisplayName  string       `json:"displayName"`
	Capabilities Capabilities `json:"capabilities"`
	DefaultMeta  Meta         `json:"defaultMeta"`
}

// Conversion is the outcome of converting a snapshot to another kind.
// Warnings describe what the conversion could not carry over.
type Conversion struct {
	Snapshot *Snapshot `json:"snapshot"`
	Warnings []string  `json:"warnings,omitempty"`
}
