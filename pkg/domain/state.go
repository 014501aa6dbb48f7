package domain

// State is a node of an automaton.
type State struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`

	// X and Y are owned by the editor. Simulation never reads them.
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`

	IsInitial bool `json:"isInitial" yaml:"isInitial" mapstructure:"isInitial"`
	IsFinal   bool `json:"isFinal" yaml:"isFinal" mapstructure:"isFinal"`

	// Output is only meaningful for Moore machines.
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
}
