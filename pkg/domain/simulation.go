package domain

// Status is the terminal outcome of a simulation.
type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusTransduced Status = "transduced"
	// StatusIncomplete means the run hit a depth or step ceiling before deciding.
	StatusIncomplete Status = "incomplete"
	// StatusRunning is only reported by playback while steps remain.
	StatusRunning Status = "running"
)

// SimulationStep records the machine configuration after one move.
// Each kind fills only the fields it tracks.
type SimulationStep struct {
	CurrentState     string   `json:"currentState,omitempty" yaml:"currentState,omitempty"`
	ActiveStates     []string `json:"activeStates,omitempty" yaml:"activeStates,omitempty"`
	RemainingInput   string   `json:"remainingInput" yaml:"remainingInput"`
	ConsumedSymbol   string   `json:"consumedSymbol,omitempty" yaml:"consumedSymbol,omitempty"`
	ProducedOutput   string   `json:"producedOutput,omitempty" yaml:"producedOutput,omitempty"`
	CumulativeOutput string   `json:"cumulativeOutput,omitempty" yaml:"cumulativeOutput,omitempty"`
	Stack            []string `json:"stack,omitempty" yaml:"stack,omitempty"`
	Tape             []string `json:"tape,omitempty" yaml:"tape,omitempty"`
	HeadPosition     *int     `json:"headPosition,omitempty" yaml:"headPosition,omitempty"`
}

// StateIDs returns the states highlighted by this step.
func (s SimulationStep) StateIDs() []string {
	if len(s.ActiveStates) > 0 {
		return s.ActiveStates
	}
	if s.CurrentState != "" {
		return []string{s.CurrentState}
	}
	return nil
}

// SimulationResult is produced once per run and never mutated afterwards.
type SimulationResult struct {
	Steps       []SimulationStep `json:"steps" yaml:"steps"`
	Status      Status           `json:"status" yaml:"status"`
	FinalStates []string         `json:"finalStates,omitempty" yaml:"finalStates,omitempty"`
	OutputTrace string           `json:"outputTrace,omitempty" yaml:"outputTrace,omitempty"`
}

// Last returns the last recorded step, if any.
func (r *SimulationResult) Last() (SimulationStep, bool) {
	if r == nil || len(r.Steps) == 0 {
		return SimulationStep{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}
