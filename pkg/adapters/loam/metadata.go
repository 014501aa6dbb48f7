package loam

// SnapshotMetadata is the frontmatter of a library document.
// It uses "mapstructure" tags to match the YAML keys of the snapshot wire format.
type SnapshotMetadata struct {
	ID          string             `json:"id" mapstructure:"id"`
	Type        string             `json:"type" mapstructure:"type"`
	Name        string             `json:"name" mapstructure:"name"`
	Meta        map[string]any     `json:"meta" mapstructure:"meta"`
	States      []StateMetadata    `json:"states" mapstructure:"states"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
}

type StateMetadata struct {
	ID        string  `json:"id" mapstructure:"id"`
	Label     string  `json:"label" mapstructure:"label"`
	X         float64 `json:"x" mapstructure:"x"`
	Y         float64 `json:"y" mapstructure:"y"`
	IsInitial bool    `json:"isInitial" mapstructure:"isInitial"`
	IsFinal   bool    `json:"isFinal" mapstructure:"isFinal"`
	Output    string  `json:"output" mapstructure:"output"`
	// Shorthands for hand-written documents.
	Initial bool `json:"initial" mapstructure:"initial"`
	Final   bool `json:"final" mapstructure:"final"`
}

// LoaderTransition carries exactly one payload: symbols, pairs, pda or tm.
type LoaderTransition struct {
	ID      string         `json:"id" mapstructure:"id"`
	From    string         `json:"from" mapstructure:"from"`
	To      string         `json:"to" mapstructure:"to"`
	Symbol  string         `json:"symbol" mapstructure:"symbol"`
	Symbols []string       `json:"symbols" mapstructure:"symbols"`
	Pairs   []PairMetadata `json:"pairs" mapstructure:"pairs"`
	PDA     *StackMetadata `json:"pda" mapstructure:"pda"`
	TM      *TapeMetadata  `json:"tm" mapstructure:"tm"`
}

type PairMetadata struct {
	In  string `json:"in" mapstructure:"in"`
	Out string `json:"out" mapstructure:"out"`
}

type StackMetadata struct {
	Read string `json:"read" mapstructure:"read"`
	Pop  string `json:"pop" mapstructure:"pop"`
	Push string `json:"push" mapstructure:"push"`
}

type TapeMetadata struct {
	Read  string `json:"read" mapstructure:"read"`
	Write string `json:"write" mapstructure:"write"`
	Move  string `json:"move" mapstructure:"move"`
}
