package schema

import (
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Schema is a map of metadata keys to their expected types.
// Keys are optional: absent keys fall back to the kind's defaults.
type Schema map[string]Type

var recognitionMode = Custom("recognitionMode", func(v any) error {
	_, err := domain.ParseRecognitionMode(v)
	return err
})

var acceptanceMode = Custom("acceptanceMode", func(v any) error {
	_, err := domain.ParseAcceptanceMode(v)
	return err
})

// MetaSchemas lists the metadata schema of every built-in kind.
var MetaSchemas = map[domain.Kind]Schema{
	domain.KindDFA: {},
	domain.KindNFA: {
		domain.MetaEpsilon: NonEmptyString(),
	},
	domain.KindMealy: {
		domain.MetaRecognitionMode: recognitionMode,
	},
	domain.KindMoore: {
		domain.MetaRecognitionMode: recognitionMode,
	},
	domain.KindPDA: {
		domain.MetaInitialStackSymbol: NonEmptyString(),
		domain.MetaEpsilon:            NonEmptyString(),
		domain.MetaMaxDepth:           PositiveInt(),
		domain.MetaAcceptanceMode:     acceptanceMode,
	},
	domain.KindTuring: {
		domain.MetaBlank:    NonEmptyString(),
		domain.MetaMaxSteps: PositiveInt(),
	},
}

// Validate checks the keys of data that the schema knows about.
// Returns an error with all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		value, exists := data[key]
		if !exists || value == nil {
			continue
		}
		if err := schema[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    "meta." + key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateSnapshot performs the commit-time structural check of snap.
// It returns an *AggregateError listing every failure, or nil.
func ValidateSnapshot(snap *domain.Snapshot) error {
	if snap == nil {
		return &AggregateError{Errors: []error{&ValidationError{Key: "snapshot", Reason: "required"}}}
	}

	var errs []error
	add := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	switch {
	case snap.Type == "":
		add("type", "required", nil)
	case !snap.Type.Known():
		add("type", "unknown machine kind", string(snap.Type))
	}

	stateIDs := make(map[string]bool, len(snap.States))
	initials := 0
	for i, st := range snap.States {
		key := fmt.Sprintf("states[%d].id", i)
		switch {
		case st.ID == "":
			add(key, "required", nil)
		case stateIDs[st.ID]:
			add(key, "duplicate state id", st.ID)
		}
		stateIDs[st.ID] = true
		if st.IsInitial {
			initials++
		}
	}
	if initials > 1 && snap.Type.SingleStart() {
		add("states", fmt.Sprintf("%s allows at most one initial state", snap.Type), initials)
	}

	transitionIDs := make(map[string]bool, len(snap.Transitions))
	for i, t := range snap.Transitions {
		prefix := fmt.Sprintf("transitions[%d]", i)
		switch {
		case t.ID == "":
			add(prefix+".id", "required", nil)
		case transitionIDs[t.ID]:
			add(prefix+".id", "duplicate transition id", t.ID)
		}
		transitionIDs[t.ID] = true

		if !stateIDs[t.From] {
			add(prefix+".from", "unknown state", t.From)
		}
		if !stateIDs[t.To] {
			add(prefix+".to", "unknown state", t.To)
		}
		for _, reason := range payloadProblems(snap.Type, t.Payload) {
			add(prefix, reason, nil)
		}
	}

	if err := Validate(MetaSchemas[snap.Type], snap.Meta); err != nil {
		errs = append(errs, ValidationErrors(err)...)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func payloadProblems(kind domain.Kind, p domain.Payload) []string {
	if p == nil {
		return []string{"payload required"}
	}
	var problems []string
	switch kind {
	case domain.KindDFA, domain.KindNFA, domain.KindMoore:
		if _, ok := p.(domain.Symbols); !ok {
			problems = append(problems, fmt.Sprintf("%s transitions carry symbols, got %T", kind, p))
		}
	case domain.KindMealy:
		pairs, ok := p.(domain.Pairs)
		if !ok {
			problems = append(problems, fmt.Sprintf("mealy transitions carry pairs, got %T", p))
			break
		}
		for i, pair := range pairs {
			if pair.In == "" {
				problems = append(problems, fmt.Sprintf("pairs[%d].in must not be empty", i))
			}
		}
	case domain.KindPDA:
		op, ok := p.(domain.StackOp)
		if !ok {
			problems = append(problems, fmt.Sprintf("pda transitions carry a stack operation, got %T", p))
			break
		}
		if op.Read == "" || op.Pop == "" || op.Push == "" {
			problems = append(problems, "read, pop and push must not be empty; use the epsilon symbol instead")
		}
	case domain.KindTuring:
		op, ok := p.(domain.TapeOp)
		if !ok {
			problems = append(problems, fmt.Sprintf("turing transitions carry a tape operation, got %T", p))
			break
		}
		if op.Read == "" || op.Write == "" {
			problems = append(problems, "read and write must not be empty")
		}
		if !op.Move.Valid() {
			problems = append(problems, fmt.Sprintf("move must be L, R or S, got %q", op.Move))
		}
	}
	return problems
}
