package dsl

import (
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Examples returns builders for the built-in example library, one per kind.
func Examples() map[string]*Builder {
	evenAs := New(domain.KindDFA)
	evenAs.State("q0").Initial().Final().At(100, 100).On("a", "q1")
	evenAs.State("q1").At(250, 100).On("a", "q0")

	endsInAB := New(domain.KindNFA)
	endsInAB.State("q0").Initial().At(100, 100).On("a", "q0", "b").On("a", "q1")
	endsInAB.State("q1").At(250, 100).On("b", "q2")
	endsInAB.State("q2").Final().At(400, 100)

	translator := New(domain.KindMealy)
	translator.State("q0").Initial().At(100, 100).Emit("q0", "a", "x").Emit("q0", "b", "y")

	parity := New(domain.KindMoore)
	parity.State("even").Initial().Output("0").At(100, 100).On("1", "odd").On("0", "even")
	parity.State("odd").Output("1").At(250, 100).On("1", "even").On("0", "odd")

	anbn := New(domain.KindPDA).Meta(domain.MetaAcceptanceMode, string(domain.AcceptByEmptyStack))
	anbn.State("q0").Initial().At(100, 100).Stack("q1", "ε", "ε", "ε")
	anbn.State("q1").At(250, 100).Stack("q1", "a", "ε", "A").Stack("q2", "b", "A", "ε")
	anbn.State("q2").Final().At(400, 100).Stack("q2", "b", "A", "ε")

	bitFlip := New(domain.KindTuring)
	bitFlip.State("q0").Initial().At(100, 100).
		Tape("q0", "0", "1", domain.MoveRight).
		Tape("q0", "1", "0", domain.MoveRight).
		Tape("qf", "_", "_", domain.MoveStay)
	bitFlip.State("qf").Final().At(250, 100)

	return map[string]*Builder{
		"even-as":    evenAs,
		"ends-in-ab": endsInAB,
		"translator": translator,
		"parity":     parity,
		"anbn":       anbn,
		"bit-flip":   bitFlip,
	}
}

// ExampleLibrary builds Examples into a loader.
func ExampleLibrary() (*memory.Loader, error) {
	return Library(Examples())
}
