/*
Package dsl provides a fluent builder for constructing automaton snapshots in Go.

It is an alternative to writing snapshot JSON or YAML by hand, and is used for
the built-in example library, unit tests and programmatic generation.

Example usage:

	b := dsl.New(domain.KindDFA)
	b.State("even").Initial().Final().On("a", "odd")
	b.State("odd").On("a", "even")

	snap, err := b.Build()

Transitions of the other kinds use the payload-specific helpers:

	b.State("q0").Emit("q0", "a", "x")                    // Mealy a/x
	b.State("q1").Stack("q1", "a", "ε", "A")             // PDA a, ε → A
	b.State("q0").Tape("q0", "0", "1", domain.MoveRight)  // Turing 0/1,R
*/
package dsl
