/*
Package domain contains the shared data contract for every machine kind supported
by the automata workbench.

It defines the structures exchanged between the editor, the simulation engine and
the persistence adapters. The package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - Kind: The machine-kind tag (dfa, nfa, mealy, moore, pda, turing).
  - State: A node of the automaton, with initial/final flags and an optional Moore output.
  - Transition: An edge whose Payload is one of Symbols, Pairs, StackOp or TapeOp.
  - Snapshot: The complete, serializable automaton (the unit of persistence, undo and conversion).
  - SimulationResult: The ordered steps of a run plus its terminal Status.
*/
package domain
