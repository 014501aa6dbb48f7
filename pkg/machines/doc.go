/*
Package machines groups the built-in machine kinds.

Each subpackage exposes a stateless Factory implementing ports.Factory and
ports.Converter:

  - dfa: deterministic finite automaton over symbol sets.
  - nfa: non-deterministic automaton with epsilon transitions.
  - mealy: transducer with an output per transition.
  - moore: transducer with an output per state.
  - pda: pushdown automaton explored breadth-first.
  - turing: deterministic single-tape Turing machine.

All kinds share the greedy longest-match rule: at a given position the
transition whose symbol matches the longest prefix of the remaining input
wins, and ties go to the transition declared first.
*/
package machines
