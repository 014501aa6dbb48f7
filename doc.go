/*
Package automata is a workbench engine for finite automata, transducers, pushdown
automata and Turing machines.

Every machine is a serializable Snapshot: a kind tag, a bag of metadata, a list of
states and a list of transitions. A Factory per kind knows how to create, validate,
label, simulate and convert snapshots of its kind. Simulations never fail; every
outcome is reported in the result status (accepted, rejected, transduced or
incomplete) together with a step-by-step trace a player can replay.

# Kinds

  - dfa: deterministic finite automaton, symbols matched greedily (longest first).
  - nfa: nondeterministic automaton with ε-closure.
  - mealy: transducer with in/out pairs on transitions.
  - moore: transducer with outputs on states.
  - pda: pushdown automaton explored breadth-first, by final state or empty stack.
  - turing: single-tape Turing machine with a step ceiling.

# Usage

	wb, err := automata.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	snap, _ := wb.Library().Get(ctx, "even-as")
	res, _ := wb.Simulate(ctx, snap, "aa")
	fmt.Println(res.Status) // accepted

Snapshots can be persisted with any ports.SnapshotStore (memory, file, redis)
and edited concurrently through the copy-on-write operations of the Workbench.
*/
package automata
