package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/history"
)

const editorHelp = `commands:
  state [x y]                      add a state
  transition <from> <to> <label>   add a transition (alias: t)
      dfa/nfa/moore: a b ...       mealy: a/x b/y ...
      pda: read,pop,push           turing: read,write,L|R|S
  remove <id>                      remove a state and its transitions
  final <id>                       toggle acceptance of a state
  output <id> <value>              set a moore state's output
  run <input>                      simulate the current machine
  show                             print the mermaid diagram
  undo | redo
  quit`

// Editor is a line-oriented editor over one stored snapshot.
type Editor struct {
	wb      *automata.Workbench
	name    string
	out     io.Writer
	history *history.History
}

// NewEditor opens name, creating an empty machine of kind when it does not exist.
func NewEditor(ctx context.Context, wb *automata.Workbench, name string, kind domain.Kind, out io.Writer) (*Editor, error) {
	snap, err := wb.Create(ctx, name, kind)
	if err != nil {
		return nil, err
	}
	return &Editor{
		wb:      wb,
		name:    name,
		out:     out,
		history: history.New(snap, history.DefaultLimit),
	}, nil
}

// Snapshot returns the editor's present snapshot.
func (e *Editor) Snapshot() *domain.Snapshot {
	return e.history.Present()
}

// Run reads commands from in until quit, EOF or ctx cancellation.
func (e *Editor) Run(ctx context.Context, in io.Reader) error {
	snap := e.history.Present()
	fmt.Fprintf(e.out, "editing %s (%s, %d states). Type 'help' for commands.\n", e.name, snap.Type, len(snap.States))

	scanner := bufio.NewScanner(NewInterruptibleReader(in, ctx.Done()))
	for {
		fmt.Fprint(e.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		quit, err := e.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(e.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line.
func (e *Editor) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprintln(e.out, editorHelp)
	case "quit", "exit", "q":
		return true, nil
	case "state":
		return false, e.addState(ctx, args)
	case "transition", "t":
		return false, e.addTransition(ctx, args)
	case "remove":
		if len(args) != 1 {
			return false, errors.New("usage: remove <id>")
		}
		snap, err := e.wb.RemoveState(ctx, e.name, args[0])
		if err != nil {
			return false, err
		}
		e.history.Push(snap)
		fmt.Fprintf(e.out, "removed %s\n", args[0])
	case "final":
		if len(args) != 1 {
			return false, errors.New("usage: final <id>")
		}
		return false, e.editState(ctx, args[0], func(st *domain.State) { st.IsFinal = !st.IsFinal })
	case "output":
		if len(args) != 2 {
			return false, errors.New("usage: output <id> <value>")
		}
		return false, e.editState(ctx, args[0], func(st *domain.State) { st.Output = args[1] })
	case "run":
		input := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))
		return false, e.run(ctx, input)
	case "show":
		return false, e.show()
	case "undo":
		return false, e.travel(ctx, e.history.Undo, "nothing to undo")
	case "redo":
		return false, e.travel(ctx, e.history.Redo, "nothing to redo")
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func (e *Editor) addState(ctx context.Context, args []string) error {
	var x, y float64
	if len(args) == 2 {
		var err error
		if x, err = strconv.ParseFloat(args[0], 64); err != nil {
			return fmt.Errorf("x: %w", err)
		}
		if y, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("y: %w", err)
		}
	} else if len(args) != 0 {
		return errors.New("usage: state [x y]")
	}
	snap, st, err := e.wb.AddState(ctx, e.name, x, y)
	if err != nil {
		return err
	}
	e.history.Push(snap)
	fmt.Fprintf(e.out, "added %s\n", st.ID)
	return nil
}

func (e *Editor) addTransition(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: transition <from> <to> <label...>")
	}
	kind := e.history.Present().Type
	t, err := ParseTransition(kind, args[0], args[1], args[2:])
	if err != nil {
		return err
	}
	snap, err := e.wb.AddTransition(ctx, e.name, t)
	if err != nil {
		return err
	}
	e.history.Push(snap)
	added := snap.Transitions[len(snap.Transitions)-1]
	fmt.Fprintf(e.out, "added %s: %s -> %s\n", added.ID, added.From, added.To)
	return nil
}

func (e *Editor) editState(ctx context.Context, id string, fn func(*domain.State)) error {
	snap := e.history.Present()
	found := false
	for i := range snap.States {
		if snap.States[i].ID == id {
			fn(&snap.States[i])
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrStateNotFound, id)
	}
	if err := e.wb.Save(ctx, e.name, snap); err != nil {
		return err
	}
	e.history.Push(snap)
	return nil
}

func (e *Editor) travel(ctx context.Context, step func() (*domain.Snapshot, bool), empty string) error {
	snap, ok := step()
	if !ok {
		return errors.New(empty)
	}
	return e.wb.Save(ctx, e.name, snap)
}

func (e *Editor) run(ctx context.Context, input string) error {
	res, err := e.wb.Simulate(ctx, e.history.Present(), input)
	if err != nil {
		return err
	}
	for i, step := range res.Steps {
		fmt.Fprintln(e.out, FormatStep(i, step))
	}
	tui.PrintSummary(e.out, res)
	return nil
}

func (e *Editor) show() error {
	snap := e.history.Present()
	f, err := e.wb.Factory(snap.Type)
	if err != nil {
		return err
	}
	fmt.Fprint(e.out, graph.GenerateMermaid(snap, f.FormatTransitionLabel, nil))
	return nil
}

// ParseTransition builds a transition of kind from command-line labels.
func ParseTransition(kind domain.Kind, from, to string, labels []string) (domain.Transition, error) {
	t := domain.Transition{From: from, To: to}
	switch kind {
	case domain.KindDFA, domain.KindNFA, domain.KindMoore:
		t.Payload = domain.Symbols(labels)
	case domain.KindMealy:
		pairs := make(domain.Pairs, 0, len(labels))
		for _, l := range labels {
			in, out, ok := strings.Cut(l, "/")
			if !ok {
				return t, fmt.Errorf("mealy label %q: expected in/out", l)
			}
			pairs = append(pairs, domain.Pair{In: in, Out: out})
		}
		t.Payload = pairs
	case domain.KindPDA:
		parts, err := triple(labels, "read,pop,push")
		if err != nil {
			return t, err
		}
		t.Payload = domain.StackOp{Read: parts[0], Pop: parts[1], Push: parts[2]}
	case domain.KindTuring:
		parts, err := triple(labels, "read,write,move")
		if err != nil {
			return t, err
		}
		move := domain.Move(strings.ToUpper(parts[2]))
		if !move.Valid() {
			return t, fmt.Errorf("move %q: expected L, R or S", parts[2])
		}
		t.Payload = domain.TapeOp{Read: parts[0], Write: parts[1], Move: move}
	default:
		return t, fmt.Errorf("%w: %s", domain.ErrKindNotRegistered, kind)
	}
	return t, nil
}

func triple(labels []string, shape string) ([]string, error) {
	if len(labels) != 1 {
		return nil, fmt.Errorf("expected a single %s label", shape)
	}
	parts := strings.Split(labels[0], ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("label %q: expected %s", labels[0], shape)
	}
	return parts, nil
}
