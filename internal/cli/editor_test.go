package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T, kind domain.Kind) (*Editor, *automata.Workbench, *bytes.Buffer) {
	t.Helper()
	wb, err := automata.New()
	require.NoError(t, err)
	var out bytes.Buffer
	ed, err := NewEditor(context.Background(), wb, "work", kind, &out)
	require.NoError(t, err)
	return ed, wb, &out
}

func exec(t *testing.T, ed *Editor, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := ed.Exec(context.Background(), line)
		require.NoError(t, err, line)
	}
}

func TestEditor_BuildAndRun(t *testing.T) {
	ed, wb, out := newEditor(t, domain.KindDFA)

	exec(t, ed, "state", "state 200 100", "t q0 q1 a", "t q1 q0 a", "final q0")

	stored, err := wb.Load(context.Background(), "work")
	require.NoError(t, err)
	require.Len(t, stored.States, 2)
	require.Len(t, stored.Transitions, 2)
	assert.True(t, stored.States[0].IsFinal)
	assert.Equal(t, 200.0, stored.States[1].X)

	out.Reset()
	exec(t, ed, "run aa")
	assert.Contains(t, out.String(), "accepted after 3 step(s)")

	_, err = ed.Exec(context.Background(), "t q0 q0 a")
	assert.ErrorIs(t, err, domain.ErrTransitionConflict)
}

func TestEditor_UndoRedo(t *testing.T) {
	ed, wb, _ := newEditor(t, domain.KindNFA)
	ctx := context.Background()

	exec(t, ed, "state", "state")
	exec(t, ed, "undo")

	stored, err := wb.Load(ctx, "work")
	require.NoError(t, err)
	assert.Len(t, stored.States, 1)
	assert.Len(t, ed.Snapshot().States, 1)

	exec(t, ed, "redo")
	stored, err = wb.Load(ctx, "work")
	require.NoError(t, err)
	assert.Len(t, stored.States, 2)

	_, err = ed.Exec(ctx, "redo")
	assert.EqualError(t, err, "nothing to redo")

	exec(t, ed, "undo", "undo")
	_, err = ed.Exec(ctx, "undo")
	assert.EqualError(t, err, "nothing to undo")
}

func TestEditor_Errors(t *testing.T) {
	ed, _, _ := newEditor(t, domain.KindMoore)
	ctx := context.Background()

	tests := []string{"bogus", "remove", "remove q9", "final q9", "output q0", "state 1", "t q0"}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := ed.Exec(ctx, line)
			assert.Error(t, err)
		})
	}
}

func TestEditor_MooreOutputAndShow(t *testing.T) {
	ed, _, out := newEditor(t, domain.KindMoore)
	exec(t, ed, "state", "output q0 1")
	assert.Equal(t, "1", ed.Snapshot().States[0].Output)

	out.Reset()
	exec(t, ed, "show")
	assert.True(t, strings.HasPrefix(out.String(), "graph LR"))
	assert.Contains(t, out.String(), "/ 1")
}

func TestEditor_Run(t *testing.T) {
	ed, _, out := newEditor(t, domain.KindDFA)
	err := ed.Run(context.Background(), strings.NewReader("state\nhelp\nquit\n"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "editing work (dfa, 0 states)")
	assert.Contains(t, out.String(), "added q0")
	assert.Contains(t, out.String(), "undo | redo")

	err = ed.Run(context.Background(), strings.NewReader("state\n"))
	assert.True(t, IsInterrupted(err))
}

func TestParseTransition(t *testing.T) {
	tests := []struct {
		kind    domain.Kind
		labels  []string
		want    domain.Payload
		wantErr bool
	}{
		{domain.KindDFA, []string{"a", "b"}, domain.Symbols{"a", "b"}, false},
		{domain.KindMealy, []string{"a/x", "b/"}, domain.Pairs{{In: "a", Out: "x"}, {In: "b", Out: ""}}, false},
		{domain.KindMealy, []string{"a"}, nil, true},
		{domain.KindPDA, []string{"a,ε,A"}, domain.StackOp{Read: "a", Pop: "ε", Push: "A"}, false},
		{domain.KindPDA, []string{"a,A"}, nil, true},
		{domain.KindTuring, []string{"0,1,r"}, domain.TapeOp{Read: "0", Write: "1", Move: domain.MoveRight}, false},
		{domain.KindTuring, []string{"0,1,X"}, nil, true},
		{"regex", []string{"a"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+" "+strings.Join(tt.labels, " "), func(t *testing.T) {
			tr, err := ParseTransition(tt.kind, "q0", "q1", tt.labels)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "q0", tr.From)
			assert.Equal(t, "q1", tr.To)
			assert.Equal(t, tt.want, tr.Payload)
		})
	}
}
