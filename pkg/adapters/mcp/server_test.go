package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *automata.Workbench) {
	t.Helper()
	wb, err := automata.New()
	require.NoError(t, err)
	return NewServer(wb, nil), wb
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestListTypes(t *testing.T) {
	s, _ := newTestServer(t)
	resp, err := s.handleListTypes(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, resp.Types, 6)
	assert.Equal(t, domain.KindDFA, resp.Types[0].Type)
}

func TestSimulate_Sources(t *testing.T) {
	s, wb := newTestServer(t)
	ctx := context.Background()

	example, err := wb.Library().Get(ctx, "anbn")
	require.NoError(t, err)
	require.NoError(t, wb.Save(ctx, "stored", example))
	inline, err := json.Marshal(example)
	require.NoError(t, err)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"example", map[string]interface{}{"example": "anbn", "input": "aabb"}},
		{"stored", map[string]interface{}{"name": "stored", "input": "aabb"}},
		{"inline", map[string]interface{}{"snapshot": string(inline), "input": "aabb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleSimulate(ctx, callRequest(tt.args), tt.args)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusAccepted, res.Status)
		})
	}

	_, err = s.handleSimulate(ctx, callRequest(nil), map[string]interface{}{"input": "a"})
	assert.Error(t, err)

	_, err = s.handleSimulate(ctx, callRequest(nil), map[string]interface{}{"name": "missing"})
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestConvert(t *testing.T) {
	s, _ := newTestServer(t)
	args := map[string]interface{}{"example": "parity", "to": "mealy"}

	conv, err := s.handleConvert(context.Background(), callRequest(args), args)
	require.NoError(t, err)
	require.NotNil(t, conv.Snapshot)
	assert.Equal(t, domain.KindMealy, conv.Snapshot.Type)

	args["to"] = "regex"
	_, err = s.handleConvert(context.Background(), callRequest(args), args)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{"example": "bit-flip"}
	resp, err := s.handleValidate(context.Background(), callRequest(args), args)
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	args = map[string]interface{}{"snapshot": `{"type":"dfa","states":[{"id":"q0"},{"id":"q0"}],"transitions":[]}`}
	resp, err = s.handleValidate(context.Background(), callRequest(args), args)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Errors)
}

func TestRenderGraph(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handleRenderGraph(context.Background(), callRequest(map[string]interface{}{"example": "even-as", "input": "a"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "graph LR")
	assert.Contains(t, text, "class q1 current;")

	res, err = s.handleRenderGraph(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSaveAndList(t *testing.T) {
	s, wb := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSaveSnapshot(ctx, callRequest(map[string]interface{}{
		"name":     "mine",
		"snapshot": `{"type":"nfa","meta":{},"states":[{"id":"q0","isInitial":true}],"transitions":[]}`,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	stored, err := wb.Load(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, domain.KindNFA, stored.Type)

	res, err = s.handleSaveSnapshot(ctx, callRequest(map[string]interface{}{
		"name":     "broken",
		"snapshot": `{"type":"dfa","states":[],"transitions":[{"id":"t1","from":"a","to":"b","symbols":["x"]}]}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleListSnapshots(ctx, callRequest(nil))
	require.NoError(t, err)
	var listing map[string][]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listing))
	assert.Equal(t, []string{"mine"}, listing["snapshots"])
	assert.Contains(t, listing["examples"], "translator")
}

func TestToolsAreRegistered(t *testing.T) {
	s, _ := newTestServer(t)
	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{"list_types", "simulate", "convert", "validate", "render_graph", "list_snapshots", "save_snapshot"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
