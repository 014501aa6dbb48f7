package schema

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixed() *domain.Snapshot {
	return &domain.Snapshot{
		Type: domain.KindMealy,
		Meta: domain.Meta{"recognitionMode": "final", "editor": map[string]any{"zoom": 1.5}},
		States: []domain.State{
			{ID: "q0", Label: "start", X: 10, Y: 20.5, IsInitial: true},
			{ID: "q1", Label: "q1", IsFinal: true},
		},
		Transitions: []domain.Transition{
			{ID: "t1", From: "q0", To: "q1", Payload: domain.Pairs{{In: "a", Out: "x"}}},
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(mixed(), format)
			require.NoError(t, err)

			got, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, mixed(), got)
		})
	}
}

func TestEncode_WireShape(t *testing.T) {
	data, err := Encode(mixed(), FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"pairs": [`)
	assert.NotContains(t, string(data), `"symbols"`)
	assert.Contains(t, string(data), `"isInitial": true`)
}

func TestDecode_RejectsTwoPayloads(t *testing.T) {
	doc := `{"type":"dfa","meta":{},"states":[],"transitions":[
		{"id":"t1","from":"q0","to":"q0","symbols":["a"],"tm":{"read":"a","write":"a","move":"S"}}]}`

	_, err := Decode([]byte(doc), FormatJSON)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestDecode_FillsEmptyCollections(t *testing.T) {
	snap, err := Decode([]byte("type: nfa\n"), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, snap.Meta)
	assert.NotNil(t, snap.States)
	assert.NotNil(t, snap.Transitions)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("machines/even.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("even.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("even.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("even"))
}
