package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecognitionMode(t *testing.T) {
	tests := []struct {
		in   any
		want RecognitionMode
	}{
		{nil, RecognitionOff},
		{false, RecognitionOff},
		{"", RecognitionOff},
		{"false", RecognitionOff},
		{true, RecognitionFinal},
		{"true", RecognitionFinal},
		{"final", RecognitionFinal},
		{"consumption", RecognitionConsumption},
		{RecognitionConsumption, RecognitionConsumption},
	}
	for _, tt := range tests {
		got, err := ParseRecognitionMode(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	for _, bad := range []any{"off", "none", "FINAL", " final", "bogus", 1} {
		_, err := ParseRecognitionMode(bad)
		assert.ErrorIs(t, err, ErrInvalidMeta, "%v", bad)
	}
}

func TestParseAcceptanceMode(t *testing.T) {
	for in, want := range map[string]AcceptanceMode{
		"":            AcceptByFinalState,
		"final":       AcceptByFinalState,
		"empty-stack": AcceptByEmptyStack,
	} {
		got, err := ParseAcceptanceMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := ParseAcceptanceMode(nil)
	require.NoError(t, err)
	assert.Equal(t, AcceptByFinalState, got)

	for _, bad := range []any{"Empty-Stack", "maybe", true} {
		_, err := ParseAcceptanceMode(bad)
		assert.ErrorIs(t, err, ErrInvalidMeta, "%v", bad)
	}
}
