package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is a persisted snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything but .yaml/.yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode serializes snap in the given format.
func Encode(snap *domain.Snapshot, format Format) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("schema: encode nil snapshot")
	}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return data, nil
	}
}

// Decode parses a snapshot. Missing collections decode as empty, never nil.
func Decode(data []byte, format Format) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	if snap.Meta == nil {
		snap.Meta = domain.Meta{}
	}
	if snap.States == nil {
		snap.States = []domain.State{}
	}
	if snap.Transitions == nil {
		snap.Transitions = []domain.Transition{}
	}
	return &snap, nil
}
