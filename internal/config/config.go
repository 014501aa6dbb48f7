// Package config loads the workbench configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the file looked up when no --config flag is given.
const DefaultPath = "automata.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the root of automata.yaml.
type Config struct {
	LogLevel string   `yaml:"logLevel" json:"logLevel"`
	Library  string   `yaml:"library" json:"library"` // Loam directory; empty means the built-in examples
	Store    Store    `yaml:"store" json:"store"`
	HTTP     HTTP     `yaml:"http" json:"http"`
	Playback Playback `yaml:"playback" json:"playback"`
}

// Store selects where snapshots are persisted.
type Store struct {
	Backend    string     `yaml:"backend" json:"backend"`
	Dir        string     `yaml:"dir" json:"dir"`
	Redis      Redis      `yaml:"redis" json:"redis"`
	Encryption Encryption `yaml:"encryption" json:"encryption"`
	Redact     []string   `yaml:"redact" json:"redact"` // meta key patterns masked on save
}

// Encryption seals snapshots at rest. Keys are base64 encoded 32 byte AES keys.
type Encryption struct {
	Key          string   `yaml:"key" json:"key"`
	FallbackKeys []string `yaml:"fallbackKeys" json:"fallbackKeys"`
}

// Enabled reports whether an active key is configured.
func (e Encryption) Enabled() bool { return e.Key != "" }

// Redis holds connection settings for the redis backend.
type Redis struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	Prefix   string   `yaml:"prefix" json:"prefix"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

type HTTP struct {
	Port int `yaml:"port" json:"port"`
}

type Playback struct {
	Interval Duration `yaml:"interval" json:"interval"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: Store{
			Backend: BackendFile,
			Dir:     "./snapshots",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "automata",
			},
		},
		HTTP:     HTTP{Port: 8080},
		Playback: Playback{Interval: Duration(800 * time.Millisecond)},
	}
}

// Load reads a YAML or JSON file (by extension) on top of Default.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values the defaults cannot repair.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == BackendFile && c.Store.Dir == "" {
		return fmt.Errorf("store.dir is required for the file backend")
	}
	if !c.Store.Encryption.Enabled() && len(c.Store.Encryption.FallbackKeys) > 0 {
		return fmt.Errorf("store.encryption.fallbackKeys requires store.encryption.key")
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	return nil
}

// Duration accepts "800ms" style strings or integer milliseconds.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	return d.parse(strings.Trim(string(b), `"`))
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := time.ParseDuration(s); err == nil {
		*d = Duration(v)
		return nil
	}
	var ms int64
	if _, err := fmt.Sscanf(s, "%d", &ms); err != nil || fmt.Sprint(ms) != s {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}
