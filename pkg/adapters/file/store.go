// Package file persists snapshots as JSON or YAML documents in a directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// DefaultDir is used when New receives an empty path.
var DefaultDir = filepath.Join(".automata", "snapshots")

// Store implements ports.SnapshotStore using the local filesystem.
// Each snapshot is one file named <name>.<format>.
type Store struct {
	BasePath string
	Format   schema.Format
}

type Option func(*Store)

// WithFormat selects the encoding for new files. Existing files keep theirs.
func WithFormat(f schema.Format) Option {
	return func(s *Store) { s.Format = f }
}

// New creates a new Store rooted at basePath.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	s := &Store{BasePath: basePath, Format: schema.FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("snapshot name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}

// existing returns the path of the stored file for name, if any.
func (s *Store) existing(name string) (string, schema.Format, bool) {
	for _, f := range []schema.Format{schema.FormatJSON, schema.FormatYAML} {
		path := filepath.Join(s.BasePath, name+"."+string(f))
		if _, err := os.Stat(path); err == nil {
			return path, f, true
		}
	}
	path := filepath.Join(s.BasePath, name+".yml")
	if _, err := os.Stat(path); err == nil {
		return path, schema.FormatYAML, true
	}
	return "", "", false
}

// Save persists the snapshot atomically.
// It writes to a temporary file first, syncs, and then renames it over the destination.
func (s *Store) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}

	destPath, format, ok := s.existing(name)
	if !ok {
		format = s.Format
		destPath = filepath.Join(s.BasePath, name+"."+string(format))
	}

	data, err := schema.Encode(snap, format)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows refuses to rename open files.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to replace snapshot file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads and decodes the snapshot file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	path, format, ok := s.existing(name)
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	snap, err := schema.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return snap, nil
}

// Delete removes every file stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete snapshot file: %w", err)
		}
	}
	return nil
}

// List returns the names of all snapshot files, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		switch strings.ToLower(ext) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
