// Package loam serves a read-only library of snapshots from a Loam repository.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to ports.SnapshotLoader.
type Loader struct {
	Repo *loam.TypedRepository[SnapshotMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SnapshotMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// index maps normalized IDs to Loam document IDs.
func (l *Loader) index(ctx context.Context) (map[string]string, []string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existing, ok := seen[id]; ok {
			return nil, nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return seen, ids, nil
}

// List returns the IDs of all library snapshots.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	_, ids, err := l.index(ctx)
	return ids, err
}

// Get loads a library document and converts its frontmatter into a snapshot.
// The document body, when present, becomes meta.description.
func (l *Loader) Get(ctx context.Context, id string) (*domain.Snapshot, error) {
	index, _, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	docID, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, id)
	}

	doc, err := l.Repo.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	snap, err := toSnapshot(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("library snapshot %s: %w", id, err)
	}
	if body := strings.TrimSpace(doc.Content); body != "" {
		if _, set := snap.Meta["description"]; !set {
			snap.Meta["description"] = body
		}
	}
	if doc.Data.Name != "" {
		if _, set := snap.Meta["name"]; !set {
			snap.Meta["name"] = doc.Data.Name
		}
	}
	return snap, nil
}

func toSnapshot(md SnapshotMetadata) (*domain.Snapshot, error) {
	kind := domain.Kind(strings.ToLower(md.Type))
	if !kind.Known() {
		return nil, fmt.Errorf("unknown type %q", md.Type)
	}

	snap := domain.NewSnapshot(kind, domain.Meta(md.Meta).Clone())
	if snap.Meta == nil {
		snap.Meta = domain.Meta{}
	}

	for _, s := range md.States {
		label := s.Label
		if label == "" {
			label = s.ID
		}
		state := domain.State{
			ID:        s.ID,
			Label:     label,
			X:         s.X,
			Y:         s.Y,
			IsInitial: s.IsInitial || s.Initial,
			IsFinal:   s.IsFinal || s.Final,
		}
		if kind == domain.KindMoore {
			state.Output = s.Output
		}
		snap.States = append(snap.States, state)
	}

	for i, lt := range md.Transitions {
		payload, err := toPayload(kind, lt)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		id := lt.ID
		if id == "" {
			id = fmt.Sprintf("t%d", i+1)
		}
		snap.Transitions = append(snap.Transitions, domain.Transition{
			ID:      id,
			From:    lt.From,
			To:      lt.To,
			Payload: payload,
		})
	}
	return snap, nil
}

func toPayload(kind domain.Kind, lt LoaderTransition) (domain.Payload, error) {
	switch kind {
	case domain.KindMealy:
		pairs := make(domain.Pairs, 0, len(lt.Pairs))
		for _, p := range lt.Pairs {
			pairs = append(pairs, domain.Pair{In: p.In, Out: p.Out})
		}
		return pairs, nil
	case domain.KindPDA:
		if lt.PDA == nil {
			return nil, fmt.Errorf("%w: pda transition without pda operation", domain.ErrInvalidPayload)
		}
		return domain.StackOp{Read: lt.PDA.Read, Pop: lt.PDA.Pop, Push: lt.PDA.Push}, nil
	case domain.KindTuring:
		if lt.TM == nil {
			return nil, fmt.Errorf("%w: turing transition without tm operation", domain.ErrInvalidPayload)
		}
		return domain.TapeOp{Read: lt.TM.Read, Write: lt.TM.Write, Move: domain.Move(strings.ToUpper(lt.TM.Move))}, nil
	default:
		symbols := domain.Symbols(append([]string{}, lt.Symbols...))
		if lt.Symbol != "" {
			symbols = append(symbols, lt.Symbol)
		}
		return symbols, nil
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Open initializes a read-only Loam repository at dir and wraps it in a Loader.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numeric frontmatter as json.Number across adapters.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[SnapshotMetadata](repo)), nil
}
