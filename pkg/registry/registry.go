package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/machines/dfa"
	"github.com/aretw0/automata/pkg/machines/mealy"
	"github.com/aretw0/automata/pkg/machines/moore"
	"github.com/aretw0/automata/pkg/machines/nfa"
	"github.com/aretw0/automata/pkg/machines/pda"
	"github.com/aretw0/automata/pkg/machines/turing"
	"github.com/aretw0/automata/pkg/ports"
)

// TypeInfo is the summary of a registered kind.
type TypeInfo struct {
	Type domain.Kind `json:"type"`
	Name string      `json:"name"`
}

// Registry maps machine kinds to their factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[domain.Kind]ports.Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[domain.Kind]ports.Factory),
	}
}

// Register adds a factory under the kind its Config reports.
// If a factory for the same kind exists, it is overwritten.
func (r *Registry) Register(f ports.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[f.Config().Type] = f
}

// Get looks up the factory of kind.
// Returns an error wrapping domain.ErrKindNotRegistered if the kind is unknown.
func (r *Registry) Get(kind domain.Kind) (ports.Factory, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrKindNotRegistered, kind)
	}
	return f, nil
}

// MustGet is like Get but panics when the kind is unknown.
func (r *Registry) MustGet(kind domain.Kind) ports.Factory {
	f, err := r.Get(kind)
	if err != nil {
		panic(err)
	}
	return f
}

// List returns the registered kinds. Built-in kinds come first in their
// canonical order, followed by any other kind sorted by tag.
func (r *Registry) List() []TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]TypeInfo, 0, len(r.factories))
	for kind, f := range r.factories {
		infos = append(infos, TypeInfo{Type: kind, Name: f.Config().DisplayName})
	}
	sort.Slice(infos, func(i, j int) bool {
		ri, rj := rank(infos[i].Type), rank(infos[j].Type)
		if ri != rj {
			return ri < rj
		}
		return infos[i].Type < infos[j].Type
	})
	return infos
}

func rank(kind domain.Kind) int {
	for i, k := range domain.Kinds() {
		if k == kind {
			return i
		}
	}
	return len(domain.Kinds())
}

// Convert maps snap onto the target kind through the target factory's Converter.
func (r *Registry) Convert(snap *domain.Snapshot, target domain.Kind) (domain.Conversion, error) {
	f, err := r.Get(target)
	if err != nil {
		return domain.Conversion{}, err
	}
	conv, ok := f.(ports.Converter)
	if !ok {
		return domain.Conversion{}, fmt.Errorf("%w: %s", domain.ErrConversionUnsupported, target)
	}
	return conv.ConvertFrom(snap), nil
}

// New returns a registry holding the six built-in kinds.
func New() *Registry {
	r := NewRegistry()
	r.Register(dfa.New())
	r.Register(nfa.New())
	r.Register(mealy.New())
	r.Register(moore.New())
	r.Register(pda.New())
	r.Register(turing.New())
	return r
}

var defaultRegistry = New()

// Default returns the shared registry of built-in kinds.
func Default() *Registry { return defaultRegistry }

// GetAutomatonFactory returns the built-in factory of kind.
// It panics on an unknown kind, which is a programming error.
func GetAutomatonFactory(kind domain.Kind) ports.Factory {
	return defaultRegistry.MustGet(kind)
}

// ListAutomatonTypes lists the built-in kinds.
func ListAutomatonTypes() []TypeInfo {
	return defaultRegistry.List()
}
