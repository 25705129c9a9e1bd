package primes

import (
	"fmt"
	"sort"
	"sync"
)

// Enumerator is the common contract of every strategy: a bound goes in, the
// ascending primes up to that bound come out.
type Enumerator interface {
	// Name returns the human-readable name of the strategy.
	Name() string
	// Strategy returns the tag of the underlying algorithm.
	Strategy() Strategy
	// Enumerate returns the primes in [2, n].
	Enumerate(n int) ([]int, error)
}

// strategyEnumerator adapts a Strategy to the Enumerator interface.
type strategyEnumerator struct {
	strategy Strategy
}

// NewEnumerator returns the Enumerator for s.
func NewEnumerator(s Strategy) Enumerator {
	return strategyEnumerator{strategy: s}
}

func (e strategyEnumerator) Name() string { return e.strategy.Description() }

func (e strategyEnumerator) Strategy() Strategy { return e.strategy }

func (e strategyEnumerator) Enumerate(n int) ([]int, error) {
	return Enumerate(n, e.strategy)
}

// EnumeratorRegistry resolves strategy names to enumerators.
type EnumeratorRegistry interface {
	// List returns the canonical names in sorted order.
	List() []string
	// Get resolves a canonical name or alias.
	Get(name string) (Enumerator, error)
	// GetAll returns every enumerator keyed by canonical name.
	GetAll() map[string]Enumerator
}

// Registry is the default EnumeratorRegistry. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	enumerators map[string]Enumerator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{enumerators: make(map[string]Enumerator)}
}

// NewDefaultRegistry creates a registry holding the three strategies.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range Strategies {
		r.Register(s.String(), NewEnumerator(s))
	}
	return r
}

// Register adds or replaces an enumerator under name.
func (r *Registry) Register(name string, e Enumerator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enumerators[name] = e
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.enumerators))
	for name := range r.enumerators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the enumerator registered under name. Strategy aliases such as
// "b" or "eratosthenes" are resolved to their canonical name first.
func (r *Registry) Get(name string) (Enumerator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.enumerators[name]; ok {
		return e, nil
	}
	if s, err := ParseStrategy(name); err == nil {
		if e, ok := r.enumerators[s.String()]; ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("enumerator %q not found: %w", name, UnknownStrategyError{Name: name})
}

// GetAll returns a copy of the registered enumerators.
func (r *Registry) GetAll() map[string]Enumerator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make(map[string]Enumerator, len(r.enumerators))
	for name, e := range r.enumerators {
		all[name] = e
	}
	return all
}
