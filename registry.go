package saver

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Entry is a registered effect.
type Entry struct {
	// Name is the display name; lookups ignore case.
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Effect computes the pixel colors.
	Effect Effect

	// Fragment is the WGSL fragment stage for GPU hosts. It may be empty.
	Fragment string

	// Source is "builtin" or the file the effect was loaded from.
	Source string
}

// Registry maps case-insensitive effect names to entries.
//
// Hosts populate a registry at start-up (built-ins first, then custom
// effects, which replace built-ins of the same name), call Freeze, and only
// read from it afterwards. Registry is safe for concurrent use.
//
// Example:
//
//	reg := saver.NewBuiltinRegistry()
//	if err := loader.Apply(reg, dir); err != nil {
//	    log.Print(err)
//	}
//	reg.Freeze()
//	effect, err := reg.Get("matrix")
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string // folded keys in first-insertion order
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// NewBuiltinRegistry creates a registry holding the built-in effects.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, e := range Builtins() {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// foldName returns the lookup key for an effect name.
func foldName(name string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register inserts e, replacing any entry whose name matches ignoring case.
// A replaced entry keeps its position in List.
func (r *Registry) Register(e Entry) error {
	key := foldName(e.Name)
	if key == "" {
		return ErrInvalidName
	}
	if e.Effect == nil {
		return fmt.Errorf("%w: %q", ErrNilEffect, e.Name)
	}
	e.Name = strings.TrimSpace(e.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, e.Name)
	}
	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
	if prev, ok := r.entries[key]; ok {
		Logger().Info("saver: effect overridden", "name", e.Name, "previous", prev.Source, "source", e.Source)
	} else {
		r.order = append(r.order, key)
	}
	r.entries[key] = &e
	return nil
}

// Freeze ends the insert phase. Later calls to Register fail with ErrFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Get returns the effect registered under name. It fails with an error
// wrapping ErrNotFound; it never substitutes another effect.
func (r *Registry) Get(name string) (Effect, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e.Effect, nil
}

// Lookup returns a copy of the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	key := foldName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// List returns the registered names in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.entries[key].Name)
	}
	return names
}

// Entries returns copies of all entries in insertion order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.entries[key])
	}
	return out
}
