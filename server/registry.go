package server

import (
	"sync"
	"time"

	"github.com/dekarrin/nfa"
	"github.com/dekarrin/nfa/internal/util"
	"github.com/dekarrin/nfa/server/serr"
	"github.com/google/uuid"
)

// Entry is a single automaton held by a Registry, addressable by ID and,
// optionally, by a caller-chosen display name.
type Entry struct {
	ID        uuid.UUID
	Name      string
	Start     *nfa.State[rune]
	Compiled  bool
	CreatedAt time.Time
}

// Registry is an in-memory store of named automata. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries util.SVSet[*Entry]
	names   util.StringSet
}

// NewRegistry returns a Registry with no automata stored in it.
func NewRegistry() *Registry {
	return &Registry{
		entries: util.NewSVSet[*Entry](),
		names:   util.NewStringSet(),
	}
}

// Put stores start under a freshly generated ID, associating it with name.
// If name is already in use, ErrAlreadyExists is returned. If compile is
// true, start.Compile() is called before storing so that later matches use
// the flat-table backend.
func (r *Registry) Put(name string, start *nfa.State[rune], compile bool) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name != "" && r.names.Has(name) {
		return nil, serr.New("automaton name already in use", serr.ErrAlreadyExists)
	}

	if compile {
		start.Compile()
	}

	e := &Entry{
		ID:        uuid.New(),
		Name:      name,
		Start:     start,
		Compiled:  compile,
		CreatedAt: time.Now(),
	}

	r.entries.Set(e.ID.String(), e)
	if name != "" {
		r.names.Add(name)
	}

	return e, nil
}

// Get retrieves the Entry with the given ID. The second return value is
// false if no such Entry exists.
func (r *Registry) Get(id uuid.UUID) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.entries.Get(id.String())
	return e, e != nil
}

// Delete removes the Entry with the given ID, freeing its name for reuse. It
// reports whether an Entry was actually present.
func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entries.Get(id.String())
	if e == nil {
		return false
	}

	r.entries.Remove(id.String())
	if e.Name != "" {
		r.names.Remove(e.Name)
	}
	return true
}

// List returns every Entry currently stored, in no particular order.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Entry, 0, r.entries.Len())
	for _, id := range r.entries.Elements() {
		entries = append(entries, r.entries.Get(id))
	}
	return entries
}
