package world

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/PhilNad/with-respect-to/internal/engine"
	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/store"
)

// World is an open handle to one persistently stored frame tree.
// Obtain handles through a Registry; a World owns its store connection
// exclusively until closed.
type World struct {
	name     string
	store    *store.Store
	resolver *engine.Resolver
	mutator  *engine.Mutator
}

// Name returns the world's identifier.
func (w *World) Name() string {
	return w.name
}

// ListFrames returns all frame names in the world, sorted.
func (w *World) ListFrames(ctx context.Context) ([]string, error) {
	return w.store.ListNames(ctx)
}

// Frames returns a snapshot of every stored frame record, keyed by name.
func (w *World) Frames(ctx context.Context) (map[string]frame.Frame, error) {
	return w.store.All(ctx)
}

// Delete removes a frame from the world. No-op if the frame is absent;
// the root frame cannot be removed.
func (w *World) Delete(ctx context.Context, name string) error {
	return w.mutator.Delete(ctx, name)
}

// Close releases the world's store connection. The handle must not be
// used afterwards; prefer closing through the owning Registry.
func (w *World) Close() error {
	return w.store.Close()
}

// Registry opens and caches world handles under one directory, one
// SQLite file per world (<name>.db). It is safe for concurrent use.
//
// The explicit-handle shape keeps connection lifetime visible at the call
// site and lets several worlds be open at once; each individual world
// still holds exactly one exclusive connection.
type Registry struct {
	dir string

	mu     sync.Mutex
	worlds map[string]*World
}

// NewRegistry creates a Registry storing worlds under dir.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, worlds: make(map[string]*World)}
}

// In returns the handle for the named world, creating and seeding its
// database file on first use. Subsequent calls for the same name return
// the same cached handle. Fails with INVALID_NAME for a malformed world
// name.
func (r *Registry) In(name string) (*World, error) {
	if err := frame.CheckName(name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.worlds[name]; ok {
		return w, nil
	}

	s, err := store.Open(filepath.Join(r.dir, name+".db"))
	if err != nil {
		return nil, fmt.Errorf("open world %q: %w", name, err)
	}
	w := &World{
		name:     name,
		store:    s,
		resolver: engine.NewResolver(s),
		mutator:  engine.NewMutator(s),
	}
	r.worlds[name] = w
	return w, nil
}

// Close releases every cached world handle. The first error encountered
// is returned after all handles have been closed.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.worlds))
	for name := range r.worlds {
		names = append(names, name)
	}
	sort.Strings(names)

	var firstErr error
	for _, name := range names {
		if err := r.worlds[name].Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close world %q: %w", name, err)
		}
		delete(r.worlds, name)
	}
	return firstErr
}
