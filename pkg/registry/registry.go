package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/sandbox/pkg/errors"
)

// Registry maps unique names to items. Implementations are safe for
// concurrent use.
type Registry[T any] interface {
	// Register stores item under name. An empty or taken name is rejected
	// and the registry is left as it was.
	Register(name string, item T) error

	// Get returns the item under name, or an ErrNotFound error.
	Get(name string) (T, error)

	// Lookup is Get for callers that only need to know whether name exists.
	Lookup(name string) (T, bool)

	// Remove deletes name. Removing a missing name is ErrNotFound.
	Remove(name string) error

	// List returns the names in sorted order.
	List() []string

	Has(name string) bool
	Count() int
}

type store[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New returns an empty Registry.
func New[T any]() Registry[T] {
	return &store[T]{entries: make(map[string]T)}
}

func notFound(name string) error {
	return errors.Newf(errors.ErrNotFound, "no entry named %q", name).
		WithDetail("name", name)
}

func (s *store[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.entries[name]; taken {
		return errors.Newf(errors.ErrAlreadyExists, "an entry named %q already exists", name).
			WithDetail("name", name)
	}
	s.entries[name] = item
	return nil
}

func (s *store[T]) Get(name string) (T, error) {
	item, ok := s.Lookup(name)
	if !ok {
		return item, notFound(name)
	}
	return item, nil
}

func (s *store[T]) Lookup(name string) (T, bool) {
	s.mu.RLock()
	item, ok := s.entries[name]
	s.mu.RUnlock()
	return item, ok
}

func (s *store[T]) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return notFound(name)
	}
	delete(s.entries, name)
	return nil
}

func (s *store[T]) List() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

func (s *store[T]) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

func (s *store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
