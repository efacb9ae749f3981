package errcatalog

import (
	"context"
	"sync/atomic"
)

// Store holds the active catalog and replaces it atomically on reload.
// Readers always see a complete catalog; a catalog is never mutated in place.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a store serving the catalog.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Catalog returns the active catalog.
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Swap installs next and returns the previously active catalog.
func (s *Store) Swap(next *Catalog) *Catalog {
	return s.current.Swap(next)
}

// Reload builds a new catalog from the adapter with the default locale and
// options of the active one. On failure the active catalog keeps serving.
func (s *Store) Reload(ctx context.Context, adapter ResourceAdapter) (*Catalog, error) {
	cur := s.Catalog()
	if cur == nil {
		return nil, ErrNoCatalog
	}

	next, err := LoadFrom(ctx, adapter, cur.defaultLocale, cur.options...)
	if err != nil {
		cur.logger.Error("error catalog reload failed", "error", err)
		return nil, err
	}
	s.current.Store(next)
	return next, nil
}
