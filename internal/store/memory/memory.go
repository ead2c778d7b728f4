package memory

import (
	"context"
	"sync"

	"github.com/feirafacil/catalogo-service/internal/model"
	"github.com/feirafacil/catalogo-service/internal/schema"
	"github.com/feirafacil/catalogo-service/internal/store"
)

// Store is an in-memory implementation of store.Store. It keeps the
// SQL store's contract: monotonically assigned ids that are never
// reused, insertion order on listing, and mutually exclusive writes.
type Store struct {
	mu       sync.Mutex
	products []model.Product
	nextID   int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{nextID: 1}
}

// GetAll returns a snapshot of the collection in insertion order.
func (s *Store) GetAll(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetByID returns the product with the given id or store.ErrNotFound.
func (s *Store) GetByID(_ context.Context, id int) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

// Create validates the payload, assigns a fresh id and appends the
// record. An invalid payload leaves the collection untouched.
func (s *Store) Create(_ context.Context, in schema.ProductInput) (*model.Product, error) {
	if err := schema.Check(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := store.Record(s.nextID, in)
	s.nextID++
	s.products = append(s.products, p)
	return &p, nil
}

// Update validates the payload and replaces every field except the id.
// A missing id returns store.ErrNotFound without mutating state.
func (s *Store) Update(_ context.Context, id int, in schema.ProductInput) (*model.Product, error) {
	if err := schema.Check(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = store.Record(id, in)
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

// Delete removes the product with the given id. It reports false when
// the id is absent, so a repeated delete is a not-found, not a fault.
func (s *Store) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
