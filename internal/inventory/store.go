// Package inventory owns the product collection, its persistence and the
// operations the form and row actions apply to it.
package inventory

import (
	"math"
	"sync"

	"github.com/talkincode/webestoque/internal/domain"
)

// Store is the ordered in-memory product collection.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int64
}

// NewStore rehydrates a store. nextID is lifted above the largest existing
// id so issued ids are never reused.
func NewStore(products []domain.Product, nextID int64) *Store {
	s := &Store{
		products: append([]domain.Product(nil), products...),
		nextID:   nextID,
	}
	if floor := MaxID(s.products) + 1; s.nextID < floor {
		s.nextID = floor
	}
	return s
}

// MaxID returns the largest id in products, or 0.
func MaxID(products []domain.Product) int64 {
	var max int64
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func (s *Store) indexOf(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// Create appends a product with the next id. It never fails.
func (s *Store) Create(fields domain.Fields, imageDataURL string) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Product{ID: s.nextID, Fields: fields, ImageDataURL: imageDataURL}
	s.nextID++
	s.products = append(s.products, p)
	return p
}

// Update merges patch onto the product with the given id.
func (s *Store) Update(id int64, patch domain.Patch) (domain.Product, error) {
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return domain.Product{}, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, ErrNotFound
	}
	patch.Apply(&s.products[i])
	return s.products[i], nil
}

func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// Purchase removes qty units from stock.
func (s *Store) Purchase(id int64, qty int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, ErrNotFound
	}
	if qty <= 0 {
		return domain.Product{}, ErrInvalidQuantity
	}
	p := &s.products[i]
	if p.Quantity == 0 {
		return domain.Product{}, ErrOutOfStock
	}
	if qty > p.Quantity {
		return domain.Product{}, ErrInsufficientStock
	}
	p.Quantity -= qty
	return *p, nil
}

// Restock adds qty units to stock.
func (s *Store) Restock(id int64, qty int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, ErrNotFound
	}
	if qty <= 0 || qty > math.MaxInt-s.products[i].Quantity {
		return domain.Product{}, ErrInvalidQuantity
	}
	s.products[i].Quantity += qty
	return s.products[i], nil
}

func (s *Store) Get(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, ErrNotFound
	}
	return s.products[i], nil
}

// List returns a copy of the collection in order.
func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// Snapshot returns the collection and the id counter consistently.
func (s *Store) Snapshot() ([]domain.Product, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...), s.nextID
}
