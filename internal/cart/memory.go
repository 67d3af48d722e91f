package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memKey struct{ buyerID, productID string }

// MemoryStore is a mutex-guarded Store used by tests and local development.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[memKey]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[memKey]Entry)}
}

func (s *MemoryStore) Add(_ context.Context, e Entry) (Entry, error) {
	if e.Quantity < 1 {
		return Entry{}, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memKey{e.BuyerID, e.ProductID}
	if _, ok := s.m[k]; ok {
		return Entry{}, ErrAlreadyInCart
	}
	e.ID = uuid.NewString()
	s.m[k] = e
	return e, nil
}

func (s *MemoryStore) Get(_ context.Context, buyerID, productID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.m[memKey{buyerID, productID}]
	if !ok {
		return Entry{}, ErrItemNotFound
	}
	return e, nil
}

func (s *MemoryStore) UpdateQuantity(_ context.Context, buyerID, productID string, qty int) (Entry, error) {
	if qty < 1 {
		return Entry{}, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memKey{buyerID, productID}
	e, ok := s.m[k]
	if !ok {
		return Entry{}, ErrItemNotFound
	}
	e.Quantity = qty
	s.m[k] = e
	return e, nil
}

func (s *MemoryStore) Remove(_ context.Context, buyerID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memKey{buyerID, productID}
	if _, ok := s.m[k]; !ok {
		return ErrItemNotFound
	}
	delete(s.m, k)
	return nil
}

func (s *MemoryStore) BulkRemove(_ context.Context, buyerID string, productIDs []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, pid := range productIDs {
		k := memKey{buyerID, pid}
		if _, ok := s.m[k]; ok {
			delete(s.m, k)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) ListByBuyer(_ context.Context, buyerID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for k, e := range s.m {
		if k.buyerID == buyerID {
			out = append(out, e)
		}
	}
	return out, nil
}
