package orders

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded Store used by tests and local development.
type MemoryStore struct {
	mu  sync.RWMutex
	m   map[string]Order
	seq int // tiebreak for orders created within the same nanosecond
	ord map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Order), ord: make(map[string]int)}
}

func (s *MemoryStore) Create(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	s.seq++
	s.ord[o.ID] = s.seq
	s.m[o.ID] = o
	return o, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[id]
	if !ok {
		return Order{}, NotFoundError{OrderID: id}
	}
	return o, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status Status) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.m[id]
	if !ok {
		return Order{}, NotFoundError{OrderID: id}
	}
	o.Status = status
	s.m[id] = o
	return o, nil
}

func (s *MemoryStore) ListByBuyer(_ context.Context, buyerID string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.m {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	s.sortNewest(out)
	return out, nil
}

func (s *MemoryStore) ListBySeller(_ context.Context, sellerID string, limit int) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.m {
		for _, it := range o.Items {
			if it.SellerID == sellerID {
				out = append(out, o)
				break
			}
		}
	}
	s.sortNewest(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) sortNewest(out []Order) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return s.ord[out[i].ID] > s.ord[out[j].ID]
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
