package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded Store used by tests and local development.
// Its DecrementStock holds the lock across check and write, giving the same
// conditional-decrement guarantee as the SQL statement in PGStore.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Product)}
}

func (s *MemoryStore) Create(_ context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.m[p.ID] = p
	return p, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return Product{}, NotFoundError{ProductID: id}
	}
	return p, nil
}

func (s *MemoryStore) Update(_ context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[p.ID]
	if !ok {
		return Product{}, NotFoundError{ProductID: p.ID}
	}
	p.SellerID = cur.SellerID
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.m[p.ID] = p
	return p, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return NotFoundError{ProductID: id}
	}
	delete(s.m, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.m {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Keyword)) {
			continue
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	switch f.Sort {
	case SortPriceAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

func (s *MemoryStore) ListBySeller(_ context.Context, sellerID string, page, limit int) ([]Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []Product
	for _, p := range s.m {
		if p.SellerID == sellerID {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *MemoryStore) DecrementStock(_ context.Context, id string, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return 0, NotFoundError{ProductID: id}
	}
	if p.Stock < qty {
		return 0, InsufficientStockError{ProductID: id, Available: p.Stock, Requested: qty}
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now().UTC()
	s.m[id] = p
	return p.Stock, nil
}

func (s *MemoryStore) IncrementStock(_ context.Context, id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return NotFoundError{ProductID: id}
	}
	p.Stock += qty
	p.UpdatedAt = time.Now().UTC()
	s.m[id] = p
	return nil
}
