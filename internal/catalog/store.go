package catalog

import "context"

// Store is the product persistence boundary. DecrementStock must be a single
// conditional operation: it succeeds only when live stock covers qty, and it
// never lets stock go negative.
type Store interface {
	Create(ctx context.Context, p Product) (Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]Product, error)
	ListBySeller(ctx context.Context, sellerID string, page, limit int) ([]Product, int, error)

	DecrementStock(ctx context.Context, id string, qty int) (remaining int, err error)
	IncrementStock(ctx context.Context, id string, qty int) error
}
