package orders

import "context"

// Store persists order snapshots. Orders are written once; only the status
// column changes afterwards.
type Store interface {
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]Order, error)
	// ListBySeller returns orders containing at least one line item owned by
	// the seller, newest first, at most limit (0 = no limit).
	ListBySeller(ctx context.Context, sellerID string, limit int) ([]Order, error)
}
