package cart

import "context"

// Store persists cart entries. BulkRemove is idempotent: absent product ids
// are skipped, not errors.
type Store interface {
	Add(ctx context.Context, e Entry) (Entry, error)
	Get(ctx context.Context, buyerID, productID string) (Entry, error)
	UpdateQuantity(ctx context.Context, buyerID, productID string, qty int) (Entry, error)
	Remove(ctx context.Context, buyerID, productID string) error
	BulkRemove(ctx context.Context, buyerID string, productIDs []string) (removed int, err error)
	ListByBuyer(ctx context.Context, buyerID string) ([]Entry, error)
}
