package cart

import (
	"context"
	"errors"

	"github.com/pasalhub/pasal/internal/catalog"
)

// Service wraps the cart store with the catalog checks the operations need.
type Service struct {
	Carts   Store
	Catalog catalog.Store
}

// Add puts a product in the buyer's cart with quantity 1. The product must
// exist; a second add of the same product is a conflict.
func (s *Service) Add(ctx context.Context, buyerID, productID string) (Entry, error) {
	if _, err := s.Catalog.Get(ctx, productID); err != nil {
		return Entry{}, err
	}
	return s.Carts.Add(ctx, Entry{BuyerID: buyerID, ProductID: productID, Quantity: 1})
}

func (s *Service) UpdateQuantity(ctx context.Context, buyerID, productID string, qty int) (Entry, error) {
	return s.Carts.UpdateQuantity(ctx, buyerID, productID, qty)
}

func (s *Service) Remove(ctx context.Context, buyerID, productID string) error {
	return s.Carts.Remove(ctx, buyerID, productID)
}

func (s *Service) BulkRemove(ctx context.Context, buyerID string, productIDs []string) (int, error) {
	return s.Carts.BulkRemove(ctx, buyerID, productIDs)
}

// List joins cart entries with live product data. Entries whose product has
// since been deleted are dropped from the view rather than failing the call.
func (s *Service) List(ctx context.Context, buyerID string) ([]Item, error) {
	entries, err := s.Carts.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		p, err := s.Catalog.Get(ctx, e.ProductID)
		if err != nil {
			var nf catalog.NotFoundError
			if errors.As(err, &nf) {
				continue
			}
			return nil, err
		}
		out = append(out, Item{
			ID:        e.ID,
			ProductID: e.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			ImageURL:  p.ImageURL,
			Quantity:  e.Quantity,
		})
	}
	return out, nil
}
