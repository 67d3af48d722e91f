package cart

import (
	"errors"

	"github.com/pasalhub/pasal/internal/catalog"
)

// Entry maps one product a buyer intends to order. The (BuyerID, ProductID)
// pair is unique.
type Entry struct {
	ID        string `json:"id"`
	BuyerID   string `json:"buyer_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Item is an entry joined with current catalog display data. Price reflects
// the catalog at read time, not the price when the item was added.
type Item struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	Price     int              `json:"price"`
	Category  catalog.Category `json:"category"`
	ImageURL  string           `json:"image_url,omitempty"`
	Quantity  int              `json:"quantity"`
}

var (
	ErrAlreadyInCart   = errors.New("item already in cart")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
