package catalog

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryGrocery     Category = "Grocery"
	CategoryClothing    Category = "Clothing"
	CategoryKids        Category = "Kids"
	CategoryStationery  Category = "Stationery"
	CategoryKitchen     Category = "Kitchen"
	CategoryFurniture   Category = "Furniture"
	CategoryElectronics Category = "Electronics"
	CategoryElectrical  Category = "Electrical"
	CategorySports      Category = "Sports"
)

var categories = map[Category]bool{
	CategoryGrocery:     true,
	CategoryClothing:    true,
	CategoryKids:        true,
	CategoryStationery:  true,
	CategoryKitchen:     true,
	CategoryFurniture:   true,
	CategoryElectronics: true,
	CategoryElectrical:  true,
	CategorySports:      true,
}

func (c Category) Valid() bool { return categories[c] }

// Product is a seller listing. Price is in the smallest currency unit.
type Product struct {
	ID              string    `json:"id"`
	SellerID        string    `json:"seller_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	Price           int       `json:"price"`
	Stock           int       `json:"stock"`
	QuantityPerUnit int       `json:"quantity_per_unit"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "lowToHigh"
	SortPriceDesc SortOrder = "highToLow"
)

// Filter narrows List results. Zero values mean "no constraint"; MaxPrice
// of 0 means unbounded.
type Filter struct {
	Category Category
	Keyword  string
	MinPrice int
	MaxPrice int
	Sort     SortOrder
}

// NotFoundError reports a product id that does not exist in the catalog.
type NotFoundError struct {
	ProductID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError reports a conditional decrement that failed because
// live stock was below the requested quantity.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// ValidationError reports an invalid field on a product write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid product %s: %s", e.Field, e.Reason)
}

// Validate checks the writable fields of a product record.
func (p Product) Validate() error {
	if p.Name == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if p.Description == "" {
		return ValidationError{Field: "description", Reason: "required"}
	}
	if !p.Category.Valid() {
		return ValidationError{Field: "category", Reason: "unknown category"}
	}
	if p.Price < 0 {
		return ValidationError{Field: "price", Reason: "must be >= 0"}
	}
	if p.Stock < 0 {
		return ValidationError{Field: "stock", Reason: "must be >= 0"}
	}
	if p.QuantityPerUnit < 1 {
		return ValidationError{Field: "quantity_per_unit", Reason: "must be >= 1"}
	}
	return nil
}
