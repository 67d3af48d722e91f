package orders

import (
	"errors"
	"fmt"
	"time"
)

type PaymentMethod string

const (
	PaymentESewa  PaymentMethod = "esewa"
	PaymentKhalti PaymentMethod = "khalti"
	PaymentCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentESewa || m == PaymentKhalti || m == PaymentCOD
}

type CustomerContact struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// LineItem snapshots one product at order-creation time. Later catalog edits
// never change UnitPrice or Name on a stored order.
type LineItem struct {
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

// Order is immutable once created except for Status.
type Order struct {
	ID            string          `json:"id"`
	BuyerID       string          `json:"buyer_id"`
	Customer      CustomerContact `json:"customer"`
	Items         []LineItem      `json:"items"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Total         int             `json:"total"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

var ErrEmptyCart = errors.New("cart is empty")

// NotFoundError reports an unknown order id.
type NotFoundError struct {
	OrderID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("order not found: %s", e.OrderID)
}

// InvalidContactError reports a blank required customer field.
type InvalidContactError struct {
	Field string
}

func (e InvalidContactError) Error() string {
	return fmt.Sprintf("customer %s is required", e.Field)
}

// InvalidPaymentMethodError reports a payment method outside the enum.
type InvalidPaymentMethodError struct {
	Method string
}

func (e InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method: %q", e.Method)
}

// InvalidQuantityError reports a cart item quantity below 1.
type InvalidQuantityError struct {
	ProductID string
}

func (e InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for product %s", e.ProductID)
}

// DuplicateItemError reports a product id listed more than once in one
// checkout. Quantities for one product belong on a single line item.
type DuplicateItemError struct {
	ProductID string
}

func (e DuplicateItemError) Error() string {
	return fmt.Sprintf("duplicate product in order: %s", e.ProductID)
}

func (c CustomerContact) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"postal_code", c.PostalCode},
	}
	for _, f := range fields {
		if f.value == "" {
			return InvalidContactError{Field: f.name}
		}
	}
	return nil
}
