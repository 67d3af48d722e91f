package orders

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/pasalhub/pasal/internal/cart"
	"github.com/pasalhub/pasal/internal/catalog"
	kafkax "github.com/pasalhub/pasal/internal/kafka"
)

type ItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Customer      CustomerContact `json:"customer"`
	Items         []ItemInput     `json:"cart_items"`
	PaymentMethod string          `json:"payment_method"`
}

// Publisher is the slice of kafka.Producer the service needs; nil disables
// event publication.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service runs the order workflow and the status lifecycle.
type Service struct {
	Orders  Store
	Catalog catalog.Store
	Carts   cart.Store
	Policy  StatusPolicy

	ServiceName  string
	PlacedEvents Publisher
	StatusEvents Publisher

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// PlaceOrder converts a cart into a persisted order. Validation runs over
// every item before any stock is touched; the commit phase uses conditional
// decrements and compensates already-applied ones if a later step fails, so
// a rejected checkout never leaves partial stock mutations behind.
func (s *Service) PlaceOrder(ctx context.Context, buyerID string, req CheckoutRequest) (Order, error) {
	if len(req.Items) == 0 {
		return Order{}, ErrEmptyCart
	}
	if err := req.Customer.validate(); err != nil {
		return Order{}, err
	}
	method := PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return Order{}, InvalidPaymentMethodError{Method: req.PaymentMethod}
	}
	seen := make(map[string]struct{}, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return Order{}, InvalidQuantityError{ProductID: it.ProductID}
		}
		// a repeated id would decrement twice and then collide on the
		// order_items primary key
		if _, dup := seen[it.ProductID]; dup {
			return Order{}, DuplicateItemError{ProductID: it.ProductID}
		}
		seen[it.ProductID] = struct{}{}
	}

	// Read-only pass: every product must exist and cover its quantity
	// before the first mutation happens.
	products := make([]catalog.Product, len(req.Items))
	for i, it := range req.Items {
		p, err := s.Catalog.Get(ctx, it.ProductID)
		if err != nil {
			return Order{}, err
		}
		if p.Stock < it.Quantity {
			return Order{}, catalog.InsufficientStockError{
				ProductID: p.ID, Available: p.Stock, Requested: it.Quantity,
			}
		}
		products[i] = p
	}

	// Commit pass. A conditional decrement can still lose against a
	// concurrent checkout; that rolls back the decrements of this order.
	for i, it := range req.Items {
		if _, err := s.Catalog.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.compensate(ctx, req.Items[:i])
			return Order{}, err
		}
	}

	items := make([]LineItem, len(req.Items))
	total := 0
	for i, it := range req.Items {
		p := products[i]
		items[i] = LineItem{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		}
		total += p.Price * it.Quantity
	}

	order := Order{
		ID:            uuid.NewString(),
		BuyerID:       buyerID,
		Customer:      req.Customer,
		Items:         items,
		PaymentMethod: method,
		Total:         total,
		Status:        StatusPending,
		CreatedAt:     s.now(),
	}
	created, err := s.Orders.Create(ctx, order)
	if err != nil {
		s.compensate(ctx, req.Items)
		return Order{}, err
	}

	// The order is durable now; a failed cart cleanup leaves stale entries
	// but never a half-placed order.
	ids := make([]string, len(req.Items))
	for i, it := range req.Items {
		ids[i] = it.ProductID
	}
	if _, err := s.Carts.BulkRemove(ctx, buyerID, ids); err != nil {
		slog.Error("cart cleanup after checkout failed", "order_id", created.ID, "err", err)
	}

	s.publish(s.PlacedEvents, EventOrderPlaced, created.ID, OrderPlacedPayload{
		OrderID:  created.ID,
		BuyerID:  created.BuyerID,
		Customer: created.Customer.Name,
		Items:    created.Items,
		Total:    created.Total,
	})
	return created, nil
}

func (s *Service) compensate(ctx context.Context, applied []ItemInput) {
	for _, it := range applied {
		if err := s.Catalog.IncrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			slog.Error("stock compensation failed", "product_id", it.ProductID, "qty", it.Quantity, "err", err)
		}
	}
}

// UpdateStatus applies a seller-driven transition. Unknown values fail before
// the order is even looked up; the reopen policy guards terminal states.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (Order, error) {
	next := Status(status)
	if !next.Valid() {
		return Order{}, InvalidStatusError{Status: status}
	}
	cur, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !s.Policy.CanTransition(cur.Status, next) {
		return Order{}, InvalidTransitionError{From: cur.Status, To: next}
	}
	updated, err := s.Orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return Order{}, err
	}
	if cur.Status != next {
		s.publish(s.StatusEvents, EventOrderStatusChanged, updated.ID, OrderStatusChangedPayload{
			OrderID: updated.ID, From: cur.Status, To: next,
		})
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (Order, error) {
	return s.Orders.Get(ctx, orderID)
}

func (s *Service) ListByBuyer(ctx context.Context, buyerID string) ([]Order, error) {
	return s.Orders.ListByBuyer(ctx, buyerID)
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]Order, error) {
	return s.Orders.ListBySeller(ctx, sellerID, 0)
}

func (s *Service) publish(p Publisher, eventType, orderID string, payload any) {
	if p == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
