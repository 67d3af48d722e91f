package notifier

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/pasalhub/pasal/internal/kafka"
	"github.com/pasalhub/pasal/internal/orders"
)

func envelope(t *testing.T, eventType string, payload any) kafkago.Message {
	t.Helper()
	env := orders.Envelope{
		EventID:      "ev-1",
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "test",
		Payload:      kafkax.MustMarshal(payload),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandleOrderPlaced(t *testing.T) {
	svc := &Service{ServiceName: "notifier-test"}
	msg := envelope(t, orders.EventOrderPlaced, orders.OrderPlacedPayload{
		OrderID:  "o-1",
		BuyerID:  "b-1",
		Customer: "Sita",
		Items:    []orders.LineItem{{ProductID: "p-1", Quantity: 2, UnitPrice: 50}},
		Total:    100,
	})
	if err := svc.HandleOrderPlaced(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
}

func TestHandleIgnoresOtherEventTypes(t *testing.T) {
	svc := &Service{ServiceName: "notifier-test"}
	msg := envelope(t, orders.EventOrderStatusChanged, orders.OrderStatusChangedPayload{
		OrderID: "o-1", From: orders.StatusPending, To: orders.StatusDelivered,
	})
	if err := svc.HandleOrderPlaced(context.Background(), msg); err != nil {
		t.Fatalf("foreign event type should be skipped, got %v", err)
	}
}

func TestHandleRejectsMalformedEnvelope(t *testing.T) {
	svc := &Service{ServiceName: "notifier-test"}
	msg := kafkago.Message{Value: []byte("{not json")}
	if err := svc.HandleOrderPlaced(context.Background(), msg); err == nil {
		t.Fatal("expected decode error")
	}
}
