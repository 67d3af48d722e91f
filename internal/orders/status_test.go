package orders

import (
	"context"
	"errors"
	"testing"
)

func placeTestOrder(t *testing.T, f *fixture) Order {
	t.Helper()
	p := seedProduct(t, f.catalog, "P", 100, 10)
	o, err := f.svc.PlaceOrder(context.Background(), "buyer-1", CheckoutRequest{
		Customer:      validContact(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return o
}

func TestUpdateStatusHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := placeTestOrder(t, f)

	updated, err := f.svc.UpdateStatus(ctx, o.ID, "Delivered")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusDelivered {
		t.Fatalf("status = %s, want Delivered", updated.Status)
	}
	stored, _ := f.orders.Get(ctx, o.ID)
	if stored.Status != StatusDelivered {
		t.Fatalf("stored status = %s", stored.Status)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := placeTestOrder(t, f)

	_, err := f.svc.UpdateStatus(ctx, o.ID, "Shipped")
	var invalid InvalidStatusError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
	stored, _ := f.orders.Get(ctx, o.ID)
	if stored.Status != StatusPending {
		t.Fatalf("status mutated to %s", stored.Status)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateStatus(context.Background(), "missing", "Delivered")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.OrderID != "missing" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateStatusTerminalLocked(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := placeTestOrder(t, f)
	if _, err := f.svc.UpdateStatus(ctx, o.ID, "Cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := f.svc.UpdateStatus(ctx, o.ID, "Pending")
	var bad InvalidTransitionError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if bad.From != StatusCancelled || bad.To != StatusPending {
		t.Fatalf("unexpected detail: %+v", bad)
	}

	// same-status writes stay allowed on terminal orders
	if _, err := f.svc.UpdateStatus(ctx, o.ID, "Cancelled"); err != nil {
		t.Fatalf("idempotent terminal write: %v", err)
	}
}

func TestUpdateStatusReopenPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.svc.Policy = StatusPolicy{AllowReopen: true}
	o := placeTestOrder(t, f)
	if _, err := f.svc.UpdateStatus(ctx, o.ID, "Delivered"); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, o.ID, "Pending")
	if err != nil {
		t.Fatalf("reopen should be allowed: %v", err)
	}
	if updated.Status != StatusPending {
		t.Fatalf("status = %s, want Pending", updated.Status)
	}
}

func TestUpdateStatusDoesNotTouchStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := seedProduct(t, f.catalog, "P", 100, 10)
	o, err := f.svc.PlaceOrder(ctx, "buyer-1", CheckoutRequest{
		Customer:      validContact(),
		Items:         []ItemInput{{ProductID: p.ID, Quantity: 4}},
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if _, err := f.svc.UpdateStatus(ctx, o.ID, "Cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, _ := f.catalog.Get(ctx, p.ID)
	if got.Stock != 6 {
		t.Fatalf("stock = %d, want 6 (cancellation must not restock)", got.Stock)
	}
}

func TestCanTransitionTable(t *testing.T) {
	tests := []struct {
		from, to Status
		reopen   bool
		want     bool
	}{
		{StatusPending, StatusDelivered, false, true},
		{StatusPending, StatusCancelled, false, true},
		{StatusPending, StatusPending, false, true},
		{StatusDelivered, StatusPending, false, false},
		{StatusDelivered, StatusCancelled, false, false},
		{StatusDelivered, StatusDelivered, false, true},
		{StatusCancelled, StatusPending, false, false},
		{StatusDelivered, StatusPending, true, true},
		{StatusCancelled, StatusDelivered, true, true},
	}
	for _, tc := range tests {
		p := StatusPolicy{AllowReopen: tc.reopen}
		if got := p.CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s, reopen=%v) = %v, want %v",
				tc.from, tc.to, tc.reopen, got, tc.want)
		}
	}
}
