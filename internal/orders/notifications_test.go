package orders

import (
	"context"
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Just now"},
		{45 * time.Second, "Just now"},
		{60 * time.Second, "1 minute ago"},
		{2 * time.Minute, "2 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
		{30 * 24 * time.Hour, "1 month ago"},
		{90 * 24 * time.Hour, "3 months ago"},
		{365 * 24 * time.Hour, "1 year ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, tc := range tests {
		if got := TimeAgo(now.Add(-tc.elapsed), now); got != tc.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}

func TestFeedListBuildsNotifications(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	order := Order{
		ID:      "o-1",
		BuyerID: "buyer-1",
		Customer: CustomerContact{
			Name: "Sita", Email: "s@x.com", Phone: "1",
			Address: "a", City: "b", PostalCode: "c",
		},
		Items: []LineItem{
			{ProductID: "p-1", SellerID: "seller-1", Name: "Rice", Quantity: 2, UnitPrice: 60000},
			{ProductID: "p-2", SellerID: "seller-1", Name: "Oil", Quantity: 1, UnitPrice: 1},
		},
		PaymentMethod: PaymentCOD,
		Total:         120001,
		Status:        StatusPending,
		CreatedAt:     now.Add(-2 * time.Hour),
	}
	if _, err := store.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}

	feed := &Feed{Orders: store, UrgentThreshold: 100000, Now: func() time.Time { return now }}
	got, err := feed.List(ctx, "seller-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	n := got[0]
	if n.Message != "Order from Sita - 2 items" {
		t.Errorf("message = %q", n.Message)
	}
	if n.TimeAgo != "2 hours ago" {
		t.Errorf("time_ago = %q", n.TimeAgo)
	}
	if !n.Urgent {
		t.Errorf("total above threshold should be urgent")
	}
	if n.Amount != 120001 || n.OrderID != "o-1" || n.Status != StatusPending {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestFeedUrgentThresholdIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	o := Order{
		ID:       "o-1",
		BuyerID:  "buyer-1",
		Customer: CustomerContact{Name: "Ram"},
		Items:    []LineItem{{ProductID: "p-1", SellerID: "seller-1", Name: "X", Quantity: 1, UnitPrice: 100000}},
		Total:    100000,
		Status:   StatusPending,
	}
	if _, err := store.Create(ctx, o); err != nil {
		t.Fatal(err)
	}

	feed := &Feed{Orders: store, UrgentThreshold: 100000}
	got, err := feed.List(ctx, "seller-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Urgent {
		t.Errorf("total exactly at threshold must not be urgent")
	}
}

func TestFeedScopedToSeller(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mine := Order{
		ID:      "o-mine",
		BuyerID: "buyer-1",
		Items:   []LineItem{{ProductID: "p-1", SellerID: "seller-1", Name: "X", Quantity: 1, UnitPrice: 10}},
		Total:   10,
		Status:  StatusPending,
	}
	other := Order{
		ID:      "o-other",
		BuyerID: "buyer-2",
		Items:   []LineItem{{ProductID: "p-2", SellerID: "seller-2", Name: "Y", Quantity: 1, UnitPrice: 10}},
		Total:   10,
		Status:  StatusPending,
	}
	for _, o := range []Order{mine, other} {
		if _, err := store.Create(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	feed := &Feed{Orders: store, UrgentThreshold: 100000}
	got, err := feed.List(ctx, "seller-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].OrderID != "o-mine" {
		t.Fatalf("feed leaked across sellers: %+v", got)
	}
}

func TestFeedLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for i := 0; i < DefaultFeedLimit+5; i++ {
		o := Order{
			ID:        "o-" + string(rune('a'+i)),
			BuyerID:   "buyer-1",
			Items:     []LineItem{{ProductID: "p", SellerID: "seller-1", Name: "X", Quantity: 1, UnitPrice: 1}},
			Total:     1,
			Status:    StatusPending,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if _, err := store.Create(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	feed := &Feed{Orders: store, UrgentThreshold: 100000}
	got, err := feed.List(ctx, "seller-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != DefaultFeedLimit {
		t.Fatalf("len = %d, want %d", len(got), DefaultFeedLimit)
	}
}
