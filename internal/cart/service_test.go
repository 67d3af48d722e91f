package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/pasalhub/pasal/internal/catalog"
)

func newService(t *testing.T) (*Service, *catalog.MemoryStore) {
	t.Helper()
	cs := catalog.NewMemoryStore()
	return &Service{Carts: NewMemoryStore(), Catalog: cs}, cs
}

func seedProduct(t *testing.T, cs *catalog.MemoryStore, name string, price int) catalog.Product {
	t.Helper()
	p, err := cs.Create(context.Background(), catalog.Product{
		SellerID:        "seller-1",
		Name:            name,
		Description:     "d",
		Category:        catalog.CategoryGrocery,
		Price:           price,
		Stock:           10,
		QuantityPerUnit: 1,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestAddStartsAtQuantityOne(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	p := seedProduct(t, cs, "Rice", 120)

	e, err := svc.Add(ctx, "buyer-1", p.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", e.Quantity)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Add(context.Background(), "buyer-1", "missing")
	var nf catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestAddDuplicateConflicts(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	p := seedProduct(t, cs, "Rice", 120)

	if _, err := svc.Add(ctx, "buyer-1", p.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(ctx, "buyer-1", p.ID); !errors.Is(err, ErrAlreadyInCart) {
		t.Fatalf("expected ErrAlreadyInCart, got %v", err)
	}
	// a different buyer is a different cart
	if _, err := svc.Add(ctx, "buyer-2", p.ID); err != nil {
		t.Fatalf("other buyer add: %v", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	p := seedProduct(t, cs, "Rice", 120)
	if _, err := svc.Add(ctx, "buyer-1", p.ID); err != nil {
		t.Fatal(err)
	}

	e, err := svc.UpdateQuantity(ctx, "buyer-1", p.ID, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if e.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", e.Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, "buyer-1", p.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "buyer-1", "missing", 2); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	p := seedProduct(t, cs, "Rice", 120)
	if _, err := svc.Add(ctx, "buyer-1", p.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.Remove(ctx, "buyer-1", p.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(ctx, "buyer-1", p.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("second remove should fail, got %v", err)
	}
}

func TestBulkRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	a := seedProduct(t, cs, "A", 10)
	b := seedProduct(t, cs, "B", 20)
	for _, p := range []catalog.Product{a, b} {
		if _, err := svc.Add(ctx, "buyer-1", p.ID); err != nil {
			t.Fatal(err)
		}
	}

	n, err := svc.BulkRemove(ctx, "buyer-1", []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("bulk remove: %v", err)
	}
	if n != 2 {
		t.Fatalf("removed = %d, want 2", n)
	}

	// repeating the same call succeeds and removes nothing
	n, err = svc.BulkRemove(ctx, "buyer-1", []string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("repeat bulk remove: %v", err)
	}
	if n != 0 {
		t.Fatalf("removed = %d, want 0", n)
	}
}

func TestListJoinsLiveCatalogData(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	p := seedProduct(t, cs, "Rice", 120)
	if _, err := svc.Add(ctx, "buyer-1", p.ID); err != nil {
		t.Fatal(err)
	}

	// a price change after the add shows up in the cart view
	p.Price = 150
	if _, err := cs.Update(ctx, p); err != nil {
		t.Fatal(err)
	}

	items, err := svc.List(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].Price != 150 || items[0].Name != "Rice" || items[0].Quantity != 1 {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestListDropsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	svc, cs := newService(t)
	keep := seedProduct(t, cs, "Keep", 10)
	gone := seedProduct(t, cs, "Gone", 20)
	for _, p := range []catalog.Product{keep, gone} {
		if _, err := svc.Add(ctx, "buyer-1", p.ID); err != nil {
			t.Fatal(err)
		}
	}
	if err := cs.Delete(ctx, gone.ID); err != nil {
		t.Fatal(err)
	}

	items, err := svc.List(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != keep.ID {
		t.Fatalf("unexpected items: %+v", items)
	}
}
