package portal

import (
	"context"
	"errors"
	"testing"
)

// fakePlacer records or rejects checkout requests.
type fakePlacer struct {
	req  *OrderRequest
	res  *OrderResult
	err  error
	hits int
}

func (f *fakePlacer) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	f.hits++
	f.req = &req
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &OrderResult{Order: Order{ID: "ORD-20250101-001"}}, nil
}

func TestCart_AddItemIncrementsExisting(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "12", Name: "Paracetamol", Price: 30})
	cart.AddItem(CartItem{ID: "7", Name: "Cetirizine", Price: 45})
	cart.AddItem(CartItem{ID: "12", Name: "Paracetamol", Price: 30})
	cart.AddItem(CartItem{ID: "12", Name: "Paracetamol", Price: 30})

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "12" || items[0].Quantity != 3 {
		t.Errorf("items[0] = %+v, want id 12 qty 3", items[0])
	}
	if items[1].ID != "7" || items[1].Quantity != 1 {
		t.Errorf("items[1] = %+v, want id 7 qty 1", items[1])
	}
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	cart := NewCart()
	for _, id := range []string{"c", "a", "b"} {
		cart.AddItem(CartItem{ID: id, Price: 1})
	}
	cart.AddItem(CartItem{ID: "a", Price: 1}) // must not move "a"

	items := cart.Items()
	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCart_TotalRecomputed(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "1", Price: 10.5})
	cart.AddItem(CartItem{ID: "2", Price: 4.25})
	cart.AddItem(CartItem{ID: "1", Price: 10.5})

	if got, want := cart.Total(), 10.5*2+4.25; got != want {
		t.Errorf("Total() = %v, want %v", got, want)
	}

	cart.SetQuantity("1", 5)
	if got, want := cart.Total(), 10.5*5+4.25; got != want {
		t.Errorf("Total() after SetQuantity = %v, want %v", got, want)
	}

	cart.SetQuantity("2", 0)
	if got, want := cart.Total(), 10.5*5; got != want {
		t.Errorf("Total() after removal = %v, want %v", got, want)
	}
}

func TestCart_SetQuantityRemovesAtZero(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "1", Price: 10})
	cart.AddItem(CartItem{ID: "2", Price: 20})

	cart.SetQuantity("1", 0)
	if cart.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cart.Len())
	}
	for _, it := range cart.Items() {
		if it.Quantity < 1 {
			t.Errorf("item %s has quantity %d", it.ID, it.Quantity)
		}
	}

	// Absent id is a no-op, not an error.
	cart.SetQuantity("missing", 3)
	if cart.Len() != 1 {
		t.Errorf("Len() after no-op = %d, want 1", cart.Len())
	}
}

func TestCart_CheckoutEmptyCart(t *testing.T) {
	cart := NewCart()
	placer := &fakePlacer{}

	_, err := cart.Checkout(context.Background(), placer, "u1", "Apollo Pharmacy", "12 Main St", "5551234", "")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "cart" {
		t.Errorf("Fields = %v, want [cart]", ve.Fields)
	}
	if placer.hits != 0 {
		t.Errorf("placer called %d times, want 0", placer.hits)
	}
}

func TestCart_CheckoutMissingPhone(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "1", Name: "Paracetamol", Price: 30})
	placer := &fakePlacer{}

	_, err := cart.Checkout(context.Background(), placer, "u1", "Apollo Pharmacy", "12 Main St", "  ", "")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	found := false
	for _, f := range ve.Fields {
		if f == "phone" {
			found = true
		}
	}
	if !found {
		t.Errorf("Fields = %v, want phone named", ve.Fields)
	}
	if cart.Len() != 1 {
		t.Errorf("cart mutated by failed checkout: Len() = %d, want 1", cart.Len())
	}
}

func TestCart_CheckoutServerFailureKeepsCart(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "1", Price: 30})
	cart.AddItem(CartItem{ID: "2", Price: 45})
	placer := &fakePlacer{err: &HTTPError{Status: 500, Message: "boom"}}

	_, err := cart.Checkout(context.Background(), placer, "u1", "MedPlus", "12 Main St", "5551234", "")
	if !IsHTTPError(err) {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if cart.Len() != 2 {
		t.Errorf("cart cleared on failure: Len() = %d, want 2", cart.Len())
	}
}

func TestCart_CheckoutSuccessClearsCart(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "1", Name: "Paracetamol", Price: 30})
	cart.AddItem(CartItem{ID: "1", Name: "Paracetamol", Price: 30})
	cart.AddItem(CartItem{ID: "2", Name: "Cetirizine", Price: 45})
	placer := &fakePlacer{}

	res, err := cart.Checkout(context.Background(), placer, "u1", "Apollo Pharmacy", "12 Main St", "5551234", "fever for 2 days")
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if res.Order.ID == "" {
		t.Error("Checkout() returned empty order id")
	}
	if cart.Len() != 0 {
		t.Errorf("Len() after checkout = %d, want 0", cart.Len())
	}

	if placer.req == nil {
		t.Fatal("placer never called")
	}
	if placer.req.Total != 30*2+45 {
		t.Errorf("order total = %v, want %v", placer.req.Total, 30*2+45.0)
	}
	if len(placer.req.Medicines) != 2 {
		t.Errorf("order lines = %d, want 2", len(placer.req.Medicines))
	}
	if placer.req.Symptoms != "fever for 2 days" {
		t.Errorf("symptoms = %q", placer.req.Symptoms)
	}
}
