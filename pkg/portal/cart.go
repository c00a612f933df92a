package portal

import (
	"context"
	"strings"
	"sync"
)

// OrderPlacer is the slice of the gateway client Checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}

// Cart is the in-progress set of medicines a patient intends to order.
// Items keep their insertion order; no item ever has a quantity below 1.
type Cart struct {
	mu    sync.Mutex
	items []CartItem
}

// CartItem is one medicine line in the cart.
type CartItem struct {
	ID    string
	Name  string
	Price float64
	// Quantity is always >= 1 while the item is in the cart.
	Quantity int
}

func NewCart() *Cart { return &Cart{} }

// AddItem puts one unit of the medicine in the cart. Adding an id that is
// already present increments its quantity instead of duplicating the row.
func (c *Cart) AddItem(item CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// SetQuantity sets the quantity for an item. A quantity below 1 removes the
// item; an absent id is a no-op.
func (c *Cart) SetQuantity(id string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		if qty < 1 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = qty
		}
		return
	}
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total is recomputed from the current items on every call so it can never
// drift from their quantities.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total()
}

func (c *Cart) total() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Checkout validates the cart and delivery details, places the order and
// clears the cart. Validation failures and server errors leave the cart
// exactly as it was; the cart empties only after the server accepts the
// order.
func (c *Cart) Checkout(ctx context.Context, placer OrderPlacer, userID, shop, address, phone, notes string) (*OrderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var missing []string
	if len(c.items) == 0 {
		missing = append(missing, "cart")
	}
	if strings.TrimSpace(address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	medicines := make([]OrderItem, len(c.items))
	for i, it := range c.items {
		medicines[i] = OrderItem{ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity}
	}
	req := OrderRequest{
		UserID:    userID,
		Medicines: medicines,
		Shop:      shop,
		Address:   address,
		Phone:     phone,
		Total:     c.total(),
		Symptoms:  notes,
	}

	res, err := placer.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	c.items = nil
	return res, nil
}
