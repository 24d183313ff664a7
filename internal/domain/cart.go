package domain

import "sync"

// CartLine is one product entry in a cart. Name, UnitPrice and ImageURL are
// snapshots taken when the product was first added; later catalog edits do not
// touch lines already in the cart.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	ImageURL  string `json:"image_url,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Cart is the in-memory aggregate for one shopping session: an ordered list of
// lines (insertion order is display order, at most one line per product) plus
// totals that are recomputed inside every mutation. It is never persisted.
type Cart struct {
	mu          sync.Mutex
	lines       []CartLine
	totalItems  int
	totalPrice  int64
	checkingOut bool
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends a new line with quantity 1, or bumps the quantity of the
// existing line for the same product. Adding is always legal.
func (c *Cart) AddItem(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			c.recompute()
			return
		}
	}

	c.lines = append(c.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})
	c.recompute()
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or below
// removes the line. An unknown product id is a silent no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		c.recompute()
		return
	}
}

// RemoveItem deletes the line if present; removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.recompute()
			return
		}
	}
}

// Clear empties the cart unconditionally. It is the terminal step of a
// successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.recompute()
}

// recompute refreshes the derived totals. Callers must hold c.mu; every
// mutation ends with a recompute so the totals are never stale.
func (c *Cart) recompute() {
	items := 0
	var price int64
	for _, l := range c.lines {
		items += l.Quantity
		price += l.UnitPrice * int64(l.Quantity)
	}
	c.totalItems = items
	c.totalPrice = price
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalItems
}

func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPrice
}

// Lines returns a copy of the current lines in display order.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot freezes the current lines as order items. The returned slice shares
// nothing with the cart, so later cart mutations cannot alter a placed order.
func (c *Cart) Snapshot() []OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return items
}

// BeginCheckout latches the cart for a single in-flight checkout. It reports
// false if another checkout already holds the latch.
func (c *Cart) BeginCheckout() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checkingOut {
		return false
	}
	c.checkingOut = true
	return true
}

func (c *Cart) EndCheckout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkingOut = false
}

// CartStore hands out the cart aggregate owned by each shopping session.
type CartStore interface {
	GetOrCreate(sessionID string) *Cart
	Get(sessionID string) (*Cart, bool)
	Delete(sessionID string)
	StartJanitor(done <-chan struct{})
}
