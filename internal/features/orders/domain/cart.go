package domain

// Cart is the per-user cart aggregate: a map of product id to quantity.
// It is owned by exactly one user and cleared exactly once per placed order.
type Cart struct {
	// Items maps product id to quantity.
	Items map[string]int `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: map[string]int{}}
}

// Add increases the quantity for a product. Non-positive quantities are ignored.
func (c *Cart) Add(productID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	c.Items[productID] += quantity
}

// Remove drops a product from the cart entirely.
func (c *Cart) Remove(productID string) {
	delete(c.Items, productID)
}

// Empty reports whether the cart holds no items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
