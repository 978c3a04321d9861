package models

// Variant identifies which configuration of a product was chosen. Products
// without variant axes carry a nil Variant.
type Variant struct {
	Size        string `json:"size,omitempty"`
	Temperature string `json:"temperature,omitempty"`
}

// Key returns the merge key for a variant; a nil variant keys as "-".
func (v *Variant) Key() string {
	if v == nil {
		return "-"
	}
	return v.Size + "|" + v.Temperature
}

// CartItem is one line in a cart. Name and Price are snapshots captured at
// add-time so catalog edits do not retroactively change an open cart.
type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"` // unit price, minor currency units
	Quantity  int      `json:"quantity"`
	Variant   *Variant `json:"variant,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// Cart holds a session's candidate purchase lines before checkout. Item order
// is insertion order; it matters for display only.
type Cart struct {
	Items     []CartItem `json:"items"`
	OrderType OrderType  `json:"order_type"`
}

// NewCart returns an empty dine-in cart.
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}, OrderType: OrderTypeDineIn}
}

// Subtotal returns the sum of price*quantity over all lines, in minor units.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, item := range c.Items {
		sum += item.Price * int64(item.Quantity)
	}
	return sum
}

// ItemCount returns the total quantity across all lines, not the line count.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
