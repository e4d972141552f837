package models

import "encoding/json"

// CartItem represents a single line in the shopping cart. RemoteID is the
// backend-assigned line-item identifier and is only present once the item
// has been persisted server-side for an authenticated session.
type CartItem struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     Price  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	RemoteID  *int   `json:"remote_id,omitempty"`
}

// Subtotal returns price × quantity for this line
func (i *CartItem) Subtotal() float64 {
	return float64(i.Price) * float64(i.Quantity)
}

// Cart represents the in-memory cart: an insertion-ordered item list.
// The total is always derived, never stored.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total returns the sum of price × quantity over all items
func (c *Cart) Total() float64 {
	var total float64
	for i := range c.Items {
		total += c.Items[i].Subtotal()
	}
	return total
}

// Find returns the index of the item with the given product id, or -1
func (c *Cart) Find(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// EncodeCartItems serializes a guest cart for durable storage
func EncodeCartItems(items []CartItem) ([]byte, error) {
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(items)
}

// DecodeCartItems parses a stored guest cart. Malformed payloads yield an
// error; callers treat that as an empty cart.
func DecodeCartItems(data []byte) ([]CartItem, error) {
	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoteCart represents one active cart as returned by the cart API
type RemoteCart struct {
	ID         int              `json:"id"`
	Vendor     int              `json:"vendor"`
	VendorName string           `json:"vendor_name"`
	Items      []RemoteCartItem `json:"items"`
	Total      Price            `json:"total"`
}

// RemoteCartItem represents a persisted line item inside a remote cart
type RemoteCartItem struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal Price   `json:"subtotal"`
}

// ToCartItem maps a remote line item onto the client cart representation
func (r *RemoteCartItem) ToCartItem() CartItem {
	id := r.ID
	return CartItem{
		ProductID: r.Product.ID,
		Name:      r.Product.Name,
		Price:     r.Product.Price,
		Quantity:  r.Quantity,
		Image:     r.Product.Image,
		RemoteID:  &id,
	}
}
