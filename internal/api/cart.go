package api

import (
	"context"
	"fmt"
	"net/http"

	"coffee-marketplace-client/internal/models"
)

// FetchCart returns the authenticated cart snapshot as a flat item list.
// The backend keeps one active cart per vendor; the client view is the
// concatenation of all of them, in server order.
func (c *Client) FetchCart(ctx context.Context, token string) ([]models.CartItem, error) {
	var carts []models.RemoteCart
	if err := c.do(ctx, http.MethodGet, "/api/cart/cart/", token, nil, &carts); err != nil {
		return nil, err
	}

	var items []models.CartItem
	for i := range carts {
		for j := range carts[i].Items {
			items = append(items, carts[i].Items[j].ToCartItem())
		}
	}
	return items, nil
}

// CreateCartItem persists a new line item and returns it with the
// backend-assigned line-item id attached.
func (c *Client) CreateCartItem(ctx context.Context, token string, productID, quantity int) (*models.CartItem, error) {
	payload := map[string]int{"product_id": productID, "quantity": quantity}

	var cart models.RemoteCart
	if err := c.do(ctx, http.MethodPost, "/api/cart/cart/", token, payload, &cart); err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].Product.ID == productID {
			item := cart.Items[i].ToCartItem()
			return &item, nil
		}
	}
	return nil, fmt.Errorf("created item for product %d missing from cart response", productID)
}

// UpdateCartItem sets the quantity of a persisted line item
func (c *Client) UpdateCartItem(ctx context.Context, token string, remoteID, quantity int) error {
	payload := map[string]int{"quantity": quantity}
	path := fmt.Sprintf("/api/cart/items/%d/", remoteID)
	return c.do(ctx, http.MethodPut, path, token, payload, nil)
}

// DeleteCartItem removes a persisted line item
func (c *Client) DeleteCartItem(ctx context.Context, token string, remoteID int) error {
	path := fmt.Sprintf("/api/cart/items/%d/", remoteID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
