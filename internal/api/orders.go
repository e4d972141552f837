package api

import (
	"context"
	"fmt"
	"net/http"

	"coffee-marketplace-client/internal/models"
)

// ListOrders fetches the signed-in user's orders, newest first
func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/orders/", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder deletes an order
func (c *Client) CancelOrder(ctx context.Context, token string, orderID int) error {
	path := fmt.Sprintf("/api/orders/orders/%d/", orderID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
