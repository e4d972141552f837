package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"coffee-marketplace-client/internal/models"
)

// ListProducts fetches the catalog, optionally narrowed by filters
func (c *Client) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	params := url.Values{}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.Vendor != "" {
		params.Set("vendor", filters.Vendor)
	}
	if filters.Roast != "" {
		params.Set("roast", filters.Roast)
	}

	path := "/api/products/products/"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []models.Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	path := fmt.Sprintf("/api/products/products/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
