package api

import (
	"context"
	"fmt"
	"net/http"

	"coffee-marketplace-client/internal/models"
)

// ListPayments fetches payment records visible to the signed-in user
func (c *Client) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments/payments/", token, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// InitiatePayment starts a mobile-money payment for an order
func (c *Client) InitiatePayment(ctx context.Context, token string, req *models.PaymentInitiateRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments/payments/", token, req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// RefundPayment initiates a refund for a payment
func (c *Client) RefundPayment(ctx context.Context, token string, paymentID int, req *models.RefundRequest) (*models.Refund, error) {
	var refund models.Refund
	path := fmt.Sprintf("/api/payments/%d/refund/", paymentID)
	if err := c.do(ctx, http.MethodPost, path, token, req, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}
