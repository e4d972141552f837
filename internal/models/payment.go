package models

import "time"

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentComplete PaymentStatus = "COMPLETED"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Payment represents a payment record as returned by the payments API
type Payment struct {
	ID            int           `json:"id"`
	Order         int           `json:"order"`
	Amount        Price         `json:"amount"`
	PaymentMethod string        `json:"payment_method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PaymentInitiateRequest represents a mobile-money payment initiation
type PaymentInitiateRequest struct {
	OrderID     int    `json:"order_id"`
	Amount      int    `json:"amount"`
	PhoneNumber string `json:"phone_number"`
}

// RefundRequest represents a refund initiation payload
type RefundRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Refund represents a refund record
type Refund struct {
	ID        int       `json:"id"`
	Payment   int       `json:"payment"`
	Amount    Price     `json:"amount"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
