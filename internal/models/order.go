package models

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order represents an order as returned by the orders API
type Order struct {
	ID              int         `json:"id"`
	Customer        int         `json:"customer"`
	Status          OrderStatus `json:"status"`
	TotalAmount     Price       `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	PhoneNumber     string      `json:"phone_number"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem represents a line item within an order
type OrderItem struct {
	ID       int   `json:"id"`
	Product  int   `json:"product"`
	Quantity int   `json:"quantity"`
	Price    Price `json:"price"`
}
