package services

import (
	"context"

	"coffee-marketplace-client/internal/api"
	"coffee-marketplace-client/internal/models"
)

// LocalStorage defines the durable client-side key-value store used for
// session fields and the guest cart
type LocalStorage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// AccountsGateway defines the accounts API surface used by the session store
type AccountsGateway interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	SignUp(ctx context.Context, req *models.SignupRequest) (*api.LoginResponse, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, req *models.ProfileUpdateRequest) (*models.User, error)
	UpdateUser(ctx context.Context, token string, req *models.ProfileUpdateRequest) (*models.User, error)
}

// CartGateway defines the remote cart API surface used by the synchronizer
type CartGateway interface {
	FetchCart(ctx context.Context, token string) ([]models.CartItem, error)
	CreateCartItem(ctx context.Context, token string, productID, quantity int) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, token string, remoteID, quantity int) error
	DeleteCartItem(ctx context.Context, token string, remoteID int) error
}

// OrdersGateway defines the orders API surface used by the dashboard
type OrdersGateway interface {
	ListOrders(ctx context.Context, token string) ([]models.Order, error)
	CancelOrder(ctx context.Context, token string, orderID int) error
}

// PaymentsGateway defines the payments API surface used by the dashboard
type PaymentsGateway interface {
	ListPayments(ctx context.Context, token string) ([]models.Payment, error)
	RefundPayment(ctx context.Context, token string, paymentID int, req *models.RefundRequest) (*models.Refund, error)
}
