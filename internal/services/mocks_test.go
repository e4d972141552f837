package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coffee-marketplace-client/internal/api"
	"coffee-marketplace-client/internal/models"
)

// fakeStore is an in-memory LocalStorage for tests
type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Get(key string) ([]byte, bool, error) {
	data, ok := f.data[key]
	return data, ok, nil
}

func (f *fakeStore) Set(key string, value []byte) error {
	f.data[key] = value
	return nil
}

func (f *fakeStore) Delete(key string) error {
	delete(f.data, key)
	return nil
}

// MockAccountsGateway is a mock implementation of AccountsGateway
type MockAccountsGateway struct {
	mock.Mock
}

func (m *MockAccountsGateway) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResponse), args.Error(1)
}

func (m *MockAccountsGateway) SignUp(ctx context.Context, req *models.SignupRequest) (*api.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResponse), args.Error(1)
}

func (m *MockAccountsGateway) Profile(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountsGateway) UpdateProfile(ctx context.Context, token string, req *models.ProfileUpdateRequest) (*models.User, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountsGateway) UpdateUser(ctx context.Context, token string, req *models.ProfileUpdateRequest) (*models.User, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCartGateway is a mock implementation of CartGateway
type MockCartGateway struct {
	mock.Mock
}

func (m *MockCartGateway) FetchCart(ctx context.Context, token string) ([]models.CartItem, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartGateway) CreateCartItem(ctx context.Context, token string, productID, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, token, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartGateway) UpdateCartItem(ctx context.Context, token string, remoteID, quantity int) error {
	args := m.Called(ctx, token, remoteID, quantity)
	return args.Error(0)
}

func (m *MockCartGateway) DeleteCartItem(ctx context.Context, token string, remoteID int) error {
	args := m.Called(ctx, token, remoteID)
	return args.Error(0)
}

// MockOrdersGateway is a mock implementation of OrdersGateway
type MockOrdersGateway struct {
	mock.Mock
}

func (m *MockOrdersGateway) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrdersGateway) CancelOrder(ctx context.Context, token string, orderID int) error {
	args := m.Called(ctx, token, orderID)
	return args.Error(0)
}

// MockPaymentsGateway is a mock implementation of PaymentsGateway
type MockPaymentsGateway struct {
	mock.Mock
}

func (m *MockPaymentsGateway) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentsGateway) RefundPayment(ctx context.Context, token string, paymentID int, req *models.RefundRequest) (*models.Refund, error) {
	args := m.Called(ctx, token, paymentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Refund), args.Error(1)
}
