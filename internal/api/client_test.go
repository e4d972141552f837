package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-marketplace-client/internal/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestLoginSuccess(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/accounts/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"acc","refresh":"ref","user":{"id":1,"username":"jo","email":"jo@example.com","user_type":"CUSTOMER"}}`))
	}))
	defer server.Close()

	resp, err := client.Login(context.Background(), "jo", "secret")
	require.NoError(t, err)
	assert.Equal(t, "acc", resp.Access)
	assert.Equal(t, "ref", resp.Refresh)
	assert.Equal(t, 1, resp.User.ID)
	assert.Equal(t, models.RoleCustomer, resp.User.UserType)
}

func TestLoginRejected(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer server.Close()

	_, err := client.Login(context.Background(), "jo", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestSignUpValidationError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"username":["A user with that username already exists."],"email":["Enter a valid email address."]}`))
	}))
	defer server.Close()

	_, err := client.SignUp(context.Background(), &models.SignupRequest{Username: "jo"})
	require.Error(t, err)

	validationErr, ok := err.(*models.ValidationError)
	require.True(t, ok, "expected *models.ValidationError, got %T", err)
	assert.Equal(t, []string{"A user with that username already exists."}, validationErr.Fields["username"])
	assert.Equal(t, []string{"Enter a valid email address."}, validationErr.Fields["email"])
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":1,"username":"jo","email":"jo@example.com","user_type":"CUSTOMER"}`))
	}))
	defer server.Close()

	_, err := client.Profile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestFetchCartFlattensVendorCarts(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart/cart/", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"vendor":5,"items":[
				{"id":11,"quantity":2,"product":{"id":1,"name":"Espresso","price":"300.00"}}
			]},
			{"id":2,"vendor":6,"items":[
				{"id":12,"quantity":1,"product":{"id":2,"name":"Pour Over","price":"500.00"}}
			]}
		]`))
	}))
	defer server.Close()

	items, err := client.FetchCart(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].ProductID)
	assert.Equal(t, "Espresso", items[0].Name)
	assert.Equal(t, models.Price(300), items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, items[0].RemoteID)
	assert.Equal(t, 11, *items[0].RemoteID)

	require.NotNil(t, items[1].RemoteID)
	assert.Equal(t, 12, *items[1].RemoteID)
}

func TestCreateCartItemReturnsRemoteID(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/cart/", r.URL.Path)
		w.Write([]byte(`{"id":1,"items":[
			{"id":31,"quantity":1,"product":{"id":7,"name":"Dark Roast","price":"550.00"}}
		]}`))
	}))
	defer server.Close()

	item, err := client.CreateCartItem(context.Background(), "tok", 7, 1)
	require.NoError(t, err)
	require.NotNil(t, item.RemoteID)
	assert.Equal(t, 31, *item.RemoteID)
	assert.Equal(t, "Dark Roast", item.Name)
}

func TestCreateCartItemMissingFromResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"items":[]}`))
	}))
	defer server.Close()

	_, err := client.CreateCartItem(context.Background(), "tok", 7, 1)
	assert.Error(t, err)
}

func TestUpdateAndDeleteCartItemPaths(t *testing.T) {
	var gotMethod, gotPath string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	require.NoError(t, client.UpdateCartItem(context.Background(), "tok", 31, 4))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/cart/items/31/", gotPath)

	require.NoError(t, client.DeleteCartItem(context.Background(), "tok", 31))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/cart/items/31/", gotPath)
}

func TestListProductsFilters(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":1,"name":"Espresso","price":"300.00","roast_type":"DARK"}]`))
	}))
	defer server.Close()

	products, err := client.ListProducts(context.Background(), models.ProductFilters{
		Category: "2",
		Roast:    "DARK",
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.Price(300), products[0].Price)
	assert.Contains(t, gotQuery, "category=2")
	assert.Contains(t, gotQuery, "roast=DARK")
	assert.NotContains(t, gotQuery, "vendor")
}

func TestTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.FetchCart(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusBadRequest))
}

func TestAPIErrorDetailEnvelope(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer server.Close()

	err := client.CancelOrder(context.Background(), "tok", 99)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "Not found.")
}
