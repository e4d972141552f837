package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"coffee-marketplace-client/internal/models"
)

// LoginResponse represents the token pair and profile returned on login
type LoginResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

// Login exchanges credentials for a token pair and profile
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	payload := map[string]string{"username": username, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/accounts/login/", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignUp registers a new account. On a 400 the backend's field-keyed
// validation messages are returned as *models.ValidationError.
func (c *Client) SignUp(ctx context.Context, req *models.SignupRequest) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/accounts/signup/", "", req, &resp)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && len(apiErr.Fields) > 0 {
			return nil, &models.ValidationError{Fields: apiErr.Fields}
		}
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the signed-in user's profile
func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/accounts/profile/", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the vendor-facing profile fields
func (c *Client) UpdateProfile(ctx context.Context, token string, req *models.ProfileUpdateRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/accounts/profile/", token, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates the customer-facing user fields
func (c *Client) UpdateUser(ctx context.Context, token string, req *models.ProfileUpdateRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/accounts/update-user/", token, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
