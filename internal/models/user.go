package models

import "encoding/json"

// UserRole represents the role of a user in the marketplace
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleVendor   UserRole = "VENDOR"
)

// User represents a user profile as returned by the accounts API
type User struct {
	ID          int            `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	UserType    UserRole       `json:"user_type"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Address     string         `json:"address,omitempty"`
	Vendor      *VendorProfile `json:"vendor_profile,omitempty"`
}

// VendorProfile represents the vendor-specific profile attached to VENDOR users
type VendorProfile struct {
	ID                  int     `json:"id"`
	BusinessName        string  `json:"business_name"`
	BusinessDescription string  `json:"business_description,omitempty"`
	BusinessAddress     string  `json:"business_address,omitempty"`
	IsVerified          bool    `json:"is_verified"`
	Rating              float64 `json:"rating"`
}

// IsVendor reports whether the user has the vendor role
func (u *User) IsVendor() bool {
	return u.UserType == RoleVendor
}

// SignupRequest represents the registration payload for the signup endpoint
type SignupRequest struct {
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	Password            string   `json:"password"`
	UserType            UserRole `json:"user_type"`
	PhoneNumber         string   `json:"phone_number,omitempty"`
	Address             string   `json:"address,omitempty"`
	BusinessName        string   `json:"business_name,omitempty"`
	BusinessDescription string   `json:"business_description,omitempty"`
	BusinessAddress     string   `json:"business_address,omitempty"`
}

// ProfileUpdateRequest represents the data that can be updated on a profile
type ProfileUpdateRequest struct {
	Email       string         `json:"email,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Address     string         `json:"address,omitempty"`
	Vendor      *VendorProfile `json:"vendor_profile,omitempty"`
}

// EncodeUser serializes a user profile for durable storage
func EncodeUser(u *User) ([]byte, error) {
	return json.Marshal(u)
}

// DecodeUser parses a stored user profile; a nil or malformed payload yields an error
func DecodeUser(data []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
