package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RoastType represents a coffee roast level
type RoastType string

const (
	RoastLight  RoastType = "LIGHT"
	RoastMedium RoastType = "MEDIUM"
	RoastDark   RoastType = "DARK"
)

// Price represents a monetary amount. The backend serializes decimal fields
// as strings, so Price accepts both string and numeric JSON encodings.
type Price float64

// UnmarshalJSON parses a price from either "300.00" or 300.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// MarshalJSON emits the price as a plain number
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

// Product represents a catalog product as returned by the products API
type Product struct {
	ID            int             `json:"id"`
	Vendor        string          `json:"vendor"`
	Category      int             `json:"category"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         Price           `json:"price"`
	Stock         int             `json:"stock"`
	RoastType     RoastType       `json:"roast_type"`
	Origin        string          `json:"origin"`
	Image         string          `json:"image,omitempty"`
	IsAvailable   bool            `json:"is_available"`
	Reviews       []ProductReview `json:"reviews,omitempty"`
	AverageRating *float64        `json:"average_rating"`
}

// ProductReview represents a customer review on a product
type ProductReview struct {
	ID      int    `json:"id"`
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ProductFilters represents the optional catalog query filters
type ProductFilters struct {
	Category string
	Vendor   string
	Roast    string
}
