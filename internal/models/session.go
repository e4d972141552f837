package models

import "time"

// Session represents an authenticated identity: the token pair plus the
// signed-in user's profile. A session is either fully present or absent;
// there is no valid partial state.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`

	// ExpiresAt is derived from the access token's exp claim when the
	// token can be parsed; zero otherwise. Informational only.
	ExpiresAt time.Time `json:"-"`
}

// Valid reports whether all required session fields are populated
func (s *Session) Valid() bool {
	return s != nil && s.Access != "" && s.Refresh != "" && s.User.ID != 0
}

// Expired reports whether the access token is known to be past its expiry.
// Sessions without a parseable exp claim are never reported as expired.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
