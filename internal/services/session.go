package services

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"coffee-marketplace-client/internal/api"
	"coffee-marketplace-client/internal/models"
	"coffee-marketplace-client/internal/storage"
)

// SessionStore owns the authenticated identity and its persistence. It is
// the only writer of the session keys in durable storage: Restore,
// Establish, SignUp and Clear are the complete lifecycle.
type SessionStore struct {
	store    LocalStorage
	accounts AccountsGateway
	log      *logrus.Entry
}

// NewSessionStore creates a session store
func NewSessionStore(store LocalStorage, accounts AccountsGateway) *SessionStore {
	return &SessionStore{
		store:    store,
		accounts: accounts,
		log:      logrus.WithField("component", "session"),
	}
}

// Restore reads the persisted session. The session is all-or-nothing: when
// any of the refresh token, access token or profile is missing or
// malformed, Restore reports no session.
func (s *SessionStore) Restore() (*models.Session, bool) {
	access, ok, err := s.store.Get(storage.KeyAccess)
	if err != nil || !ok {
		return nil, false
	}
	refresh, ok, err := s.store.Get(storage.KeyRefresh)
	if err != nil || !ok {
		return nil, false
	}
	userData, ok, err := s.store.Get(storage.KeyUser)
	if err != nil || !ok {
		return nil, false
	}

	user, err := models.DecodeUser(userData)
	if err != nil {
		s.log.WithError(err).Warn("stored profile is malformed, treating as no session")
		return nil, false
	}

	session := &models.Session{
		Access:    string(access),
		Refresh:   string(refresh),
		User:      *user,
		ExpiresAt: tokenExpiry(string(access)),
	}
	if !session.Valid() {
		return nil, false
	}
	return session, true
}

// Establish exchanges credentials for a session and persists it. A rejected
// login returns models.ErrInvalidCredentials; transport failures are
// returned as-is so callers can tell the two apart.
func (s *SessionStore) Establish(ctx context.Context, username, password string) (*models.Session, error) {
	resp, err := s.accounts.Login(ctx, username, password)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) || api.IsStatus(err, http.StatusBadRequest) {
			s.log.WithField("username", username).Info("login rejected")
			return nil, models.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "login request")
	}

	return s.persist(resp)
}

// SignUp registers a new account and persists the returned session.
// Field-keyed validation errors pass through as *models.ValidationError.
func (s *SessionStore) SignUp(ctx context.Context, req *models.SignupRequest) (*models.Session, error) {
	resp, err := s.accounts.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.persist(resp)
}

// Clear removes all persisted session fields
func (s *SessionStore) Clear() error {
	for _, key := range []string{storage.KeyAccess, storage.KeyRefresh, storage.KeyUser} {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	s.log.Debug("session cleared")
	return nil
}

// persist writes the token pair and profile to durable storage
func (s *SessionStore) persist(resp *api.LoginResponse) (*models.Session, error) {
	userData, err := models.EncodeUser(&resp.User)
	if err != nil {
		return nil, errors.Wrap(err, "encode profile")
	}

	if err := s.store.Set(storage.KeyAccess, []byte(resp.Access)); err != nil {
		return nil, err
	}
	if err := s.store.Set(storage.KeyRefresh, []byte(resp.Refresh)); err != nil {
		return nil, err
	}
	if err := s.store.Set(storage.KeyUser, userData); err != nil {
		return nil, err
	}

	session := &models.Session{
		Access:    resp.Access,
		Refresh:   resp.Refresh,
		User:      resp.User,
		ExpiresAt: tokenExpiry(resp.Access),
	}
	s.log.WithField("username", session.User.Username).Debug("session established")
	return session, nil
}

// tokenExpiry extracts the exp claim from an access token without
// verifying the signature. Verification is the backend's job; the client
// only needs the expiry for user-facing messaging.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}
