package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Well-known storage keys. These mirror the browser localStorage keys the
// backend ecosystem expects, so state is interchangeable across clients.
const (
	KeyAccess    = "access"
	KeyRefresh   = "refresh"
	KeyUser      = "user"
	KeyGuestCart = "guestCart"
)

// LocalStore is a durable key-value store backed by one file per key under
// a base directory. It stands in for browser localStorage: small values,
// last-write-wins, no locking needed beyond process-level.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a local store rooted at basePath
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, errors.Wrapf(err, "create storage directory %s", basePath)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Get reads the value stored under key. The second return value reports
// whether the key exists.
func (s *LocalStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read key %s", key)
	}
	return data, true, nil
}

// Set overwrites the value stored under key. The write is atomic: the value
// lands in a temp file first and is renamed into place.
func (s *LocalStore) Set(key string, value []byte) error {
	target := s.keyPath(key)
	tmp := fmt.Sprintf("%s.%s.tmp", target, uuid.NewString())

	if err := os.WriteFile(tmp, value, 0600); err != nil {
		return errors.Wrapf(err, "write key %s", key)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "commit key %s", key)
	}

	logrus.WithFields(logrus.Fields{"key": key, "bytes": len(value)}).Debug("storage: key written")
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *LocalStore) Delete(key string) error {
	err := os.Remove(s.keyPath(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete key %s", key)
	}
	return nil
}

// keyPath maps a storage key to its backing file
func (s *LocalStore) keyPath(key string) string {
	// Keys are well-known identifiers; sanitize anyway so a stray key
	// cannot escape the base directory.
	key = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.basePath, key+".json")
}
