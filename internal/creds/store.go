// Package creds persists user accounts and authenticates logins against
// the flat users table.
package creds

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/roach88/focustrack/internal/apperr"
	"github.com/roach88/focustrack/internal/table"
)

// Schema of the users table. The password column holds the hex SHA-256
// digest of the password, never the plaintext.
var columns = []table.Column{
	table.Col("username"),
	table.Col("password"),
	table.Col("email"),
}

// Store provides registration and authentication over the users table.
//
// Rows are append-only: accounts are never mutated or deleted.
// Thread-safety: all methods serialize through an internal mutex.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the users table at path.
// The file is created lazily on first registration.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// HashPassword returns the hex SHA-256 digest used for the password
// column. The digest is deterministic: authentication compares digests
// for exact equality.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register appends a new account row.
//
// Fails with CodeDuplicateUsername or CodeDuplicateEmail when the
// username or email is already registered; uniqueness is checked
// against the table as currently stored.
func (s *Store) Register(username, password, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := table.Read(s.path, columns)
	if err != nil {
		return fmt.Errorf("register %s: %w", username, err)
	}

	for _, row := range rows {
		if row["username"] == username {
			return apperr.NewDuplicateUsername(username)
		}
		if row["email"] == email {
			return apperr.NewDuplicateEmail(username)
		}
	}

	row := table.Row{
		"username": username,
		"password": HashPassword(password),
		"email":    email,
	}
	if err := table.Write(s.path, columns, append(rows, row)); err != nil {
		return apperr.NewStoreWrite(err)
	}
	return nil
}

// Authenticate reports whether a stored row matches both the username
// and the digest of password. No comparison is timing-safe; the store
// is local and single-user by design.
func (s *Store) Authenticate(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := table.Read(s.path, columns)
	if err != nil {
		return false, fmt.Errorf("authenticate %s: %w", username, err)
	}

	digest := HashPassword(password)
	for _, row := range rows {
		if row["username"] == username && row["password"] == digest {
			return true, nil
		}
	}
	return false, nil
}
