package user

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used for new hashes unless configured.
const DefaultBcryptCost = 10

// errPasswordMismatch is returned by Hasher.Compare for a wrong password.
var errPasswordMismatch = errors.New("password mismatch")

// Hasher hashes and verifies raw passwords.
type Hasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// BcryptHasher hashes with bcrypt at Cost.
type BcryptHasher struct {
	Cost int
}

// Hash returns a salted bcrypt hash of raw.
func (h BcryptHasher) Hash(raw string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports errPasswordMismatch when raw does not match hash.
func (h BcryptHasher) Compare(hash, raw string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
