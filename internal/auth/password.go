package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// PasswordVerifier checks login credentials in constant time relative to
// whether the account exists.
type PasswordVerifier struct {
	dummyHash string
}

// NewPasswordVerifier precomputes the hash compared against for unknown accounts.
func NewPasswordVerifier(cost int) (*PasswordVerifier, error) {
	dummy, err := HashPassword("unknown-account-placeholder", cost)
	if err != nil {
		return nil, err
	}
	return &PasswordVerifier{dummyHash: dummy}, nil
}

// Verify compares plain against hash. An empty hash means the account was not
// found; a comparison still runs so both paths cost the same.
func (v *PasswordVerifier) Verify(hash, plain string) error {
	if hash == "" {
		_ = ComparePassword(v.dummyHash, plain)
		return ErrInvalidCredentials
	}
	if err := ComparePassword(hash, plain); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}
