package auth

import (
	"errors"
	"fmt"
)

// ValidationKind distinguishes why a session token was rejected.
type ValidationKind string

const (
	KindMissingToken     ValidationKind = "missing_token"
	KindMalformedToken   ValidationKind = "malformed_token"
	KindSignatureInvalid ValidationKind = "signature_invalid"
	KindExpired          ValidationKind = "expired"
	KindRevoked          ValidationKind = "revoked"
)

// Sentinels usable with errors.Is against a *ValidationError.
var (
	ErrMissingToken     = &ValidationError{Kind: KindMissingToken}
	ErrMalformedToken   = &ValidationError{Kind: KindMalformedToken}
	ErrSignatureInvalid = &ValidationError{Kind: KindSignatureInvalid}
	ErrExpired          = &ValidationError{Kind: KindExpired}
	ErrRevoked          = &ValidationError{Kind: KindRevoked}
)

// ErrInvalidCredentials is returned by the password verifier on any mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError is returned by TokenManager.Validate.
type ValidationError struct {
	Kind ValidationKind
	Err  error
}

func newValidationError(kind ValidationKind, err error) *ValidationError {
	return &ValidationError{Kind: kind, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token rejected (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("token rejected (%s)", e.Kind)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can compare against the sentinels.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ValidationKind from err, or "" if err is not a validation error.
func KindOf(err error) ValidationKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return ""
}
