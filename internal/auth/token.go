package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/fitness-service/internal/domain"
)

var (
	ErrNoSecret   = errors.New("auth: signing secret is empty")
	ErrInvalidTTL = errors.New("auth: token ttl must be positive")
)

// TokenManager issues and validates HS256 session tokens.
// It holds no mutable state after construction and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Option customises a TokenManager.
type Option func(*TokenManager)

// WithClock overrides the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. An empty secret is a configuration error.
func NewTokenManager(secret string, ttl time.Duration, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	tm.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(tm.now),
	)
	return tm, nil
}

// TTL returns the lifetime applied to issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes the JWT payload. sub, email and role are a stable wire contract.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Token is an issued, signed session token.
type Token struct {
	ID        string
	Raw       string
	Principal Principal
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issue signs a new token for p. Every call yields a distinct token.
func (tm *TokenManager) Issue(p Principal) (Token, error) {
	if p.UserID == "" {
		return Token{}, errors.New("auth: principal has no user id")
	}
	if !p.Role.Valid() {
		return Token{}, fmt.Errorf("auth: principal has invalid role %q", p.Role)
	}

	now := tm.now()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(tm.ttl))
	claims := &Claims{
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.UserID,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return Token{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return Token{
		ID:        claims.ID,
		Raw:       raw,
		Principal: p,
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// Validate verifies signature and expiry and returns the embedded principal.
// Errors are always *ValidationError.
func (tm *TokenManager) Validate(raw string) (Principal, error) {
	_, claims, err := tm.parse(raw)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

// Inspect validates raw like Validate and also returns the token metadata.
func (tm *TokenManager) Inspect(raw string) (Token, error) {
	raw, claims, err := tm.parse(raw)
	if err != nil {
		return Token{}, err
	}
	token := Token{
		ID:        claims.ID,
		Raw:       raw,
		Principal: Principal{UserID: claims.Subject, Email: claims.Email, Role: claims.Role},
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		token.IssuedAt = claims.IssuedAt.Time
	}
	return token, nil
}

func (tm *TokenManager) parse(raw string) (string, *Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, newValidationError(KindMissingToken, nil)
	}

	claims := &Claims{}
	parsed, err := tm.parser.ParseWithClaims(raw, claims, tm.keyFunc)
	if err != nil {
		return "", nil, classify(raw, err)
	}
	if !parsed.Valid {
		return "", nil, newValidationError(KindMalformedToken, errors.New("token not valid"))
	}
	if claims.Subject == "" {
		return "", nil, newValidationError(KindMalformedToken, errors.New("missing sub claim"))
	}
	if !claims.Role.Valid() {
		return "", nil, newValidationError(KindMalformedToken, fmt.Errorf("unknown role %q", claims.Role))
	}
	return raw, claims, nil
}

func (tm *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return tm.secret, nil
}

// classify maps jwt parser errors onto validation kinds. Signature problems
// are checked before claims, so a tampered expired token reports signature_invalid.
func classify(raw string, err error) *ValidationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newValidationError(KindExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return newValidationError(KindSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenMalformed) && envelopeIntact(raw):
		// header and payload decode, so only the signature segment is bad
		return newValidationError(KindSignatureInvalid, err)
	default:
		return newValidationError(KindMalformedToken, err)
	}
}

// envelopeIntact reports whether the header and payload segments decode.
// Everything after the second dot is treated as the signature, so a stray dot
// inside it still counts as a signature problem.
func envelopeIntact(raw string) bool {
	parts := strings.SplitN(raw, ".", 3)
	if len(parts) != 3 {
		return false
	}
	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	var h map[string]any
	if err := json.Unmarshal(header, &h); err != nil {
		return false
	}
	var c Claims
	return json.Unmarshal(payload, &c) == nil
}
