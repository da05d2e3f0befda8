package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/fitness-service/pkg/util"
)

const (
	principalKey = "auth_principal"
	tokenKey     = "auth_token"
)

// Denylist records tokens revoked before their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware resolves the session cookie into a Principal once per request.
type AuthMiddleware struct {
	tokens    *TokenManager
	transport *CookieTransport
	denylist  Denylist
	logger    *zap.Logger
	recorder  Recorder
	auditor   Auditor
}

// MiddlewareOption customises an AuthMiddleware.
type MiddlewareOption func(*AuthMiddleware)

// WithDenylist enables revocation checks. Without it tokens are valid until expiry.
func WithDenylist(d Denylist) MiddlewareOption {
	return func(m *AuthMiddleware) { m.denylist = d }
}

// WithLogger sets the logger used for rejected tokens.
func WithLogger(logger *zap.Logger) MiddlewareOption {
	return func(m *AuthMiddleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) MiddlewareOption {
	return func(m *AuthMiddleware) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithAuditor sets the sink notified about rejected tokens.
func WithAuditor(a Auditor) MiddlewareOption {
	return func(m *AuthMiddleware) {
		if a != nil {
			m.auditor = a
		}
	}
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, transport *CookieTransport, opts ...MiddlewareOption) *AuthMiddleware {
	m := &AuthMiddleware{
		tokens:    tokens,
		transport: transport,
		logger:    zap.NewNop(),
		recorder:  nopRecorder{},
		auditor:   nopAuditor{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle requires a valid session cookie. Any validation failure is a 401.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := m.resolve(c)
	if err != nil {
		if KindOf(err) == "" {
			return apperrors.NewInternalError(err)
		}
		m.reject(c, err)
		return apperrors.NewUnauthorized("authentication required")
	}
	m.attach(c, token)
	return c.Next()
}

// Optional resolves a principal when a usable cookie is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if m.transport.Extract(c) == "" {
		return c.Next()
	}
	token, err := m.resolve(c)
	if err != nil {
		if KindOf(err) == "" {
			return apperrors.NewInternalError(err)
		}
		m.reject(c, err)
		return c.Next()
	}
	m.attach(c, token)
	return c.Next()
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (Token, error) {
	token, err := m.tokens.Inspect(m.transport.Extract(c))
	if err != nil {
		return Token{}, err
	}
	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(c.UserContext(), token.ID)
		if err != nil {
			return Token{}, err
		}
		if revoked {
			return Token{}, newValidationError(KindRevoked, nil)
		}
	}
	return token, nil
}

func (m *AuthMiddleware) attach(c *fiber.Ctx, token Token) {
	principal := token.Principal
	m.recorder.RecordValidation("valid")
	c.Locals(principalKey, &principal)
	c.Locals(tokenKey, token)
	c.SetUserContext(ContextWithPrincipal(c.UserContext(), &principal))
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, err error) {
	kind := KindOf(err)
	m.recorder.RecordValidation(string(kind))
	m.logger.Info("token rejected",
		zap.String("kind", string(kind)),
		zap.String("path", c.Path()),
		zap.Error(err))
	m.auditor.TokenRejected(c.UserContext(), kind, c.Path())
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}

// TokenFromContext retrieves the validated token backing the request.
func TokenFromContext(c *fiber.Ctx) (Token, bool) {
	token, ok := c.Locals(tokenKey).(Token)
	return token, ok
}
