package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/fitness-service/internal/auth"
	"github.com/spec-kit/fitness-service/internal/config"
	"github.com/spec-kit/fitness-service/internal/domain"
	"github.com/spec-kit/fitness-service/internal/events"
	"github.com/spec-kit/fitness-service/internal/repository"
)

// ErrEmailTaken is returned when registering an address that already has an account.
var ErrEmailTaken = errors.New("email already registered")

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	verifier   *auth.PasswordVerifier
	denylist   auth.Denylist
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Verifier *auth.PasswordVerifier
	// Denylist is nil unless revocation is enabled.
	Denylist   auth.Denylist
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		verifier:   deps.Verifier,
		denylist:   deps.Denylist,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager backing issued sessions.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a User-role account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, auth.Token, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, auth.Token{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.Token{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, auth.Token{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, auth.Token{}, ErrEmailTaken
		}
		return nil, auth.Token{}, err
	}

	token, err := s.tokens.Issue(principalOf(user))
	if err != nil {
		return nil, auth.Token{}, err
	}
	s.publish(ctx, events.New(events.EventLoginSucceeded, actorOf(user), events.LoginPayload{Email: user.Email}))
	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown accounts and
// wrong passwords both yield auth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, auth.Token, error) {
	email = normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.Token{}, err
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if err := s.verifier.Verify(hash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			reason := "wrong_password"
			if user == nil {
				reason = "unknown_email"
			}
			s.publish(ctx, events.New(events.EventLoginFailed, nil, events.LoginFailedPayload{Email: email, Reason: reason}))
		}
		return nil, auth.Token{}, err
	}

	token, err := s.tokens.Issue(principalOf(user))
	if err != nil {
		return nil, auth.Token{}, err
	}
	s.publish(ctx, events.New(events.EventLoginSucceeded, actorOf(user), events.LoginPayload{Email: user.Email}))
	return user, token, nil
}

// Logout ends the session. The caller clears the cookie; the token itself is
// only invalidated server-side when a denylist is configured.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal, token auth.Token) error {
	revoked := false
	if s.denylist != nil && token.ID != "" {
		if err := s.denylist.Revoke(ctx, token.ID, token.ExpiresAt); err != nil {
			return err
		}
		revoked = true
	}

	var actor *events.Actor
	if principal != nil {
		actor = &events.Actor{UserID: principal.UserID, Role: principal.Role}
	}
	s.publish(ctx, events.New(events.EventLoggedOut, actor, events.LoggedOutPayload{TokenID: token.ID, Revoked: revoked}))
	return nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func principalOf(user *domain.User) auth.Principal {
	return auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}
}

func actorOf(user *domain.User) *events.Actor {
	return &events.Actor{UserID: user.ID, Role: user.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
