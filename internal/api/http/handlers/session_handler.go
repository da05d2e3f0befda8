package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/dto"
	"github.com/spec-kit/fitness-service/internal/auth"
	"github.com/spec-kit/fitness-service/internal/service"
	apperrors "github.com/spec-kit/fitness-service/pkg/util"
)

// SessionHandler exposes register, login, logout and /me.
type SessionHandler struct {
	auth      *service.AuthService
	users     *service.UserService
	transport *auth.CookieTransport
}

// NewSessionHandler constructs handler.
func NewSessionHandler(authService *service.AuthService, userService *service.UserService, transport *auth.CookieTransport) *SessionHandler {
	return &SessionHandler{auth: authService, users: userService, transport: transport}
}

// Register handles POST /auth/register.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return err
	}

	h.transport.Attach(c, token)
	return c.Status(http.StatusCreated).JSON(data(dto.SessionResponse{
		User:      dto.NewUserResponse(user),
		ExpiresAt: token.ExpiresAt,
	}))
}

// Login handles POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid email or password")
		}
		return err
	}

	h.transport.Attach(c, token)
	return c.JSON(data(dto.SessionResponse{
		User:      dto.NewUserResponse(user),
		ExpiresAt: token.ExpiresAt,
	}))
}

// Logout handles POST /auth/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	token, _ := auth.TokenFromContext(c)
	if err := h.auth.Logout(c.UserContext(), principal, token); err != nil {
		return err
	}
	h.transport.Clear(c)
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /me.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.users.Profile(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewUserResponse(user)))
}
