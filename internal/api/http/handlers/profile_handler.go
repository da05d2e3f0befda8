package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/dto"
	"github.com/spec-kit/fitness-service/internal/service"
)

// ProfileHandler serves /users/:id/profile. Access is self-only.
type ProfileHandler struct {
	users *service.UserService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{users: userService}
}

// Get handles GET /users/:id/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Profile(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewUserResponse(user)))
}

// Update handles PUT /users/:id/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.UserContext(), c.Params("id"), service.ProfileInput{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewUserResponse(user)))
}
