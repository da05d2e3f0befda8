package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/dto"
	"github.com/spec-kit/fitness-service/internal/service"
)

// WorkoutsHandler manages workout endpoints.
type WorkoutsHandler struct {
	service *service.WorkoutService
}

// NewWorkoutsHandler constructs handler.
func NewWorkoutsHandler(workoutService *service.WorkoutService) *WorkoutsHandler {
	return &WorkoutsHandler{service: workoutService}
}

// List GET /workouts.
func (h *WorkoutsHandler) List(c *fiber.Ctx) error {
	workouts, err := h.service.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return err
	}
	out := make([]dto.WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		out = append(out, dto.NewWorkoutResponse(&workouts[i]))
	}
	return c.JSON(data(out))
}

// Get GET /workouts/:id.
func (h *WorkoutsHandler) Get(c *fiber.Ctx) error {
	workout, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewWorkoutResponse(workout)))
}

// Create POST /workouts.
func (h *WorkoutsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.WorkoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	workout, err := h.service.Create(c.UserContext(), principal.UserID, workoutInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewWorkoutResponse(workout)))
}

// Update PUT /workouts/:id.
func (h *WorkoutsHandler) Update(c *fiber.Ctx) error {
	var req dto.WorkoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	workout, err := h.service.Update(c.UserContext(), c.Params("id"), workoutInput(req))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewWorkoutResponse(workout)))
}

// Delete DELETE /workouts/:id.
func (h *WorkoutsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func workoutInput(req dto.WorkoutRequest) service.WorkoutInput {
	return service.WorkoutInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
	}
}
