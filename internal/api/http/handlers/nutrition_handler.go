package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/dto"
	"github.com/spec-kit/fitness-service/internal/service"
)

// NutritionHandler serves private nutrition logs.
type NutritionHandler struct {
	service *service.NutritionService
}

// NewNutritionHandler constructs handler.
func NewNutritionHandler(nutritionService *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{service: nutritionService}
}

// List GET /nutrition-logs. Only the caller's own entries are returned.
func (h *NutritionHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	logs, err := h.service.List(c.UserContext(), principal.UserID, pageFrom(c))
	if err != nil {
		return err
	}
	out := make([]dto.NutritionResponse, 0, len(logs))
	for i := range logs {
		out = append(out, dto.NewNutritionResponse(&logs[i]))
	}
	return c.JSON(data(out))
}

// Create POST /nutrition-logs.
func (h *NutritionHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.NutritionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	log, err := h.service.Create(c.UserContext(), principal.UserID, nutritionInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewNutritionResponse(log)))
}

// Update PUT /nutrition-logs/:id.
func (h *NutritionHandler) Update(c *fiber.Ctx) error {
	var req dto.NutritionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	log, err := h.service.Update(c.UserContext(), c.Params("id"), nutritionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewNutritionResponse(log)))
}

// Delete DELETE /nutrition-logs/:id.
func (h *NutritionHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func nutritionInput(req dto.NutritionRequest) service.NutritionInput {
	input := service.NutritionInput{
		Meal:     req.Meal,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
	}
	if req.LoggedAt != nil {
		input.LoggedAt = *req.LoggedAt
	}
	return input
}
