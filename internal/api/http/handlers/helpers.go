package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/dto"
	"github.com/spec-kit/fitness-service/internal/auth"
	"github.com/spec-kit/fitness-service/internal/repository"
	apperrors "github.com/spec-kit/fitness-service/pkg/util"
)

func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}

func pageFrom(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}

// currentPrincipal is for routes behind AuthMiddleware.Handle, where a
// principal is always present.
func currentPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func data(v any) fiber.Map {
	return fiber.Map{"data": v}
}
