package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/fitness-service/pkg/util"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
}
