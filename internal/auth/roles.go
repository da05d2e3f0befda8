package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/fitness-service/pkg/util"
)

// Require returns a handler enforcing the declared policy for action. It must
// run after AuthMiddleware. Registering an action with no declared policy panics,
// so a route can never be left unguarded by omission.
func (g *Guard) Require(action Action) fiber.Handler {
	policy, ok := g.policies[action]
	if !ok {
		panic(fmt.Sprintf("auth: no policy declared for %s", action))
	}

	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		resourceID := ""
		if policy.Ownership != nil {
			resourceID = c.Params(policy.Ownership.Param)
		}

		decision, err := g.Authorize(c.UserContext(), principal, action, resourceID)
		if err != nil {
			return err
		}
		if decision.Allowed {
			return c.Next()
		}
		if decision.Reason == ReasonUnauthenticated {
			return apperrors.NewUnauthorized("authentication required")
		}
		return apperrors.NewForbidden("insufficient permissions")
	}
}
