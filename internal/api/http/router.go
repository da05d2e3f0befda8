package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fitness-service/internal/api/http/handlers"
	"github.com/spec-kit/fitness-service/internal/auth"
	"github.com/spec-kit/fitness-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Profile        *handlers.ProfileHandler
	Workouts       *handlers.WorkoutsHandler
	Posts          *handlers.PostsHandler
	Nutrition      *handlers.NutritionHandler
	AuthMiddleware *auth.AuthMiddleware
	Guard          *auth.Guard
	Metrics        *observability.Metrics
}

// guarded registers routes that each declare exactly one auth.Action.
type guarded struct {
	router fiber.Router
	authn  *auth.AuthMiddleware
	guard  *auth.Guard
}

// handle mounts handler behind the action's policy. Anonymous policies resolve
// the session optionally; all others require one before the guard runs.
func (g guarded) handle(method, path string, action auth.Action, handler fiber.Handler) {
	policy, ok := g.guard.Policy(action)
	if !ok {
		panic(fmt.Sprintf("route %s %s: no policy declared for %s", method, path, action))
	}
	session := g.authn.Handle
	if policy.Anonymous {
		session = g.authn.Optional
	}
	g.router.Add(method, path, session, g.guard.Require(action), handler)
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	r := guarded{router: app, authn: cfg.AuthMiddleware, guard: cfg.Guard}

	r.handle(fiber.MethodPost, "/auth/register", auth.ActionRegister, cfg.Session.Register)
	r.handle(fiber.MethodPost, "/auth/login", auth.ActionLogin, cfg.Session.Login)
	r.handle(fiber.MethodPost, "/auth/logout", auth.ActionLogout, cfg.Session.Logout)
	r.handle(fiber.MethodGet, "/me", auth.ActionProfileMe, cfg.Session.Me)

	r.handle(fiber.MethodGet, "/users/:id/profile", auth.ActionProfileRead, cfg.Profile.Get)
	r.handle(fiber.MethodPut, "/users/:id/profile", auth.ActionProfileUpdate, cfg.Profile.Update)

	r.handle(fiber.MethodGet, "/workouts", auth.ActionWorkoutList, cfg.Workouts.List)
	r.handle(fiber.MethodGet, "/workouts/:id", auth.ActionWorkoutRead, cfg.Workouts.Get)
	r.handle(fiber.MethodPost, "/workouts", auth.ActionWorkoutCreate, cfg.Workouts.Create)
	r.handle(fiber.MethodPut, "/workouts/:id", auth.ActionWorkoutUpdate, cfg.Workouts.Update)
	r.handle(fiber.MethodDelete, "/workouts/:id", auth.ActionWorkoutDelete, cfg.Workouts.Delete)

	r.handle(fiber.MethodGet, "/posts", auth.ActionPostList, cfg.Posts.List)
	r.handle(fiber.MethodGet, "/posts/:id", auth.ActionPostRead, cfg.Posts.Get)
	r.handle(fiber.MethodPost, "/posts", auth.ActionPostCreate, cfg.Posts.Create)
	r.handle(fiber.MethodPut, "/posts/:id", auth.ActionPostUpdate, cfg.Posts.Update)
	r.handle(fiber.MethodDelete, "/posts/:id", auth.ActionPostDelete, cfg.Posts.Delete)
	r.handle(fiber.MethodGet, "/posts/:id/comments", auth.ActionCommentList, cfg.Posts.ListComments)
	r.handle(fiber.MethodPost, "/posts/:id/comments", auth.ActionCommentCreate, cfg.Posts.AddComment)
	r.handle(fiber.MethodPost, "/posts/:id/likes", auth.ActionLikeToggle, cfg.Posts.ToggleLike)
	r.handle(fiber.MethodDelete, "/comments/:id", auth.ActionCommentDelete, cfg.Posts.DeleteComment)

	r.handle(fiber.MethodGet, "/nutrition-logs", auth.ActionNutritionList, cfg.Nutrition.List)
	r.handle(fiber.MethodPost, "/nutrition-logs", auth.ActionNutritionCreate, cfg.Nutrition.Create)
	r.handle(fiber.MethodPut, "/nutrition-logs/:id", auth.ActionNutritionUpdate, cfg.Nutrition.Update)
	r.handle(fiber.MethodDelete, "/nutrition-logs/:id", auth.ActionNutritionDelete, cfg.Nutrition.Delete)
}
