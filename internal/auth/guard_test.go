package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fitness-service/internal/domain"
)

var errNoResource = errors.New("resource not found")

type fakeOwners map[domain.ResourceKind]map[string]string

func (f fakeOwners) OwnerOf(_ context.Context, kind domain.ResourceKind, id string) (string, error) {
	owner, ok := f[kind][id]
	if !ok {
		return "", errNoResource
	}
	return owner, nil
}

type countingRecorder struct {
	allowed, denied int
	validations     map[string]int
}

func (r *countingRecorder) RecordValidation(result string) {
	if r.validations == nil {
		r.validations = map[string]int{}
	}
	r.validations[result]++
}

func (r *countingRecorder) RecordDecision(_ string, allowed bool, _ string) {
	if allowed {
		r.allowed++
		return
	}
	r.denied++
}

var (
	alice = &Principal{UserID: "alice", Email: "alice@fit.test", Role: domain.RoleCoach}
	bob   = &Principal{UserID: "bob", Email: "bob@fit.test", Role: domain.RoleUser}
	root  = &Principal{UserID: "root", Email: "root@fit.test", Role: domain.RoleAdmin}
)

func testOwners() fakeOwners {
	return fakeOwners{
		domain.ResourceWorkout:      {"w-alice": "alice", "w-bob": "bob"},
		domain.ResourceComment:      {"c-bob": "bob"},
		domain.ResourcePost:         {"p-bob": "bob"},
		domain.ResourceNutritionLog: {"n-bob": "bob"},
		domain.ResourceUser:         {"alice": "alice", "bob": "bob", "root": "root"},
	}
}

func newTestGuard(t *testing.T, opts ...GuardOption) *Guard {
	t.Helper()
	g, err := NewGuard(DefaultPolicies(), testOwners(), opts...)
	require.NoError(t, err)
	return g
}

func TestGuardAuthorize(t *testing.T) {
	g := newTestGuard(t)

	tests := []struct {
		name      string
		principal *Principal
		action    Action
		resource  string
		allowed   bool
		reason    DenyReason
	}{
		{name: "user cannot create workout", principal: bob, action: ActionWorkoutCreate, reason: ReasonRole},
		{name: "coach creates workout", principal: alice, action: ActionWorkoutCreate, allowed: true},
		{name: "admin creates workout", principal: root, action: ActionWorkoutCreate, allowed: true},
		{name: "anonymous cannot create workout", action: ActionWorkoutCreate, reason: ReasonUnauthenticated},

		{name: "owner updates own workout", principal: alice, action: ActionWorkoutUpdate, resource: "w-alice", allowed: true},
		{name: "other coach cannot update workout", principal: alice, action: ActionWorkoutUpdate, resource: "w-bob", reason: ReasonOwnership},
		{name: "owner deletes own workout", principal: bob, action: ActionWorkoutDelete, resource: "w-bob", allowed: true},
		{name: "non owner cannot delete workout", principal: bob, action: ActionWorkoutDelete, resource: "w-alice", reason: ReasonOwnership},
		{name: "admin cannot update others workout", principal: root, action: ActionWorkoutUpdate, resource: "w-bob", reason: ReasonOwnership},
		{name: "admin cannot delete others workout", principal: root, action: ActionWorkoutDelete, resource: "w-bob", reason: ReasonOwnership},

		{name: "owner deletes comment", principal: bob, action: ActionCommentDelete, resource: "c-bob", allowed: true},
		{name: "admin deletes others comment", principal: root, action: ActionCommentDelete, resource: "c-bob", allowed: true},
		{name: "coach cannot delete others comment", principal: alice, action: ActionCommentDelete, resource: "c-bob", reason: ReasonOwnership},

		{name: "admin deletes others post", principal: root, action: ActionPostDelete, resource: "p-bob", allowed: true},
		{name: "admin cannot edit others post", principal: root, action: ActionPostUpdate, resource: "p-bob", reason: ReasonOwnership},
		{name: "admin cannot edit others nutrition log", principal: root, action: ActionNutritionUpdate, resource: "n-bob", reason: ReasonOwnership},

		{name: "self profile", principal: bob, action: ActionProfileRead, resource: "bob", allowed: true},
		{name: "other profile", principal: bob, action: ActionProfileRead, resource: "alice", reason: ReasonOwnership},
		{name: "admin reads other profile", principal: root, action: ActionProfileRead, resource: "bob", reason: ReasonOwnership},
		{name: "unknown profile denies like a foreign one", principal: bob, action: ActionProfileRead, resource: "ghost", reason: ReasonOwnership},
		{name: "unknown profile update", principal: bob, action: ActionProfileUpdate, resource: "ghost", reason: ReasonOwnership},

		{name: "any role comments", principal: bob, action: ActionCommentCreate, allowed: true},
		{name: "any role toggles like", principal: alice, action: ActionLikeToggle, allowed: true},
		{name: "anonymous cannot like", action: ActionLikeToggle, reason: ReasonUnauthenticated},
		{name: "anonymous lists workouts", action: ActionWorkoutList, allowed: true},
		{name: "anonymous reads post", action: ActionPostRead, allowed: true},
		{name: "undeclared action", principal: root, action: Action("workout:archive"), reason: ReasonNoPolicy},
		{name: "ownership without resource id", principal: bob, action: ActionWorkoutDelete, reason: ReasonOwnership},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := g.Authorize(context.Background(), tt.principal, tt.action, tt.resource)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestGuardPropagatesLookupErrors(t *testing.T) {
	g := newTestGuard(t)

	_, err := g.Authorize(context.Background(), bob, ActionWorkoutDelete, "missing")
	assert.ErrorIs(t, err, errNoResource)
}

func TestGuardRoleCheckPrecedesOwnership(t *testing.T) {
	g, err := NewGuard([]Policy{{
		Action:    "workout:feature",
		Roles:     []domain.Role{domain.RoleAdmin},
		Ownership: &OwnershipRule{Kind: domain.ResourceWorkout, Param: "id"},
	}}, testOwners())
	require.NoError(t, err)

	decision, err := g.Authorize(context.Background(), bob, "workout:feature", "w-bob")
	require.NoError(t, err)
	assert.Equal(t, ReasonRole, decision.Reason)
}

func TestNewGuardValidatesPolicies(t *testing.T) {
	_, err := NewGuard([]Policy{anonymous(ActionLogin), anonymous(ActionLogin)}, nil)
	assert.Error(t, err)

	_, err = NewGuard([]Policy{owned(ActionWorkoutDelete, domain.ResourceWorkout, false)}, nil)
	assert.Error(t, err)
}

func TestDefaultPoliciesDeclareEveryAction(t *testing.T) {
	seen := map[Action]bool{}
	for _, p := range DefaultPolicies() {
		assert.False(t, seen[p.Action], "duplicate %s", p.Action)
		seen[p.Action] = true
		if p.Anonymous {
			assert.Empty(t, p.Roles, "%s is anonymous but lists roles", p.Action)
			assert.Nil(t, p.Ownership, "%s is anonymous but has an ownership rule", p.Action)
		}
	}
}

func TestGuardRecordsDecisions(t *testing.T) {
	rec := &countingRecorder{}
	g := newTestGuard(t, WithGuardRecorder(rec))

	_, err := g.Authorize(context.Background(), alice, ActionWorkoutCreate, "")
	require.NoError(t, err)
	_, err = g.Authorize(context.Background(), bob, ActionWorkoutCreate, "")
	require.NoError(t, err)

	assert.Equal(t, 1, rec.allowed)
	assert.Equal(t, 1, rec.denied)
}

func TestGuardRequire(t *testing.T) {
	g := newTestGuard(t)

	withPrincipal := func(p *Principal) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if p != nil {
				c.Locals(principalKey, p)
			}
			return c.Next()
		}
	}

	mutated := false
	tests := []struct {
		name      string
		principal *Principal
		method    string
		path      string
		status    int
	}{
		{name: "owner deletes", principal: bob, method: http.MethodDelete, path: "/workouts/w-bob", status: http.StatusNoContent},
		{name: "admin forbidden on workout", principal: root, method: http.MethodDelete, path: "/workouts/w-bob", status: http.StatusForbidden},
		{name: "anonymous unauthorized", method: http.MethodDelete, path: "/workouts/w-bob", status: http.StatusUnauthorized},
		{name: "user cannot create", principal: bob, method: http.MethodPost, path: "/workouts", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated = false
			app := newTestApp()
			app.Use(withPrincipal(tt.principal))
			app.Post("/workouts", g.Require(ActionWorkoutCreate), func(c *fiber.Ctx) error {
				mutated = true
				return c.SendStatus(http.StatusCreated)
			})
			app.Delete("/workouts/:id", g.Require(ActionWorkoutDelete), func(c *fiber.Ctx) error {
				mutated = true
				return c.SendStatus(http.StatusNoContent)
			})

			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, resp.StatusCode < 300, mutated, "handler must run only when allowed")
		})
	}
}

func TestGuardRequirePanicsOnUndeclaredAction(t *testing.T) {
	g := newTestGuard(t)
	assert.Panics(t, func() { g.Require(Action("workout:archive")) })
}
