package auth

import "github.com/spec-kit/fitness-service/internal/domain"

// Action names an endpoint operation in "resource:verb" form.
type Action string

const (
	ActionRegister Action = "auth:register"
	ActionLogin    Action = "auth:login"
	ActionLogout   Action = "auth:logout"

	ActionProfileMe     Action = "profile:me"
	ActionProfileRead   Action = "profile:read"
	ActionProfileUpdate Action = "profile:update"

	ActionWorkoutList   Action = "workout:list"
	ActionWorkoutRead   Action = "workout:read"
	ActionWorkoutCreate Action = "workout:create"
	ActionWorkoutUpdate Action = "workout:update"
	ActionWorkoutDelete Action = "workout:delete"

	ActionPostList   Action = "post:list"
	ActionPostRead   Action = "post:read"
	ActionPostCreate Action = "post:create"
	ActionPostUpdate Action = "post:update"
	ActionPostDelete Action = "post:delete"

	ActionCommentList   Action = "comment:list"
	ActionCommentCreate Action = "comment:create"
	ActionCommentDelete Action = "comment:delete"

	ActionLikeToggle Action = "like:toggle"

	ActionNutritionList   Action = "nutrition:list"
	ActionNutritionCreate Action = "nutrition:create"
	ActionNutritionUpdate Action = "nutrition:update"
	ActionNutritionDelete Action = "nutrition:delete"
)

// OwnershipRule requires the principal to own the targeted resource.
type OwnershipRule struct {
	Kind domain.ResourceKind
	// Param is the route parameter carrying the resource id.
	Param string
	// AdminOverride lets an Admin act on resources they do not own.
	AdminOverride bool
}

// Policy is the authorization declaration for one Action.
type Policy struct {
	Action Action
	// Anonymous endpoints need no principal at all.
	Anonymous bool
	// Roles lists the permitted roles; empty means any authenticated principal.
	Roles     []domain.Role
	Ownership *OwnershipRule
}

func anonymous(action Action) Policy {
	return Policy{Action: action, Anonymous: true}
}

func authenticated(action Action) Policy {
	return Policy{Action: action}
}

func owned(action Action, kind domain.ResourceKind, adminOverride bool) Policy {
	return Policy{
		Action:    action,
		Ownership: &OwnershipRule{Kind: kind, Param: "id", AdminOverride: adminOverride},
	}
}

// DefaultPolicies is the endpoint policy table.
//
// Workout and nutrition-log mutation require an exact owner match. Post and
// comment deletion are moderation actions, so Admin may act on any owner's.
func DefaultPolicies() []Policy {
	return []Policy{
		anonymous(ActionRegister),
		anonymous(ActionLogin),
		authenticated(ActionLogout),

		authenticated(ActionProfileMe),
		owned(ActionProfileRead, domain.ResourceUser, false),
		owned(ActionProfileUpdate, domain.ResourceUser, false),

		anonymous(ActionWorkoutList),
		anonymous(ActionWorkoutRead),
		{Action: ActionWorkoutCreate, Roles: []domain.Role{domain.RoleAdmin, domain.RoleCoach}},
		owned(ActionWorkoutUpdate, domain.ResourceWorkout, false),
		owned(ActionWorkoutDelete, domain.ResourceWorkout, false),

		anonymous(ActionPostList),
		anonymous(ActionPostRead),
		authenticated(ActionPostCreate),
		owned(ActionPostUpdate, domain.ResourcePost, false),
		owned(ActionPostDelete, domain.ResourcePost, true),

		anonymous(ActionCommentList),
		authenticated(ActionCommentCreate),
		owned(ActionCommentDelete, domain.ResourceComment, true),

		authenticated(ActionLikeToggle),

		authenticated(ActionNutritionList),
		authenticated(ActionNutritionCreate),
		owned(ActionNutritionUpdate, domain.ResourceNutritionLog, false),
		owned(ActionNutritionDelete, domain.ResourceNutritionLog, false),
	}
}
