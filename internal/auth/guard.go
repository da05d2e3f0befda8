package auth

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"

	"github.com/spec-kit/fitness-service/internal/domain"
)

//go:embed model.conf
var roleModel string

const anyRole = "*"

// OwnershipResolver looks up the owning user of a resource in the business store.
type OwnershipResolver interface {
	OwnerOf(ctx context.Context, kind domain.ResourceKind, resourceID string) (string, error)
}

// DenyReason explains a denied Decision.
type DenyReason string

const (
	ReasonUnauthenticated DenyReason = "unauthenticated"
	ReasonRole            DenyReason = "role"
	ReasonOwnership       DenyReason = "ownership"
	ReasonNoPolicy        DenyReason = "no_policy"
)

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason DenyReason) Decision { return Decision{Reason: reason} }

// Guard evaluates role and ownership policies. Role rules live in a casbin
// enforcer loaded once at construction; ownership is checked per request.
type Guard struct {
	policies map[Action]Policy
	enforcer *casbin.SyncedEnforcer
	owners   OwnershipResolver
	logger   *zap.Logger
	recorder Recorder
	auditor  Auditor
}

// GuardOption customises a Guard.
type GuardOption func(*Guard)

// WithGuardLogger sets the logger used for denials.
func WithGuardLogger(logger *zap.Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGuardRecorder sets the metrics sink for decisions.
func WithGuardRecorder(r Recorder) GuardOption {
	return func(g *Guard) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithGuardAuditor sets the sink notified about denials.
func WithGuardAuditor(a Auditor) GuardOption {
	return func(g *Guard) {
		if a != nil {
			g.auditor = a
		}
	}
}

// NewGuard builds a guard for the declared policies.
func NewGuard(policies []Policy, owners OwnershipResolver, opts ...GuardOption) (*Guard, error) {
	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("parse role model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create role enforcer: %w", err)
	}

	g := &Guard{
		policies: make(map[Action]Policy, len(policies)),
		enforcer: enforcer,
		owners:   owners,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		auditor:  nopAuditor{},
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, p := range policies {
		if _, dup := g.policies[p.Action]; dup {
			return nil, fmt.Errorf("duplicate policy for %s", p.Action)
		}
		if p.Ownership != nil && owners == nil {
			return nil, fmt.Errorf("policy %s needs an ownership resolver", p.Action)
		}
		g.policies[p.Action] = p
		if p.Anonymous {
			continue
		}
		if len(p.Roles) == 0 {
			if _, err := enforcer.AddPolicy(anyRole, string(p.Action)); err != nil {
				return nil, fmt.Errorf("load role rule for %s: %w", p.Action, err)
			}
			continue
		}
		for _, role := range p.Roles {
			if _, err := enforcer.AddPolicy(string(role), string(p.Action)); err != nil {
				return nil, fmt.Errorf("load role rule for %s: %w", p.Action, err)
			}
		}
	}
	return g, nil
}

// Policy returns the declared policy for action.
func (g *Guard) Policy(action Action) (Policy, bool) {
	p, ok := g.policies[action]
	return p, ok
}

// Authorize decides whether p may perform action on resourceID. resourceID is
// ignored unless the policy carries an ownership rule. A non-nil error means
// the ownership lookup failed and no decision was reached.
func (g *Guard) Authorize(ctx context.Context, p *Principal, action Action, resourceID string) (Decision, error) {
	decision, err := g.decide(ctx, p, action, resourceID)
	if err != nil {
		return Decision{}, err
	}

	g.recorder.RecordDecision(string(action), decision.Allowed, string(decision.Reason))
	if !decision.Allowed {
		fields := []zap.Field{
			zap.String("action", string(action)),
			zap.String("reason", string(decision.Reason)),
			zap.String("resource_id", resourceID),
		}
		if p != nil {
			fields = append(fields, zap.String("user_id", p.UserID), zap.String("role", string(p.Role)))
		}
		g.logger.Info("access denied", fields...)
		g.auditor.AccessDenied(ctx, p, action, resourceID, decision.Reason)
	}
	return decision, nil
}

func (g *Guard) decide(ctx context.Context, p *Principal, action Action, resourceID string) (Decision, error) {
	policy, ok := g.policies[action]
	if !ok {
		return deny(ReasonNoPolicy), nil
	}
	if policy.Anonymous {
		return allow(), nil
	}
	if p == nil {
		return deny(ReasonUnauthenticated), nil
	}

	permitted, err := g.enforcer.Enforce(string(p.Role), string(action))
	if err != nil {
		return Decision{}, fmt.Errorf("evaluate role rule for %s: %w", action, err)
	}
	if !permitted {
		return deny(ReasonRole), nil
	}

	rule := policy.Ownership
	if rule == nil {
		return allow(), nil
	}
	if resourceID == "" {
		return deny(ReasonOwnership), nil
	}
	owner, err := g.ownerOf(ctx, rule.Kind, resourceID)
	if err != nil {
		return Decision{}, err
	}
	if owner == p.UserID {
		return allow(), nil
	}
	if rule.AdminOverride && p.IsAdmin() {
		return allow(), nil
	}
	return deny(ReasonOwnership), nil
}

// ownerOf resolves the owning user id. A user record is owned by itself, so
// profile ids are compared without a lookup and unknown ids deny like any
// other foreign id.
func (g *Guard) ownerOf(ctx context.Context, kind domain.ResourceKind, resourceID string) (string, error) {
	if kind == domain.ResourceUser {
		return resourceID, nil
	}
	return g.owners.OwnerOf(ctx, kind, resourceID)
}
