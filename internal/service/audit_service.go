package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/fitness-service/internal/auth"
	"github.com/spec-kit/fitness-service/internal/events"
	"github.com/spec-kit/fitness-service/internal/observability"
)

// AuditService writes security events to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service. Audit lines go to the security stream.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     observability.AuditLogger(logger),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventLoggedOut,
		events.EventTokenRejected,
		events.EventAccessDenied,
	} {
		a.dispatcher.Subscribe(t, a.record)
	}
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	}
	if event.Actor != nil {
		fields = append(fields, zap.String("user_id", event.Actor.UserID), zap.String("role", string(event.Actor.Role)))
	}
	a.logger.Info("security event", fields...)
	return nil
}

// AuditPublisher turns auth rejections and denials into events. It satisfies
// auth.Auditor.
type AuditPublisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditPublisher wires auth hooks to the dispatcher.
func NewAuditPublisher(dispatcher events.Dispatcher, logger *zap.Logger) *AuditPublisher {
	return &AuditPublisher{dispatcher: dispatcher, logger: logger}
}

// TokenRejected publishes a token_rejected event.
func (p *AuditPublisher) TokenRejected(ctx context.Context, kind auth.ValidationKind, path string) {
	p.publish(ctx, events.New(events.EventTokenRejected, nil, events.TokenRejectedPayload{Kind: string(kind), Path: path}))
}

// AccessDenied publishes an access_denied event.
func (p *AuditPublisher) AccessDenied(ctx context.Context, principal *auth.Principal, action auth.Action, resourceID string, reason auth.DenyReason) {
	var actor *events.Actor
	if principal != nil {
		actor = &events.Actor{UserID: principal.UserID, Role: principal.Role}
	}
	p.publish(ctx, events.New(events.EventAccessDenied, actor, events.AccessDeniedPayload{
		Action:     string(action),
		ResourceID: resourceID,
		Reason:     string(reason),
	}))
}

func (p *AuditPublisher) publish(ctx context.Context, event events.Event) {
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
