package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/fitness-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventLoggedOut      EventType = "logged_out"
	EventTokenRejected  EventType = "token_rejected"
	EventAccessDenied   EventType = "access_denied"
)

// Actor identifies the principal behind an event, when one is known.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a security event emitted by the auth flow.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     *Actor    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor *Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginPayload payload.
type LoginPayload struct {
	Email string `json:"email"`
}

// LoginFailedPayload payload. Reason is internal and never shown to clients.
type LoginFailedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// LoggedOutPayload payload.
type LoggedOutPayload struct {
	TokenID string `json:"token_id"`
	Revoked bool   `json:"revoked"`
}

// TokenRejectedPayload payload.
type TokenRejectedPayload struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Action     string `json:"action"`
	ResourceID string `json:"resource_id,omitempty"`
	Reason     string `json:"reason"`
}
