package auth

import "context"

// Recorder receives authentication and authorization outcomes for metrics.
type Recorder interface {
	RecordValidation(result string)
	RecordDecision(action string, allowed bool, reason string)
}

// Auditor is notified about rejected tokens and denied requests.
type Auditor interface {
	TokenRejected(ctx context.Context, kind ValidationKind, path string)
	AccessDenied(ctx context.Context, p *Principal, action Action, resourceID string, reason DenyReason)
}

type nopRecorder struct{}

func (nopRecorder) RecordValidation(string)             {}
func (nopRecorder) RecordDecision(string, bool, string) {}

type nopAuditor struct{}

func (nopAuditor) TokenRejected(context.Context, ValidationKind, string) {}

func (nopAuditor) AccessDenied(context.Context, *Principal, Action, string, DenyReason) {}
