package logging

import (
	"context"

	"go.uber.org/zap"
)

// AuditEvent describes a state-changing action taken on behalf of an installation.
type AuditEvent struct {
	Action       string // complete_onboarding, update, logout
	Installation string
	Resource     string // session, profile
	Result       string // success or failure
	Details      map[string]any
}

// LogAuditEvent writes e at info level using the request-aware logger.
func LogAuditEvent(ctx context.Context, e AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", e.Action),
		zap.String("audit.installation_id", e.Installation),
		zap.String("audit.resource_type", e.Resource),
		zap.String("audit.result", e.Result),
	}
	if id := TraceIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("audit.correlation_id", id))
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", e.Details))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}
