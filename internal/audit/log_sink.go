package audit

import (
	"context"
	"time"

	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

// LogSink writes entries to the application log.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(logger *logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(ctx context.Context, e model.AuditEntry) {
	args := []any{
		"audit_id", e.ID,
		"action", e.Action,
		"at", e.At.Format(time.RFC3339Nano),
	}
	if e.ActorID != nil {
		args = append(args, "actor_id", e.ActorID.String())
	}
	if e.OrganizationID != nil {
		args = append(args, "organization_id", e.OrganizationID.String())
	}
	if e.IPAddress != "" {
		args = append(args, "ip", e.IPAddress)
	}
	for k, v := range e.Metadata {
		args = append(args, "meta."+k, v)
	}
	s.logger.InfoContext(ctx, "Audit", args...)
}
