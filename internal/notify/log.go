// Package notify delivers outbound user notifications.
package notify

import (
	"context"

	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log instead of sending email.
// Codes are logged at debug level only.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, msg model.Notification) error {
	args := []any{"kind", string(msg.Kind), "email", msg.Email}
	if msg.Organization != "" {
		args = append(args, "organization", msg.Organization)
	}
	n.logger.InfoContext(ctx, "Notifier: message queued", args...)
	if msg.Code != "" {
		n.logger.DebugContext(ctx, "Notifier: message code",
			"kind", string(msg.Kind),
			"email", msg.Email,
			"code", msg.Code)
	}
	return nil
}
