package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

func TestLogNotifier_Send(t *testing.T) {
	var buf bytes.Buffer
	lg := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))}
	n := NewLogNotifier(lg)

	err := n.Send(context.Background(), model.Notification{
		Kind:  model.NotificationVerifyEmail,
		Email: "a@b.c",
		Code:  "123456",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "kind=verify_email")
	assert.Contains(t, out, "email=a@b.c")
	assert.NotContains(t, out, "123456", "codes stay out of info logs")
}

func TestLogNotifier_SendInvitation(t *testing.T) {
	var buf bytes.Buffer
	lg := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))}
	n := NewLogNotifier(lg)

	err := n.Send(context.Background(), model.Notification{
		Kind:         model.NotificationInvitation,
		Email:        "carol@example.com",
		Code:         "invitation-token",
		Organization: "Acme",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "kind=organization_invitation")
	assert.Contains(t, out, "organization=Acme")
	assert.NotContains(t, out, "invitation-token")
}
