package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	base.With("request_id", "01HZX").Info("Auth service: login succeeded", "user_id", "u1")

	out := buf.String()
	assert.Contains(t, out, "request_id=01HZX")
	assert.Contains(t, out, "user_id=u1")
	assert.Contains(t, out, `msg="Auth service: login succeeded"`)
}
