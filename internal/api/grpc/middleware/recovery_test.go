package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/nox-iam/internal/testutil"
)

func TestRecovery_HandlePanic(t *testing.T) {
	t.Parallel()

	r := NewRecovery(testutil.MakeNoopLogger())
	err := r.HandlePanic(context.Background(), "nil map write")

	st, ok := status.FromError(err)
	assert.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.NotContains(t, st.Message(), "nil map")
}
