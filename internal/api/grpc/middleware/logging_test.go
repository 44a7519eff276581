package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/metrics"
	"github.com/dtroode/nox-iam/internal/testutil"
)

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    grpc.UnaryHandler
		wantStatus string
	}{
		{
			name: "success",
			handler: func(ctx context.Context, req any) (any, error) {
				return "ok", nil
			},
			wantStatus: codes.OK.String(),
		},
		{
			name: "status error keeps its code",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.Unauthenticated, "invalid token")
			},
			wantStatus: codes.Unauthenticated.String(),
		},
		{
			name: "plain error is reported as internal",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("connection reset")
			},
			wantStatus: codes.Internal.String(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, rec := testutil.MakeRecordingLogger()
			reg := prometheus.NewRegistry()
			lg := NewLogging(log, metrics.New(reg))
			info := &grpc.UnaryServerInfo{FullMethod: "/nox.iam.v1.Auth/Login"}

			_, _ = lg.HandleGRPC(context.Background(), nil, info, tt.handler)

			done, ok := rec.Find("gRPC request completed")
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, done["status"])
			assert.Equal(t, info.FullMethod, done["method"])
			assert.NotEmpty(t, done["request_id"])

			n, err := promtest.GatherAndCount(reg, "nox_iam_grpc_request_duration_seconds")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestLogging_PropagatesHandlerResult(t *testing.T) {
	t.Parallel()

	lg := NewLogging(testutil.MakeNoopLogger(), nil)
	info := &grpc.UnaryServerInfo{FullMethod: "/nox.iam.v1.Auth/Register"}

	resp, err := lg.HandleGRPC(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = lg.HandleGRPC(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, apperror.ErrEmailTaken
	})
	assert.ErrorIs(t, err, apperror.ErrEmailTaken)
}

func TestLogging_RequestID(t *testing.T) {
	t.Parallel()

	info := &grpc.UnaryServerInfo{FullMethod: "/nox.iam.v1.Auth/Refresh"}
	handler := func(ctx context.Context, req any) (any, error) { return nil, nil }

	t.Run("taken from metadata", func(t *testing.T) {
		t.Parallel()

		log, rec := testutil.MakeRecordingLogger()
		lg := NewLogging(log, nil)
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "req-42"))

		_, _ = lg.HandleGRPC(ctx, nil, info, handler)

		started, ok := rec.Find("gRPC request started")
		require.True(t, ok)
		assert.Equal(t, "req-42", started["request_id"])
	})

	t.Run("generated when missing", func(t *testing.T) {
		t.Parallel()

		log, rec := testutil.MakeRecordingLogger()
		lg := NewLogging(log, nil)

		_, _ = lg.HandleGRPC(context.Background(), nil, info, handler)

		started, ok := rec.Find("gRPC request started")
		require.True(t, ok)
		assert.Len(t, started["request_id"], 26)
	})
}
