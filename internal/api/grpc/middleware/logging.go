package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/nox-iam/internal/ids"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/metrics"
)

const requestIDHeader = "x-request-id"

// Logging is a unary interceptor that logs gRPC requests and observes their latency.
type Logging struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewLogging creates a new Logging middleware. m may be nil.
func NewLogging(logger *logger.Logger, m *metrics.Metrics) *Logging {
	return &Logging{logger: logger, metrics: m}
}

// HandleGRPC logs method name, duration and status for each unary request.
// The request id is taken from x-request-id or generated, and echoed back
// in the response header.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID := requestIDFrom(ctx)
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

	l.logger.Debug("gRPC request started",
		"method", info.FullMethod,
		"request_id", requestID)

	resp, err := handler(ctx, req)

	duration := time.Since(start)

	statusCode := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
		} else {
			statusCode = codes.Internal
		}
	}

	l.metrics.ObserveRequest(info.FullMethod, statusCode.String(), duration.Seconds())

	l.logger.Info("gRPC request completed",
		"method", info.FullMethod,
		"request_id", requestID,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String())

	return resp, err
}

func requestIDFrom(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(requestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return ids.New()
}
