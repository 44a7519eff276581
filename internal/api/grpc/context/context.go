package context

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.ContextManager = (*Manager)(nil)

const (
	forwardedForKey = "x-forwarded-for"
	userAgentKey    = "user-agent"
)

type actorKey struct{}

// Manager stores the authenticated actor in a request context.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetActorToContext returns a context carrying the actor. Only the
// authentication interceptor sets it, so clients cannot inject an identity
// through metadata.
func (m *Manager) SetActorToContext(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActorFromContext returns the actor set by the authentication interceptor.
func (m *Manager) GetActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	return actor, ok
}

// RequestMeta extracts the client address and user agent of an incoming call.
// The first x-forwarded-for entry wins over the transport peer.
func RequestMeta(ctx context.Context) model.RequestMeta {
	var meta model.RequestMeta

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(forwardedForKey); len(v) > 0 {
			first, _, _ := strings.Cut(v[0], ",")
			meta.IPAddress = strings.TrimSpace(first)
		}
		if v := md.Get(userAgentKey); len(v) > 0 {
			meta.UserAgent = v[0]
		}
	}

	if meta.IPAddress == "" {
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			meta.IPAddress = hostOnly(p.Addr.String())
		}
	}

	return meta
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
