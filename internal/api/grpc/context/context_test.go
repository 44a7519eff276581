package context

import (
	stdctx "context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"github.com/dtroode/nox-iam/internal/model"
)

func TestManager_SetAndGetActor(t *testing.T) {
	m := NewManager()
	actor := model.Actor{UserID: uuid.New(), Email: "a@example.com", Authorities: []string{"*"}}
	ctx := m.SetActorToContext(stdctx.Background(), actor)

	got, ok := m.GetActorFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, actor, got)
}

func TestManager_GetActor_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetActorFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetActor_IgnoresMetadata(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{"user_id": uuid.NewString()})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)

	_, ok := m.GetActorFromContext(ctx)
	assert.False(t, ok)
}

func TestRequestMeta(t *testing.T) {
	tcpAddr := &net.TCPAddr{IP: net.ParseIP("10.1.2.3"), Port: 5555}

	tests := []struct {
		name string
		md   metadata.MD
		peer *peer.Peer
		want model.RequestMeta
	}{
		{
			name: "peer address and user agent",
			md:   metadata.New(map[string]string{"user-agent": "grpc-go/1.74"}),
			peer: &peer.Peer{Addr: tcpAddr},
			want: model.RequestMeta{IPAddress: "10.1.2.3", UserAgent: "grpc-go/1.74"},
		},
		{
			name: "forwarded for wins over peer",
			md:   metadata.New(map[string]string{"x-forwarded-for": "203.0.113.7, 10.0.0.1"}),
			peer: &peer.Peer{Addr: tcpAddr},
			want: model.RequestMeta{IPAddress: "203.0.113.7"},
		},
		{
			name: "nothing known",
			want: model.RequestMeta{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := stdctx.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}
			if tt.peer != nil {
				ctx = peer.NewContext(ctx, tt.peer)
			}

			assert.Equal(t, tt.want, RequestMeta(ctx))
		})
	}
}
