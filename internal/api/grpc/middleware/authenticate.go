package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcctx "github.com/dtroode/nox-iam/internal/api/grpc/context"
	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

const bearerPrefix = "Bearer "

// Authenticate validates bearer access tokens and injects the actor into context.
type Authenticate struct {
	tokens         model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the access token and
// returns a context carrying the actor with its request metadata.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], bearerPrefix)
		}
	}

	actor, err := m.authenticate(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate: rejected request", "error", err.Error())
		return nil, status.Error(codes.Unauthenticated, apperror.From(err).Message)
	}
	actor.Meta = grpcctx.RequestMeta(ctx)

	return m.contextManager.SetActorToContext(ctx, actor), nil
}

func (m *Authenticate) authenticate(tokenString string) (model.Actor, error) {
	if tokenString == "" {
		return model.Actor{}, apperror.ErrUnauthenticated.WithMessage("missing authorization token")
	}

	claims, err := m.tokens.ParseAccessToken(tokenString)
	if err != nil {
		return model.Actor{}, apperror.ErrUnauthenticated.WithMessage("invalid authorization token")
	}

	if claims.UserID == uuid.Nil {
		return model.Actor{}, apperror.ErrUnauthenticated.WithMessage("invalid authorization token")
	}

	return model.Actor{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Authorities: claims.Authorities,
	}, nil
}
