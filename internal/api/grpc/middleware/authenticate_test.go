package middleware

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/nox-iam/internal/mocks"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	validClaims := model.AccessClaims{UserID: uuid.New(), Email: "a@example.com", Authorities: []string{"*"}}

	tests := []struct {
		name         string
		mdAuthHeader string
		claims       model.AccessClaims
		parseErr     error
		expectParse  bool
		wantErr      bool
	}{
		{
			name:    "missing authorization header",
			wantErr: true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			parseErr:     errors.New("token is expired"),
			expectParse:  true,
			wantErr:      true,
		},
		{
			name:         "nil user id in claims",
			mdAuthHeader: "Bearer token",
			expectParse:  true,
			wantErr:      true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			claims:       validClaims,
			expectParse:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			tokens := mocks.NewTokenManager(t)
			if tt.expectParse {
				tokens.On("ParseAccessToken", strings.TrimPrefix(tt.mdAuthHeader, "Bearer ")).Return(tt.claims, tt.parseErr)
			}
			if !tt.wantErr {
				cm.On("SetActorToContext", mock.Anything, mock.MatchedBy(func(a model.Actor) bool {
					return a.UserID == tt.claims.UserID && a.Email == tt.claims.Email && a.HasAuthority("*")
				})).Return(context.Background())
			}

			m := NewAuthenticate(tokens, cm, testutil.MakeNoopLogger())

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Nil(t, newCtx)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, newCtx)
		})
	}
}

func TestAuthenticate_AuthFunc_CarriesRequestMeta(t *testing.T) {
	t.Parallel()

	claims := model.AccessClaims{UserID: uuid.New(), Email: "a@example.com"}
	tokens := mocks.NewTokenManager(t)
	tokens.On("ParseAccessToken", "token").Return(claims, nil)

	cm := mocks.NewContextManager(t)
	cm.On("SetActorToContext", mock.Anything, mock.MatchedBy(func(a model.Actor) bool {
		return a.Meta.IPAddress == "198.51.100.4" && a.Meta.UserAgent == "cli/1.0"
	})).Return(context.Background())

	m := NewAuthenticate(tokens, cm, testutil.MakeNoopLogger())
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"authorization", "Bearer token",
		"x-forwarded-for", "198.51.100.4",
		"user-agent", "cli/1.0",
	))

	_, err := m.AuthFunc(ctx)
	assert.NoError(t, err)
}
