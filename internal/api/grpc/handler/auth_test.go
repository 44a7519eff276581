package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/mocks"
	"github.com/dtroode/nox-iam/internal/model"
	"github.com/dtroode/nox-iam/internal/testutil"
)

type authDeps struct {
	auth     *mocks.AuthService
	mfa      *mocks.MFAService
	social   *mocks.SocialService
	sessions *mocks.SessionService
	ctxMgr   *mocks.ContextManager
}

func newAuthHandler(t *testing.T) (*Auth, authDeps) {
	t.Helper()
	d := authDeps{
		auth:     mocks.NewAuthService(t),
		mfa:      mocks.NewMFAService(t),
		social:   mocks.NewSocialService(t),
		sessions: mocks.NewSessionService(t),
		ctxMgr:   mocks.NewContextManager(t),
	}
	h := NewAuth(d.auth, d.mfa, d.social, d.sessions, d.ctxMgr, testutil.MakeNoopLogger())
	return h, d
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, want, st.Code())
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	id := uuid.New()
	d.auth.On("Register", mock.Anything, "a@example.com", "password1", "Ann").
		Return(model.User{ID: id, Email: "a@example.com", Status: model.UserStatusPendingVerification}, nil)

	out, err := h.Register(context.Background(), mustStruct(t, map[string]any{
		"email":        "a@example.com",
		"password":     "password1",
		"display_name": "Ann",
	}))
	require.NoError(t, err)
	assert.Equal(t, id.String(), out.Fields["user_id"].GetStringValue())
	assert.Equal(t, "pending_verification", out.Fields["status"].GetStringValue())
}

func TestAuth_Register_MissingFields(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler(t)
	out, err := h.Register(context.Background(), mustStruct(t, map[string]any{"email": "a@example.com"}))
	assert.Nil(t, out)
	assertCode(t, err, codes.InvalidArgument)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.auth.On("Register", mock.Anything, "a@example.com", "password1", "").Return(model.User{}, apperror.ErrEmailTaken)

	out, err := h.Register(context.Background(), mustStruct(t, map[string]any{
		"email":    "a@example.com",
		"password": "password1",
	}))
	assert.Nil(t, out)
	assertCode(t, err, codes.AlreadyExists)
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		result model.AuthResult
		check  func(t *testing.T, out *structpb.Struct)
	}{
		{
			name: "tokens issued",
			result: model.AuthResult{
				User: model.User{ID: userID},
				Tokens: model.TokenPair{
					AccessToken:      "access",
					AccessExpiresAt:  expires,
					RefreshToken:     "refresh",
					RefreshExpiresAt: expires,
					SessionID:        sessionID,
				},
			},
			check: func(t *testing.T, out *structpb.Struct) {
				assert.False(t, out.Fields["mfa_required"].GetBoolValue())
				assert.Equal(t, "access", out.Fields["access_token"].GetStringValue())
				assert.Equal(t, "refresh", out.Fields["refresh_token"].GetStringValue())
				assert.Equal(t, "2026-01-02T03:04:05Z", out.Fields["access_expires_at"].GetStringValue())
				assert.Equal(t, sessionID.String(), out.Fields["session_id"].GetStringValue())
			},
		},
		{
			name: "mfa challenge",
			result: model.AuthResult{
				User:        model.User{ID: userID},
				MFARequired: true,
				MFAToken:    "pending",
			},
			check: func(t *testing.T, out *structpb.Struct) {
				assert.True(t, out.Fields["mfa_required"].GetBoolValue())
				assert.Equal(t, "pending", out.Fields["mfa_token"].GetStringValue())
				assert.NotContains(t, out.Fields, "access_token")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, d := newAuthHandler(t)
			d.auth.On("Login", mock.Anything, "a@example.com", "password1", model.RequestMeta{IPAddress: "203.0.113.9", UserAgent: "ua"}).
				Return(tt.result, nil)

			ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
				"x-forwarded-for", "203.0.113.9",
				"user-agent", "ua",
			))
			out, err := h.Login(ctx, mustStruct(t, map[string]any{"email": "a@example.com", "password": "password1"}))
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestAuth_Login_Locked(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.auth.On("Login", mock.Anything, "a@example.com", "password1", mock.Anything).Return(model.AuthResult{}, apperror.ErrAccountLocked)

	_, err := h.Login(context.Background(), mustStruct(t, map[string]any{"email": "a@example.com", "password": "password1"}))
	assertCode(t, err, codes.FailedPrecondition)
}

func TestAuth_Refresh_Compromised(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.auth.On("Refresh", mock.Anything, "old", mock.Anything).Return(model.TokenPair{}, apperror.ErrTokenCompromised)

	out, err := h.Refresh(context.Background(), mustStruct(t, map[string]any{"refresh_token": "old"}))
	assert.Nil(t, out)
	assertCode(t, err, codes.Unauthenticated)
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New(), Email: "a@example.com"}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.auth.On("Logout", mock.Anything, "refresh", "a@example.com").Return(nil)

	_, err := h.Logout(context.Background(), mustStruct(t, map[string]any{"refresh_token": "refresh"}))
	assert.NoError(t, err)
}

func TestAuth_Logout_NoActor(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(model.Actor{}, false)

	_, err := h.Logout(context.Background(), mustStruct(t, map[string]any{"refresh_token": "refresh"}))
	assertCode(t, err, codes.Unauthenticated)
}

func TestAuth_LogoutAll(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New()}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.sessions.On("RevokeAll", mock.Anything, actor.UserID, model.RevokeReasonLogout).Return(int64(3), nil)

	out, err := h.LogoutAll(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, float64(3), out.Fields["revoked"].GetNumberValue())
}

func TestAuth_ListSessions(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New()}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.sessions.On("ListActive", mock.Anything, actor.UserID).Return([]model.Session{
		{ID: uuid.New(), DeviceClass: "desktop", IPAddress: "10.0.0.1"},
		{ID: uuid.New(), DeviceClass: "mobile"},
	}, nil)

	out, err := h.ListSessions(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	items := out.Fields["sessions"].GetListValue().GetValues()
	require.Len(t, items, 2)
	assert.Equal(t, "desktop", items[0].GetStructValue().Fields["device_class"].GetStringValue())
}

func TestAuth_ChangePassword(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New()}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.auth.On("ChangePassword", mock.Anything, actor.UserID, "old-password", "new-password").Return(apperror.ErrInvalidPassword)

	_, err := h.ChangePassword(context.Background(), mustStruct(t, map[string]any{
		"old_password": "old-password",
		"new_password": "new-password",
	}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestAuth_MfaEnable(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New()}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.mfa.On("Enable", mock.Anything, actor.UserID, "123456").Return([]string{"AAAA1111", "BBBB2222"}, nil)

	out, err := h.MfaEnable(context.Background(), mustStruct(t, map[string]any{"code": "123456"}))
	require.NoError(t, err)
	backup := out.Fields["backup_codes"].GetListValue().GetValues()
	require.Len(t, backup, 2)
	assert.Equal(t, "AAAA1111", backup[0].GetStringValue())
}

func TestAuth_MfaSetup(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New()}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.mfa.On("Setup", mock.Anything, actor.UserID).Return(model.MFASetup{Secret: "SECRET", URI: "otpauth://totp/x"}, nil)

	out, err := h.MfaSetup(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, "SECRET", out.Fields["secret"].GetStringValue())
	assert.Equal(t, "otpauth://totp/x", out.Fields["uri"].GetStringValue())
}

func TestAuth_MfaStatus(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	actor := model.Actor{UserID: uuid.New()}
	d.ctxMgr.On("GetActorFromContext", mock.Anything).Return(actor, true)
	d.mfa.On("Status", mock.Anything, actor.UserID).Return(model.MFASummary{Status: model.MFAEnabled, RemainingBackupCodes: 7}, nil)

	out, err := h.MfaStatus(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, model.MFAEnabled.String(), out.Fields["status"].GetStringValue())
	assert.Equal(t, float64(7), out.Fields["remaining_backup_codes"].GetNumberValue())
}

func TestAuth_MfaVerify_InvalidCode(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.mfa.On("VerifyChallenge", mock.Anything, "pending", "000000", mock.Anything).Return(model.AuthResult{}, apperror.ErrInvalidMFACode)

	_, err := h.MfaVerify(context.Background(), mustStruct(t, map[string]any{"mfa_token": "pending", "code": "000000"}))
	assertCode(t, err, codes.Unauthenticated)
}

func TestAuth_MfaVerifyBackupCode(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.mfa.On("VerifyBackupCode", mock.Anything, "pending", "AAAA-1111", mock.Anything).
		Return(model.AuthResult{User: model.User{ID: uuid.New()}, Tokens: model.TokenPair{AccessToken: "access"}}, nil)

	out, err := h.MfaVerifyBackupCode(context.Background(), mustStruct(t, map[string]any{"mfa_token": "pending", "code": "AAAA-1111"}))
	require.NoError(t, err)
	assert.Equal(t, "access", out.Fields["access_token"].GetStringValue())
}

func TestAuth_SocialLogin_LinkRequired(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.social.On("Login", mock.Anything, "google", "id-token", mock.Anything).Return(model.AuthResult{}, apperror.ErrLinkRequired)

	_, err := h.SocialLogin(context.Background(), mustStruct(t, map[string]any{"provider": "google", "token": "id-token"}))
	assertCode(t, err, codes.AlreadyExists)
}

func TestAuth_SocialLink(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.social.On("Link", mock.Anything, "google", "id-token", "password1", mock.Anything).
		Return(model.AuthResult{User: model.User{ID: uuid.New()}, Tokens: model.TokenPair{AccessToken: "access"}}, nil)

	out, err := h.SocialLink(context.Background(), mustStruct(t, map[string]any{
		"provider": "google",
		"token":    "id-token",
		"password": "password1",
	}))
	require.NoError(t, err)
	assert.Equal(t, "access", out.Fields["access_token"].GetStringValue())
}

func TestAuthServiceDesc_DispatchesThroughInterceptor(t *testing.T) {
	t.Parallel()

	h, d := newAuthHandler(t)
	d.auth.On("ForgotPassword", mock.Anything, "a@example.com").Return(nil)

	var desc grpc.MethodDesc
	for _, m := range AuthServiceDesc.Methods {
		if m.MethodName == "ForgotPassword" {
			desc = m
		}
	}
	require.NotNil(t, desc.Handler)

	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	dec := func(v any) error {
		v.(*structpb.Struct).Fields = mustStruct(t, map[string]any{"email": "a@example.com"}).Fields
		return nil
	}

	_, err := desc.Handler(h, context.Background(), dec, interceptor)
	require.NoError(t, err)
	assert.Equal(t, "/nox.iam.v1.Auth/ForgotPassword", seen)
}
