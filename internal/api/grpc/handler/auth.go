package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	grpcctx "github.com/dtroode/nox-iam/internal/api/grpc/context"
	"github.com/dtroode/nox-iam/internal/apperror"
	"github.com/dtroode/nox-iam/internal/logger"
	"github.com/dtroode/nox-iam/internal/model"
)

// AuthServiceName is the fully qualified name of the authentication service.
const AuthServiceName = "nox.iam.v1.Auth"

// AuthService defines registration, login and password operations.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (model.User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string, meta model.RequestMeta) (model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string, meta model.RequestMeta) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken, requesterEmail string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// MFAService defines multi-factor enrollment and challenge operations.
type MFAService interface {
	Setup(ctx context.Context, userID uuid.UUID) (model.MFASetup, error)
	Enable(ctx context.Context, userID uuid.UUID, code string) ([]string, error)
	Disable(ctx context.Context, userID uuid.UUID, password string) error
	VerifyChallenge(ctx context.Context, pendingToken, code string, meta model.RequestMeta) (model.AuthResult, error)
	VerifyBackupCode(ctx context.Context, pendingToken, rawCode string, meta model.RequestMeta) (model.AuthResult, error)
	RegenerateBackupCodes(ctx context.Context, userID uuid.UUID, code string) ([]string, error)
	Status(ctx context.Context, userID uuid.UUID) (model.MFASummary, error)
}

// SocialService defines login through external identity providers.
type SocialService interface {
	Login(ctx context.Context, provider, providerToken string, meta model.RequestMeta) (model.AuthResult, error)
	Link(ctx context.Context, provider, providerToken, password string, meta model.RequestMeta) (model.AuthResult, error)
}

// SessionService defines session listing and bulk revocation.
type SessionService interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	RevokeAll(ctx context.Context, userID uuid.UUID, reason string) (int64, error)
}

// AuthServer is the server API of the authentication service.
type AuthServer interface {
	Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	VerifyEmail(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Logout(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	LogoutAll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListSessions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ForgotPassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	ResetPassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	ChangePassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	MfaSetup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MfaEnable(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MfaDisable(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	MfaVerify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MfaVerifyBackupCode(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MfaRegenerateBackupCodes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MfaStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SocialLogin(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SocialLink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// PublicAuthMethods lists the full method names callable without an access token.
var PublicAuthMethods = []string{
	"/" + AuthServiceName + "/Register",
	"/" + AuthServiceName + "/VerifyEmail",
	"/" + AuthServiceName + "/Login",
	"/" + AuthServiceName + "/Refresh",
	"/" + AuthServiceName + "/ForgotPassword",
	"/" + AuthServiceName + "/ResetPassword",
	"/" + AuthServiceName + "/MfaVerify",
	"/" + AuthServiceName + "/MfaVerifyBackupCode",
	"/" + AuthServiceName + "/SocialLogin",
	"/" + AuthServiceName + "/SocialLink",
}

// AuthServiceDesc describes the authentication service for grpc.Server.RegisterService.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AuthServiceName, "Register", AuthServer.Register),
		unary(AuthServiceName, "VerifyEmail", AuthServer.VerifyEmail),
		unary(AuthServiceName, "Login", AuthServer.Login),
		unary(AuthServiceName, "Refresh", AuthServer.Refresh),
		unary(AuthServiceName, "Logout", AuthServer.Logout),
		unary(AuthServiceName, "LogoutAll", AuthServer.LogoutAll),
		unary(AuthServiceName, "ListSessions", AuthServer.ListSessions),
		unary(AuthServiceName, "ForgotPassword", AuthServer.ForgotPassword),
		unary(AuthServiceName, "ResetPassword", AuthServer.ResetPassword),
		unary(AuthServiceName, "ChangePassword", AuthServer.ChangePassword),
		unary(AuthServiceName, "MfaSetup", AuthServer.MfaSetup),
		unary(AuthServiceName, "MfaEnable", AuthServer.MfaEnable),
		unary(AuthServiceName, "MfaDisable", AuthServer.MfaDisable),
		unary(AuthServiceName, "MfaVerify", AuthServer.MfaVerify),
		unary(AuthServiceName, "MfaVerifyBackupCode", AuthServer.MfaVerifyBackupCode),
		unary(AuthServiceName, "MfaRegenerateBackupCodes", AuthServer.MfaRegenerateBackupCodes),
		unary(AuthServiceName, "MfaStatus", AuthServer.MfaStatus),
		unary(AuthServiceName, "SocialLogin", AuthServer.SocialLogin),
		unary(AuthServiceName, "SocialLink", AuthServer.SocialLink),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nox/iam/v1/auth.proto",
}

var _ AuthServer = (*Auth)(nil)

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	authService    AuthService
	mfaService     MFAService
	socialService  SocialService
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	mfaService MFAService,
	socialService SocialService,
	sessionService SessionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		mfaService:     mfaService,
		socialService:  socialService,
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates a pending account and sends a verification code.
func (h *Auth) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "email", "password"); err != nil {
		return nil, err
	}
	email := stringField(req, "email")

	h.logger.Debug("Auth handler: processing register request", "email", email)

	user, err := h.authService.Register(ctx, email, stringField(req, "password"), stringField(req, "display_name"))
	if err != nil {
		return nil, h.fail("register", err, "email", email)
	}

	h.logger.Info("Auth handler: register completed", "user_id", user.ID)

	return toStruct(map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"status":  string(user.Status),
	})
}

// VerifyEmail activates an account with the emailed code.
func (h *Auth) VerifyEmail(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if err := requireFields(req, "email", "code"); err != nil {
		return nil, err
	}
	email := stringField(req, "email")

	if err := h.authService.VerifyEmail(ctx, email, stringField(req, "code")); err != nil {
		return nil, h.fail("verify email", err, "email", email)
	}

	h.logger.Info("Auth handler: email verified", "email", email)

	return &emptypb.Empty{}, nil
}

// Login authenticates with email and password. The result either carries
// session tokens or a pending MFA token.
func (h *Auth) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "email", "password"); err != nil {
		return nil, err
	}
	email := stringField(req, "email")

	h.logger.Debug("Auth handler: processing login request", "email", email)

	result, err := h.authService.Login(ctx, email, stringField(req, "password"), grpcctx.RequestMeta(ctx))
	if err != nil {
		return nil, h.fail("login", err, "email", email)
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", result.User.ID,
		"mfa_required", result.MFARequired)

	return authResultStruct(result)
}

// Refresh rotates a refresh token.
func (h *Auth) Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "refresh_token"); err != nil {
		return nil, err
	}

	pair, err := h.authService.Refresh(ctx, stringField(req, "refresh_token"), grpcctx.RequestMeta(ctx))
	if err != nil {
		return nil, h.fail("refresh", err)
	}

	h.logger.Debug("Auth handler: refresh completed", "session_id", pair.SessionID)

	return toStruct(tokenPairFields(pair))
}

// Logout revokes the caller's refresh token.
func (h *Auth) Logout(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "refresh_token"); err != nil {
		return nil, err
	}

	if err := h.authService.Logout(ctx, stringField(req, "refresh_token"), actor.Email); err != nil {
		return nil, h.fail("logout", err, "user_id", actor.UserID)
	}

	h.logger.Info("Auth handler: logout completed", "user_id", actor.UserID)

	return &emptypb.Empty{}, nil
}

// LogoutAll revokes every session of the caller.
func (h *Auth) LogoutAll(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}

	revoked, err := h.sessionService.RevokeAll(ctx, actor.UserID, model.RevokeReasonLogout)
	if err != nil {
		return nil, h.fail("logout all", err, "user_id", actor.UserID)
	}

	h.logger.Info("Auth handler: logout all completed",
		"user_id", actor.UserID,
		"revoked", revoked)

	return toStruct(map[string]any{"revoked": revoked})
}

// ListSessions returns the caller's live sessions.
func (h *Auth) ListSessions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := h.sessionService.ListActive(ctx, actor.UserID)
	if err != nil {
		return nil, h.fail("list sessions", err, "user_id", actor.UserID)
	}

	items := make([]any, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, map[string]any{
			"id":             s.ID.String(),
			"ip_address":     s.IPAddress,
			"user_agent":     s.UserAgent,
			"device_class":   s.DeviceClass,
			"last_active_at": timestamp(s.LastActiveAt),
			"expires_at":     timestamp(s.ExpiresAt),
			"created_at":     timestamp(s.CreatedAt),
		})
	}

	return toStruct(map[string]any{"sessions": items})
}

// ForgotPassword sends a reset code. It succeeds for unknown emails too.
func (h *Auth) ForgotPassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if err := requireFields(req, "email"); err != nil {
		return nil, err
	}

	if err := h.authService.ForgotPassword(ctx, stringField(req, "email")); err != nil {
		return nil, h.fail("forgot password", err)
	}

	return &emptypb.Empty{}, nil
}

// ResetPassword replaces the password using an emailed code.
func (h *Auth) ResetPassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if err := requireFields(req, "email", "code", "new_password"); err != nil {
		return nil, err
	}
	email := stringField(req, "email")

	err := h.authService.ResetPassword(ctx, email, stringField(req, "code"), stringField(req, "new_password"))
	if err != nil {
		return nil, h.fail("reset password", err, "email", email)
	}

	h.logger.Info("Auth handler: password reset completed", "email", email)

	return &emptypb.Empty{}, nil
}

// ChangePassword replaces the caller's password.
func (h *Auth) ChangePassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "old_password", "new_password"); err != nil {
		return nil, err
	}

	err = h.authService.ChangePassword(ctx, actor.UserID, stringField(req, "old_password"), stringField(req, "new_password"))
	if err != nil {
		return nil, h.fail("change password", err, "user_id", actor.UserID)
	}

	h.logger.Info("Auth handler: password changed", "user_id", actor.UserID)

	return &emptypb.Empty{}, nil
}

// MfaSetup starts authenticator enrollment.
func (h *Auth) MfaSetup(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}

	setup, err := h.mfaService.Setup(ctx, actor.UserID)
	if err != nil {
		return nil, h.fail("mfa setup", err, "user_id", actor.UserID)
	}

	return toStruct(map[string]any{
		"secret": setup.Secret,
		"uri":    setup.URI,
	})
}

// MfaEnable confirms enrollment and returns backup codes.
func (h *Auth) MfaEnable(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "code"); err != nil {
		return nil, err
	}

	codes, err := h.mfaService.Enable(ctx, actor.UserID, stringField(req, "code"))
	if err != nil {
		return nil, h.fail("mfa enable", err, "user_id", actor.UserID)
	}

	h.logger.Info("Auth handler: mfa enabled", "user_id", actor.UserID)

	return toStruct(map[string]any{"backup_codes": stringList(codes)})
}

// MfaDisable turns MFA off after re-checking the password.
func (h *Auth) MfaDisable(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "password"); err != nil {
		return nil, err
	}

	if err := h.mfaService.Disable(ctx, actor.UserID, stringField(req, "password")); err != nil {
		return nil, h.fail("mfa disable", err, "user_id", actor.UserID)
	}

	h.logger.Info("Auth handler: mfa disabled", "user_id", actor.UserID)

	return &emptypb.Empty{}, nil
}

// MfaVerify completes a pending login with an authenticator code.
func (h *Auth) MfaVerify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "mfa_token", "code"); err != nil {
		return nil, err
	}

	result, err := h.mfaService.VerifyChallenge(ctx, stringField(req, "mfa_token"), stringField(req, "code"), grpcctx.RequestMeta(ctx))
	if err != nil {
		return nil, h.fail("mfa verify", err)
	}

	h.logger.Info("Auth handler: mfa verify completed", "user_id", result.User.ID)

	return authResultStruct(result)
}

// MfaVerifyBackupCode completes a pending login with a backup code.
func (h *Auth) MfaVerifyBackupCode(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "mfa_token", "code"); err != nil {
		return nil, err
	}

	result, err := h.mfaService.VerifyBackupCode(ctx, stringField(req, "mfa_token"), stringField(req, "code"), grpcctx.RequestMeta(ctx))
	if err != nil {
		return nil, h.fail("mfa backup code verify", err)
	}

	h.logger.Info("Auth handler: mfa backup code accepted", "user_id", result.User.ID)

	return authResultStruct(result)
}

// MfaRegenerateBackupCodes replaces the caller's backup codes.
func (h *Auth) MfaRegenerateBackupCodes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireFields(req, "code"); err != nil {
		return nil, err
	}

	codes, err := h.mfaService.RegenerateBackupCodes(ctx, actor.UserID, stringField(req, "code"))
	if err != nil {
		return nil, h.fail("mfa regenerate backup codes", err, "user_id", actor.UserID)
	}

	return toStruct(map[string]any{"backup_codes": stringList(codes)})
}

// MfaStatus reports the caller's enrollment state.
func (h *Auth) MfaStatus(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	actor, err := h.actor(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.mfaService.Status(ctx, actor.UserID)
	if err != nil {
		return nil, h.fail("mfa status", err, "user_id", actor.UserID)
	}

	return toStruct(map[string]any{
		"status":                 summary.Status.String(),
		"remaining_backup_codes": summary.RemainingBackupCodes,
	})
}

// SocialLogin authenticates with a provider token.
func (h *Auth) SocialLogin(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "provider", "token"); err != nil {
		return nil, err
	}
	provider := stringField(req, "provider")

	result, err := h.socialService.Login(ctx, provider, stringField(req, "token"), grpcctx.RequestMeta(ctx))
	if err != nil {
		return nil, h.fail("social login", err, "provider", provider)
	}

	h.logger.Info("Auth handler: social login completed",
		"provider", provider,
		"user_id", result.User.ID)

	return authResultStruct(result)
}

// SocialLink links a provider identity to an existing password account.
func (h *Auth) SocialLink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "provider", "token", "password"); err != nil {
		return nil, err
	}
	provider := stringField(req, "provider")

	result, err := h.socialService.Link(ctx, provider, stringField(req, "token"), stringField(req, "password"), grpcctx.RequestMeta(ctx))
	if err != nil {
		return nil, h.fail("social link", err, "provider", provider)
	}

	h.logger.Info("Auth handler: social link completed",
		"provider", provider,
		"user_id", result.User.ID)

	return authResultStruct(result)
}

func (h *Auth) actor(ctx context.Context) (model.Actor, error) {
	actor, ok := h.contextManager.GetActorFromContext(ctx)
	if !ok {
		return model.Actor{}, handleError(apperror.ErrUnauthenticated)
	}
	return actor, nil
}

func (h *Auth) fail(op string, err error, args ...any) error {
	logFailure(h.logger, "Auth handler: "+op+" failed", err, args...)
	return handleError(err)
}

func logFailure(l *logger.Logger, msg string, err error, args ...any) {
	args = append(args, "error", err.Error())
	if apperror.From(err) == apperror.ErrInternal {
		l.Error(msg, args...)
		return
	}
	l.Warn(msg, args...)
}

func tokenPairFields(pair model.TokenPair) map[string]any {
	return map[string]any{
		"access_token":       pair.AccessToken,
		"access_expires_at":  timestamp(pair.AccessExpiresAt),
		"refresh_token":      pair.RefreshToken,
		"refresh_expires_at": timestamp(pair.RefreshExpiresAt),
		"session_id":         pair.SessionID.String(),
	}
}

func authResultStruct(result model.AuthResult) (*structpb.Struct, error) {
	fields := map[string]any{
		"user_id":      result.User.ID.String(),
		"mfa_required": result.MFARequired,
	}
	if result.MFARequired {
		fields["mfa_token"] = result.MFAToken
		return toStruct(fields)
	}
	for k, v := range tokenPairFields(result.Tokens) {
		fields[k] = v
	}
	return toStruct(fields)
}
