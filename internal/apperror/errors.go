package apperror

// Validation.
var (
	ErrInvalidInput      = New(KindValidation, "INVALID_INPUT", "request is invalid")
	ErrInvalidEmail      = New(KindValidation, "INVALID_EMAIL", "email address is invalid")
	ErrWeakPassword      = New(KindValidation, "WEAK_PASSWORD", "password must be at least 8 characters long")
	ErrInvalidOTP        = New(KindValidation, "INVALID_OTP", "verification code is invalid")
	ErrOTPNotFound       = New(KindValidation, "OTP_NOT_FOUND", "no active verification code")
	ErrOTPExpired        = New(KindValidation, "OTP_EXPIRED", "verification code has expired")
	ErrOTPLocked         = New(KindValidation, "OTP_LOCKED", "too many failed attempts, request a new code")
	ErrAlreadyVerified   = New(KindValidation, "ALREADY_VERIFIED", "account is already verified")
	ErrMFASetupRequired  = New(KindValidation, "MFA_SETUP_REQUIRED", "mfa setup has not been started")
	ErrMFAAlreadyEnabled = New(KindValidation, "MFA_ALREADY_ENABLED", "mfa is already enabled")
	ErrMFANotEnabled     = New(KindValidation, "MFA_NOT_ENABLED", "mfa is not enabled")
	ErrInvalidPassword   = New(KindValidation, "INVALID_PASSWORD", "current password is incorrect")
	ErrPasswordNotSet    = New(KindValidation, "PASSWORD_NOT_SET", "account has no password")
	ErrInvalidRoleLevel  = New(KindValidation, "INVALID_ROLE_LEVEL", "role level must be between 1 and 999")
	ErrImmutableRole     = New(KindValidation, "IMMUTABLE_ROLE", "role cannot be modified")
	ErrInvalidInvitation = New(KindValidation, "INVALID_INVITATION", "invitation is invalid")
	ErrInvitationHandled = New(KindValidation, "INVITATION_HANDLED", "invitation has already been handled")
	ErrInvitationExpired = New(KindValidation, "EXPIRED_INVITATION", "invitation has expired")
)

// Authentication.
var (
	ErrUnauthenticated     = New(KindUnauthenticated, "UNAUTHENTICATED", "authentication required")
	ErrInvalidCredentials  = New(KindUnauthenticated, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidRefreshToken = New(KindUnauthenticated, "INVALID_TOKEN", "refresh token is invalid or expired")
	ErrInvalidMFAToken     = New(KindUnauthenticated, "INVALID_MFA_TOKEN", "mfa token is invalid or expired")
	ErrInvalidMFACode      = New(KindUnauthenticated, "INVALID_MFA_CODE", "authenticator code is invalid")
	ErrInvalidBackupCode   = New(KindUnauthenticated, "INVALID_BACKUP_CODE", "backup code is invalid")
	ErrInvalidSocialToken  = New(KindUnauthenticated, "INVALID_SOCIAL_TOKEN", "social provider token is invalid")
	ErrTokenCompromised    = New(KindCompromised, "TOKEN_COMPROMISED", "refresh token reuse detected, all sessions were revoked")
)

// Authorization.
var (
	ErrForbidden             = New(KindForbidden, "FORBIDDEN", "permission denied")
	ErrAccountNotActive      = New(KindForbidden, "ACCOUNT_NOT_ACTIVE", "account is not active")
	ErrForeignSession        = New(KindForbidden, "UNAUTHORIZED", "session belongs to another account")
	ErrNotOrganizationMember = New(KindForbidden, "NOT_A_MEMBER", "not a member of the organization")
	ErrInsufficientPrivilege = New(KindForbidden, "INSUFFICIENT_PRIVILEGE", "cannot act on a role at or above your own level")
	ErrLastOwner             = New(KindForbidden, "LAST_OWNER", "the last owner of an organization cannot be removed")
	ErrPermissionNotHeld     = New(KindForbidden, "PERMISSION_NOT_HELD", "cannot grant a permission you do not hold")
	ErrInvitationMismatch    = New(KindForbidden, "EMAIL_MISMATCH", "invitation was sent to another email address")
)

// Not found.
var (
	ErrUserNotFound         = New(KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrOrganizationNotFound = New(KindNotFound, "ORGANIZATION_NOT_FOUND", "organization not found")
	ErrRoleNotFound         = New(KindNotFound, "ROLE_NOT_FOUND", "role not found")
	ErrMemberNotFound       = New(KindNotFound, "MEMBER_NOT_FOUND", "member not found")
)

// Conflict.
var (
	ErrEmailTaken     = New(KindConflict, "EMAIL_TAKEN", "email is already registered")
	ErrEmailDeleted   = New(KindConflict, "EMAIL_DELETED", "email belongs to a deleted account")
	ErrLinkRequired   = New(KindConflict, "LINK_REQUIRED", "account exists, sign in with password to link the provider")
	ErrAlreadyMember  = New(KindConflict, "ALREADY_MEMBER", "user is already a member of the organization")
	ErrRoleExists     = New(KindConflict, "ROLE_EXISTS", "role already exists in the organization")
	ErrRoleInUse      = New(KindConflict, "ROLE_IN_USE", "role is assigned to members")
	ErrAlreadyInvited = New(KindConflict, "ALREADY_INVITED", "user already has a pending invitation")
)

// Locked and throttled.
var (
	ErrAccountLocked   = New(KindLocked, "ACCOUNT_LOCKED", "account is temporarily locked")
	ErrOTPRateLimited  = New(KindRateLimited, "RATE_LIMITED", "please wait before requesting another code")
	ErrTooManyRequests = New(KindRateLimited, "TOO_MANY_REQUESTS", "too many requests")
)

// ErrInternal is returned to clients for every unexpected failure.
var ErrInternal = New(KindInternal, "INTERNAL_ERROR", "internal server error")
