package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	AuditLoginSucceeded      = "auth.login.succeeded"
	AuditLoginFailed         = "auth.login.failed"
	AuditAccountLocked       = "auth.account.locked"
	AuditRegistered          = "auth.registered"
	AuditEmailVerified       = "auth.email.verified"
	AuditPasswordReset       = "auth.password.reset"
	AuditPasswordChanged     = "auth.password.changed"
	AuditSessionRotated      = "auth.session.rotated"
	AuditSessionRevoked      = "auth.session.revoked"
	AuditTokenReuse          = "auth.session.reuse_detected"
	AuditMFAEnabled          = "auth.mfa.enabled"
	AuditMFADisabled         = "auth.mfa.disabled"
	AuditMFABackupUsed       = "auth.mfa.backup_code_used"
	AuditMFABackupRotated    = "auth.mfa.backup_codes_regenerated"
	AuditSocialLinked        = "auth.social.linked"
	AuditOrganizationCreated = "org.created"
	AuditOrganizationUpdated = "org.updated"
	AuditOrganizationDeleted = "org.deleted"
	AuditInvitationSent      = "org.invitation.sent"
	AuditInvitationAccepted  = "org.invitation.accepted"
	AuditMemberAdded         = "org.member.added"
	AuditMemberRemoved       = "org.member.removed"
	AuditRoleCreated         = "org.role.created"
	AuditRoleUpdated         = "org.role.updated"
	AuditRoleDeleted         = "org.role.deleted"
)

// AuditSink receives audit entries. Record must not block the caller.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry is a single audit trail event.
type AuditEntry struct {
	ID             string
	OrganizationID *uuid.UUID
	ActorID        *uuid.UUID
	Action         string
	Metadata       map[string]any
	IPAddress      string
	UserAgent      string
	At             time.Time
}
