package model

import "context"

// NotificationKind selects the message template.
type NotificationKind string

const (
	NotificationVerifyEmail   NotificationKind = "verify_email"
	NotificationResetPassword NotificationKind = "reset_password"
	NotificationPasswordReset NotificationKind = "password_reset_completed"
	NotificationInvitation    NotificationKind = "organization_invitation"
)

// Notifier delivers outbound messages to users.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Notification is an outbound message.
type Notification struct {
	Kind        NotificationKind
	Email       string
	DisplayName string
	Code        string

	// Organization names the inviting tenant for invitations.
	Organization string
}
