// Package totp wraps RFC 6238 time-based codes.
package totp

import (
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.TOTP = (*Authenticator)(nil)

// Authenticator implements model.TOTP with 30 second steps, 6 digits and
// one step of clock skew in each direction.
type Authenticator struct {
	issuer string
	now    func() time.Time
}

// New creates an Authenticator that labels secrets with issuer.
func New(issuer string) *Authenticator {
	return &Authenticator{issuer: issuer, now: time.Now}
}

// GenerateSecret creates a new base32 secret and its otpauth:// URI.
func (a *Authenticator) GenerateSecret(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.issuer,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate totp secret: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// Verify reports whether code is valid for secret at the current time.
func (a *Authenticator) Verify(secret, code string) bool {
	code = strings.TrimSpace(code)
	if secret == "" || code == "" {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, a.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
