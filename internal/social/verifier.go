// Package social verifies identity tokens issued by external providers.
package social

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.SocialVerifier = (*Verifier)(nil)

var (
	// ErrUnknownProvider is returned for providers without a configured secret.
	ErrUnknownProvider = errors.New("unknown social provider")
	// ErrInvalidToken is returned when the provider token fails verification.
	ErrInvalidToken = errors.New("invalid social token")
)

// Claims is the identity token body expected from a provider.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture,omitempty"`
}

// Verifier checks HMAC signed identity tokens with a shared secret per
// provider. The issuer must equal the provider name.
type Verifier struct {
	secrets  map[string][]byte
	audience string
	now      func() time.Time
}

func NewVerifier(secrets map[string]string, audience string) *Verifier {
	s := make(map[string][]byte, len(secrets))
	for provider, secret := range secrets {
		s[strings.ToLower(provider)] = []byte(secret)
	}
	return &Verifier{secrets: s, audience: audience, now: time.Now}
}

func (v *Verifier) Verify(_ context.Context, provider, token string) (model.SocialClaims, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	secret, ok := v.secrets[provider]
	if !ok {
		return model.SocialClaims{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(provider),
		jwt.WithAudience(v.audience),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return model.SocialClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Email == "" || !claims.EmailVerified {
		return model.SocialClaims{}, fmt.Errorf("%w: missing verified email or subject", ErrInvalidToken)
	}

	profile := map[string]any{"name": claims.Name}
	if claims.Picture != "" {
		profile["picture"] = claims.Picture
	}

	return model.SocialClaims{
		Provider:   provider,
		ProviderID: claims.Subject,
		Email:      strings.ToLower(strings.TrimSpace(claims.Email)),
		Name:       claims.Name,
		Profile:    profile,
	}, nil
}
