package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// ErrInvalidToken is returned for every token that fails parsing or validation.
var ErrInvalidToken = errors.New("invalid token")

const (
	typeAccess     = "access"
	typeMFAPending = "mfa_pending"
)

// Claims represents access token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Authorities []string  `json:"authorities,omitempty"`
	TokenType   string    `json:"typ"`
}

// MFAClaims represents the claims of a pending MFA challenge token.
type MFAClaims struct {
	jwt.RegisteredClaims
	MFAPending bool   `json:"mfa_pending"`
	TokenType  string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey    []byte
	issuer       string
	accessTTL    time.Duration
	challengeTTL time.Duration
	now          func() time.Time
}

// NewJWT creates a new JWT token manager.
func NewJWT(secretKey, issuer string, accessTTL, challengeTTL time.Duration) *JWT {
	return &JWT{
		secretKey:    []byte(secretKey),
		issuer:       issuer,
		accessTTL:    accessTTL,
		challengeTTL: challengeTTL,
		now:          time.Now,
	}
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(c model.AccessClaims) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.accessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   c.UserID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:      c.UserID,
		Email:       c.Email,
		Authorities: c.Authorities,
		TokenType:   typeAccess,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.AccessClaims, error) {
	claims := &Claims{}
	if err := j.parse(tokenString, claims); err != nil {
		return model.AccessClaims{}, err
	}
	if claims.TokenType != typeAccess || claims.UserID == uuid.Nil {
		return model.AccessClaims{}, fmt.Errorf("%w: token type mismatch: %s", ErrInvalidToken, claims.TokenType)
	}
	return model.AccessClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Authorities: claims.Authorities,
	}, nil
}

// GenerateMFAToken creates a pending MFA challenge token for email.
func (j *JWT) GenerateMFAToken(email string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, MFAClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.challengeTTL)),
		},
		MFAPending: true,
		TokenType:  typeMFAPending,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign mfa token: %w", err)
	}
	return tokenString, nil
}

// ParseMFAToken validates a pending MFA token and returns the email it was issued for.
func (j *JWT) ParseMFAToken(tokenString string) (string, error) {
	claims := &MFAClaims{}
	if err := j.parse(tokenString, claims); err != nil {
		return "", err
	}
	if !claims.MFAPending || claims.TokenType != typeMFAPending || claims.Subject == "" {
		return "", fmt.Errorf("%w: not an mfa challenge", ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (j *JWT) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
