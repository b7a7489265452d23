package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieIssuer = "tasktrack"

// ErrInvalidCookie covers every cookie that fails verification.
var ErrInvalidCookie = errors.New("invalid session cookie")

// Signer wraps session tokens in HS256 JWTs so a cookie cannot be forged or
// altered without the server secret.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner builds a Signer. The secret must not be empty.
func NewSigner(secret string, now func() time.Time) (Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return Signer{}, errors.New("session secret is required")
	}
	if now == nil {
		now = time.Now
	}
	return Signer{secret: []byte(secret), now: now}, nil
}

// Sign returns the cookie value for token valid until expiresAt.
func (s Signer) Sign(token string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    cookieIssuer,
		Subject:   token,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify checks the cookie value and returns the session token it carries.
func (s Signer) Verify(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(value), &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidCookie)
	}
	return claims.Subject, nil
}
