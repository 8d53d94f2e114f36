// Package token issues and verifies the signed bearer tokens that prove a
// caller's identity to the API. Tokens are stateless: verification checks
// signature and expiry only, never the database.
package token

import (
	"errors"
	"time"

	"github.com/yukkurinet/hyakki-portal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the signature checked out but the token is past its
	// expiry. Callers surface this with a distinct message.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: bad signature,
	// malformed token, wrong signing method.
	ErrInvalid = errors.New("invalid token")
)

// Claims is the identity a token carries.
type Claims struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// NewDefaultIssuer uses the configured signing secret.
func NewDefaultIssuer() *Issuer {
	return NewIssuer(config.GetJWTSecret())
}

// Issue creates a signed token embedding the user identity, valid for ttl.
func (i *Issuer) Issue(userId, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Id:       userId,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded identity.
// Expired tokens return ErrExpired; anything else wrong returns ErrInvalid.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	return claims, nil
}
