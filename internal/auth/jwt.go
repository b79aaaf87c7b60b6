package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSubject = errors.New("token has no subject")

// Claims is the part of the hosted auth service's access token this app reads.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTAuthenticator struct {
	secret string
	aud    string
}

// NewJWTAuthenticator verifies HS256 tokens signed with secret. An empty aud
// disables the audience check.
func NewJWTAuthenticator(secret, aud string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, aud: aud}
}

func (a *JWTAuthenticator) ValidateAccessToken(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	}
	if a.aud != "" {
		opts = append(opts, jwt.WithAudience(a.aud))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
