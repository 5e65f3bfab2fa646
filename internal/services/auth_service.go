package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("authorization token is missing")
	ErrInvalidToken = errors.New("authorization token is invalid")
	ErrMissingEmail = errors.New("authorization token has no email claim")
	ErrNotIDToken   = errors.New("authorization token is not an id token")
)

// AuthService verifies identity tokens issued by the user pool.
type AuthService struct {
	keys     KeySource
	issuer   string
	clientID string
}

// NewAuthService creates a new AuthService.
func NewAuthService(keys KeySource, issuer, clientID string) *AuthService {
	return &AuthService{
		keys:     keys,
		issuer:   issuer,
		clientID: clientID,
	}
}

type identityClaims struct {
	Email    string `json:"email"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// VerifyToken checks the RS256 signature, audience, issuer, expiry and
// token_use of a bearer id token and returns the email it was issued for.
func (s *AuthService) VerifyToken(ctx context.Context, header string) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", ErrMissingToken
	}

	var claims identityClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims,
		func(token *jwt.Token) (interface{}, error) {
			kid, _ := token.Header["kid"].(string)
			if kid == "" {
				return nil, errors.New("token header has no kid")
			}
			return s.keys.PublicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(s.clientID),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.TokenUse != "id" {
		return "", ErrNotIDToken
	}
	if claims.Email == "" {
		return "", ErrMissingEmail
	}
	return claims.Email, nil
}
