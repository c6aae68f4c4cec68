// Package auth verifies bearer tokens issued by the external auth provider.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/identity"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// UserMetadata is the profile data the auth provider embeds in its tokens
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Claims represents the claims of a provider-issued access token
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email,omitempty"`
	Role         string       `json:"role,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// Identity converts the claims into the authenticated identity. The
// application role from user_metadata wins over the provider role.
func (c *Claims) Identity() *identity.Identity {
	role := c.UserMetadata.Role
	if role == "" {
		role = c.Role
	}
	return &identity.Identity{
		UserID:   c.Subject,
		Email:    c.Email,
		FullName: c.UserMetadata.FullName,
		Role:     role,
	}
}

// JWTVerifier validates HS256 access tokens locally with the provider's shared secret
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

// NewJWTVerifier creates a new JWT verifier
func NewJWTVerifier(cfg config.AuthConfig) *JWTVerifier {
	return &JWTVerifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		leeway:   30 * time.Second,
	}
}

var _ identity.Verifier = (*JWTVerifier)(nil)

// Verify validates the token signature, expiry, issuer and audience
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*identity.Identity, error) {
	if tokenString == "" {
		return nil, identity.ErrMissingToken
	}
	claims, err := v.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, identity.ErrInvalidToken
	}
	return claims.Identity(), nil
}

func (v *JWTVerifier) parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, identity.ErrExpiredToken
		}
		return nil, identity.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, identity.ErrInvalidToken
	}
	return claims, nil
}
