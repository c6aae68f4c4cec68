package identity

import (
	"context"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// Identity is the authenticated user as reported by the auth provider
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Verifier turns a bearer token into an identity
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Auth errors
var (
	ErrMissingToken = shared.NewDomainError(shared.CodeUnauthorized, "missing bearer token")
	ErrInvalidToken = shared.NewDomainError(shared.CodeUnauthorized, "invalid token")
	ErrExpiredToken = shared.NewDomainError(shared.CodeUnauthorized, "token has expired")
)
