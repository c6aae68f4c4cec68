package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/identity"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// userInfo mirrors the provider's GET /auth/v1/user response
type userInfo struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// RemoteVerifier resolves tokens by asking the auth provider who they belong to
type RemoteVerifier struct {
	client *resty.Client
	logger *zap.Logger
}

// NewRemoteVerifier creates a verifier backed by the provider's user endpoint
func NewRemoteVerifier(cfg config.AuthConfig, logger *zap.Logger) *RemoteVerifier {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.ProviderURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		client.SetHeader("apikey", cfg.APIKey)
	}
	return &RemoteVerifier{client: client, logger: logger}
}

var _ identity.Verifier = (*RemoteVerifier)(nil)

// Verify looks the token up at /auth/v1/user
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, identity.ErrMissingToken
	}

	result := new(userInfo)
	resp, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(result).
		Get("/auth/v1/user")
	if err != nil {
		v.logger.Warn("Auth provider unreachable", zap.Error(err))
		return nil, fmt.Errorf("auth provider: %w", shared.ErrUnavailable)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return nil, identity.ErrInvalidToken
	case resp.IsError():
		v.logger.Warn("Auth provider returned an error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", truncate(resp.String(), 256)))
		return nil, fmt.Errorf("auth provider status %d: %w", resp.StatusCode(), shared.ErrUnavailable)
	}

	if result.ID == "" {
		return nil, identity.ErrInvalidToken
	}
	role := result.UserMetadata.Role
	if role == "" {
		role = result.Role
	}
	return &identity.Identity{
		UserID:   result.ID,
		Email:    result.Email,
		FullName: result.UserMetadata.FullName,
		Role:     role,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// NewVerifier selects the verifier configured by auth.mode
func NewVerifier(cfg config.AuthConfig, logger *zap.Logger) identity.Verifier {
	if cfg.Mode == "remote" {
		return NewRemoteVerifier(cfg, logger)
	}
	return NewJWTVerifier(cfg)
}
