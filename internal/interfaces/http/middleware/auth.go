package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/identity"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/logger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
)

const (
	// IdentityKey is the gin context key holding the *identity.Identity
	IdentityKey   = "identity"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Auth verifies the bearer token of every request and stores the
// resulting identity in the context. Requests without a valid token are
// rejected with 401, and with 503 when the auth provider cannot answer.
func Auth(verifier identity.Verifier, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(AuthHeaderKey))
		if !ok {
			abortUnauthorized(c, identity.ErrMissingToken)
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code == shared.CodeUnavailable {
				log.Error("Token verification failed",
					zap.String("request_id", GetRequestID(c)),
					zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeUnavailable, "authentication provider unavailable", GetRequestID(c)))
				return
			}
			abortUnauthorized(c, domainErr)
			return
		}

		c.Set(IdentityKey, id)
		ctx := logger.WithUserID(c.Request.Context(), id.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetIdentity returns the identity stored by Auth
func GetIdentity(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*identity.Identity)
	return id, ok && id != nil
}

func bearerToken(header string) (string, bool) {
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, err *shared.DomainError) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(err.Code, err.Message, GetRequestID(c)))
}
