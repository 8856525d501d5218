package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/auth"
	"github.com/procureflow/procureflow/internal/shared/constants"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth accepts only the Authorization header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return m.require(false)
}

// RequireStreamAuth also accepts ?token=, since browsers cannot set headers
// on EventSource and WebSocket requests.
func (m *AuthMiddleware) RequireStreamAuth() gin.HandlerFunc {
	return m.require(true)
}

func (m *AuthMiddleware) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if token == "" && allowQuery {
			token = c.Query("token")
		}
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentActor returns the caller set by the auth middleware.
func CurrentActor(c *gin.Context) (uint, user.Role, error) {
	rawID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	userID, ok := rawID.(uint)
	if !ok || userID == 0 {
		return 0, "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	role, _ := c.Get(constants.ContextKeyUserRole)
	r, _ := role.(user.Role)
	return userID, r, nil
}
