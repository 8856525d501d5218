package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/shared/constants"
	"github.com/procureflow/procureflow/internal/shared/errors"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

// RequireRole must run after RequireAuth.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		_, role, err := CurrentActor(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if !allowed[role] {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError(constants.ErrMsgForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin)
}
