package middleware

import (
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects authenticated users whose role is outside the
// allowed set. Must be mounted after NewAuthMiddleware
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)

		if _, ok := allowed[user.Role]; !ok {
			respond.Fail(c, http.StatusForbidden, "Role "+string(user.Role)+" is not allowed to access this resource")
			return
		}

		c.Next()
	}
}
