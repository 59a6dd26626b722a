package middleware

import (
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/respond"
	"bitwise74/account-api/pkg/security"
	"errors"
	"net/http"

	"bitwise74/account-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserKey is the context key the resolved user is attached under
const UserKey = "authedUser"

// NewAuthMiddleware gates routes behind a valid access token. The token
// comes from the access_token cookie, gets verified against the access
// secret and resolved to a live user record which is attached to the
// context. Expired tokens are simply rejected, renewal through the
// refresh token is not handled here
func NewAuthMiddleware(users store.UserStore, accessSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("access_token")
		if err != nil || tokenStr == "" {
			respond.Fail(c, http.StatusUnauthorized, "Please login to access this resource")
			return
		}

		userID, err := security.ParseUserToken(tokenStr, accessSecret)
		if err != nil {
			respond.Fail(c, http.StatusUnauthorized, "Access token is invalid")

			zap.L().Debug("Rejected access token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				// Token outlived the account it was issued for
				respond.Fail(c, http.StatusUnauthorized, "User not found")
				return
			}

			respond.Fail(c, http.StatusInternalServerError, "Internal server error")

			zap.L().Error("Failed to resolve token user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the record the auth middleware resolved. Only
// valid on routes mounted behind NewAuthMiddleware
func CurrentUser(c *gin.Context) *model.User {
	return c.MustGet(UserKey).(*model.User)
}
