// Package admin contains handlers that are only reachable with the
// admin role
package admin

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/respond"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch looks up any account by ID
func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	user, err := d.Users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respond.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"user": user,
	})
}
