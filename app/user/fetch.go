package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the caller's own record. The auth middleware already
// resolved it so there's no second lookup
func UserFetch(c *gin.Context, d *internal.Deps) {
	respond.OK(c, http.StatusOK, gin.H{
		"user": middleware.CurrentUser(c),
	})
}
