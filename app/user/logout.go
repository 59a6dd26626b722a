package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserLogout clears both session cookies. There's no server-side session
// state so this works whether or not the caller was logged in
func UserLogout(c *gin.Context, d *internal.Deps) {
	d.Sessions.Clear(c)

	respond.OK(c, http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}
