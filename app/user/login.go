package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/respond"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsSave   bool   `json:"isSave"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" || data.Password == "" {
		respond.Fail(c, http.StatusBadRequest, "Please enter your email and password")
		return
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), data.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respond.Fail(c, http.StatusNotFound, "No accounts found with this email")
			return
		}

		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		respond.Fail(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	accessToken, err := d.Sessions.Issue(c, user.ID, data.IsSave)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to issue session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"user":        user,
		"accessToken": accessToken,
	})
}
