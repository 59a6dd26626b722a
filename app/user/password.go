package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/respond"
	"bitwise74/account-api/validators"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updatePasswordBody struct {
	VerificationCode string `json:"verificationCode"`
	OldPassword      string `json:"oldPassword"`
	NewPassword      string `json:"newPassword"`
}

// UserUpdatePassword commits a password change. The caller has to prove
// control of the mailbox (code) and knowledge of the current password.
// The code is single use, it's cleared in the same save as the new hash
func UserUpdatePassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := middleware.CurrentUser(c)

	var data updatePasswordBody
	if err := c.ShouldBind(&data); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.OldPassword, user.PasswordHash)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		respond.Fail(c, http.StatusUnauthorized, "Password doesn't match")
		return
	}

	if user.ResetCode == nil || user.ResetExpiry == nil ||
		subtle.ConstantTimeCompare([]byte(*user.ResetCode), []byte(data.VerificationCode)) != 1 ||
		user.ResetExpiry.Before(time.Now()) {
		respond.Fail(c, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		respond.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.NewPassword)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.PasswordHash = hash
	user.ResetCode = nil
	user.ResetExpiry = nil

	if err := d.Users.Save(c.Request.Context(), user); err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to save user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("Password updated", zap.String("userID", user.ID), zap.String("requestID", requestID))

	respond.OK(c, http.StatusOK, gin.H{
		"message": "Password has been updated successfully",
	})
}
