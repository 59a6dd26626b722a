package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/respond"
	"bitwise74/account-api/pkg/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resetCodeTTL is how long a mailed password update code stays valid
const resetCodeTTL = 10 * time.Minute

// UserSendResetCode mails the caller a 6-digit code that authorizes a
// password change. Requesting a new code overwrites any earlier unused
// one, last writer wins
func UserSendResetCode(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := middleware.CurrentUser(c)

	code, err := util.NumericCode(6)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to generate verification code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiry := time.Now().Add(resetCodeTTL)
	user.ResetCode = &code
	user.ResetExpiry = &expiry

	if err := d.Users.Save(c.Request.Context(), user); err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to save reset code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Mailer.SendResetCode(user.Email, user.Name, code); err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Failed to send verification mail")

		zap.L().Error("Failed to send reset code mail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"message": "Verification code sent to " + user.Email,
	})
}
