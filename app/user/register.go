package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/respond"
	"bitwise74/account-api/pkg/security"
	"bitwise74/account-api/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRegister starts a registration. Nothing is persisted here, the
// candidate user travels inside the signed activation token until the
// mailed code is confirmed
func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.NameValidator(data.Name); err != nil {
		respond.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		respond.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		respond.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	_, err := d.Users.FindByEmail(c.Request.Context(), data.Email)
	if err == nil {
		respond.Fail(c, http.StatusConflict, "This email is already registered. Please login or use a different email")
		return
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to check if user is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	token, code, err := security.MakeActivationToken(security.Candidate{
		Name:     data.Name,
		Email:    data.Email,
		Password: data.Password,
	}, d.ActivationSecret)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to generate activation token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The token is only handed out once the code actually went out
	if err := d.Mailer.SendActivationCode(data.Email, data.Name, code); err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Failed to send activation mail")

		zap.L().Error("Failed to send activation mail", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"message":         "Please check " + data.Email + " to activate your account",
		"activationToken": token,
	})
}
