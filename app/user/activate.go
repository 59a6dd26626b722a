package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/internal/store"
	"bitwise74/account-api/pkg/respond"
	"bitwise74/account-api/pkg/security"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type activateBody struct {
	ActivationToken string `json:"activation_token"`
	ActivationCode  string `json:"activation_code"`
}

// UserActivate consumes an activation token and materializes the account.
// The email uniqueness check runs again because another registration may
// have been activated between the two calls
func UserActivate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data activateBody
	if err := c.ShouldBind(&data); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.ActivationToken == "" || data.ActivationCode == "" {
		respond.Fail(c, http.StatusBadRequest, "Activation token and code are required")
		return
	}

	cand, code, err := security.ParseActivationToken(data.ActivationToken, d.ActivationSecret)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			respond.Fail(c, http.StatusUnauthorized, "Activation token expired. Please register again")
			return
		}

		respond.Fail(c, http.StatusUnauthorized, "Activation token is invalid")
		return
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(data.ActivationCode)) != 1 {
		respond.Fail(c, http.StatusBadRequest, "Invalid activation code")
		return
	}

	_, err = d.Users.FindByEmail(c.Request.Context(), cand.Email)
	if err == nil {
		respond.Fail(c, http.StatusConflict, "This email is already registered. Please login or use a different email")
		return
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to check if user is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	hash, err := d.Argon.GenerateFromPassword(cand.Password)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	newUser := &model.User{
		ID:           userID,
		Name:         cand.Name,
		Email:        cand.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Verified:     true,
		AvatarURL:    model.DefaultAvatarURL,
	}

	if err := d.Users.Create(c.Request.Context(), newUser); err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("User activated", zap.String("userID", userID), zap.String("requestID", requestID))

	respond.OK(c, http.StatusOK, gin.H{
		"message": "Account activated",
		"user":    newUser,
	})
}
