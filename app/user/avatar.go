package user

import (
	"bitwise74/account-api/internal"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/respond"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type avatarBody struct {
	// Avatar is the raw image, base64 encoded, optionally wrapped in a
	// data URI like browsers produce from a canvas or file reader
	Avatar string `json:"avatar"`
}

func UserUpdateAvatar(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := middleware.CurrentUser(c)

	var data avatarBody
	if err := c.ShouldBind(&data); err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Avatar == "" {
		respond.Fail(c, http.StatusBadRequest, "Can't find any avatar to update")
		return
	}

	payload := data.Avatar
	if i := strings.Index(payload, ","); i != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}

	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		respond.Fail(c, http.StatusBadRequest, "Avatar must be base64 encoded")
		return
	}

	if int64(len(img)) > d.MaxAvatarSize {
		respond.Fail(c, http.StatusRequestEntityTooLarge, "Avatar image is too large")
		return
	}

	// The placeholder avatar has no object behind it, only delete
	// user-uploaded ones
	if user.AvatarID != "" {
		if err := d.Avatars.Delete(c.Request.Context(), user.AvatarID); err != nil {
			zap.L().Warn("Failed to delete old avatar", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	id, url, err := d.Avatars.Upload(c.Request.Context(), img)
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Failed to upload avatar")

		zap.L().Error("Failed to upload avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.AvatarID = id
	user.AvatarURL = url

	if err := d.Users.Save(c.Request.Context(), user); err != nil {
		respond.Fail(c, http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to save user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"message":   "Avatar updated",
		"avatarUrl": url,
	})
}
