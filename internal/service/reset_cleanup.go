package service

import (
	"bitwise74/account-api/internal/model"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetCodeCleanup periodically clears expired password reset codes so
// stale pairs don't linger on user records forever. Confirmation checks
// the expiry itself, this is just housekeeping
func ResetCodeCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Reset code cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			err := db.
				Model(model.User{}).
				Where("reset_expiry < ?", time.Now()).
				Updates(map[string]any{
					"reset_code":   nil,
					"reset_expiry": nil,
				}).
				Error
			if err != nil {
				zap.L().Error("Failed to clear expired reset codes", zap.Error(err))
			}
		}
	}()
}
