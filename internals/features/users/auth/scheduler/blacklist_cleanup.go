package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "unitrack_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler purges expired blacklist rows hourly.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			res := db.Where("token_blacklist_expires_at < ?", time.Now()).
				Delete(&authModel.TokenBlacklistModel{})
			if res.Error != nil {
				log.Printf("[ERROR] blacklist cleanup: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("[INFO] blacklist cleanup removed %d rows", res.RowsAffected)
			}
		}
	}()
}
