package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authRepo "madrasahku_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler prunes expired blacklist rows once a day so
// the table never grows past one access-token lifetime of logouts.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runCleanup(db)
		for range ticker.C {
			runCleanup(db)
		}
	}()
}

func runCleanup(db *gorm.DB) {
	deleted, err := authRepo.CleanupExpiredBlacklist(db)
	if err != nil {
		log.Println("❌ Blacklist cleanup failed:", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Blacklist cleanup removed %d expired tokens", deleted)
	}
}
