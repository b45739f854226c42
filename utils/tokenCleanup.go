package utils

import (
	"log"

	"github.com/robfig/cron/v3"

	"capacita/auth"
	"capacita/database"
)

// InitializeTokenCleanupScheduler sets up the expired refresh token purge
func InitializeTokenCleanupScheduler(svc *auth.Service) {
	log.Println("[TOKEN-CLEANUP] Initializing refresh token cleanup scheduler...")

	c := cron.New()

	// Run daily at 3 AM to purge expired refresh tokens
	c.AddFunc("0 3 * * *", func() {
		log.Println("[TOKEN-CLEANUP] Running daily refresh token purge...")
		purged, err := svc.PurgeExpired(database.Database.Db)
		if err != nil {
			log.Printf("[TOKEN-CLEANUP] Error purging expired refresh tokens: %v", err)
			return
		}
		log.Printf("[TOKEN-CLEANUP] Purged %d expired refresh tokens", purged)
	})

	c.Start()
	log.Println("[TOKEN-CLEANUP] Refresh token cleanup scheduler started - runs daily at 3 AM")
}
