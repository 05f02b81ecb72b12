package services

import (
	"context"
	"log"
	"time"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ExpirePublishedAds unpublishes every ad whose end date is in the past.
// Returns the number of rows touched.
func ExpirePublishedAds(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Ad{}).
		Where("published = ? AND end_date IS NOT NULL AND end_date < ?", true, time.Now()).
		Update("published", false)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		utils.InvalidateAdCache(context.Background())
	}
	return result.RowsAffected, nil
}

// StartAdExpiryCron runs the expiry sweep once at startup and then every
// night at 03:00.
func StartAdExpiryCron(db *gorm.DB) {
	run := func() {
		count, err := ExpirePublishedAds(db)
		if err != nil {
			utils.LogError(err, "expire published ads")
			return
		}
		if count > 0 {
			log.Printf("Ad expiry sweep unpublished %d ads", count)
		}
	}

	go run()

	c := cron.New()
	c.AddFunc("0 3 * * *", run)
	c.Start()
}
