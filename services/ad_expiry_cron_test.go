package services

import (
	"testing"
	"time"

	"github.com/enosgb/admarket-back/database"
	"github.com/enosgb/admarket-back/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestExpirePublishedAds(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:ad_expiry?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := models.Ad{Title: "Expired", Slug: "expired", Active: true, Published: true, EndDate: &past}
	running := models.Ad{Title: "Running", Slug: "running", Active: true, Published: true, EndDate: &future}
	openEnded := models.Ad{Title: "Open ended", Slug: "open-ended", Active: true, Published: true}
	draft := models.Ad{Title: "Draft", Slug: "draft", Active: true, Published: false, EndDate: &past}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&running).Error)
	require.NoError(t, db.Create(&openEnded).Error)
	require.NoError(t, db.Create(&draft).Error)

	count, err := ExpirePublishedAds(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var got models.Ad
	require.NoError(t, db.First(&got, expired.ID).Error)
	assert.False(t, got.Published)

	require.NoError(t, db.First(&got, running.ID).Error)
	assert.True(t, got.Published)
	require.NoError(t, db.First(&got, openEnded.ID).Error)
	assert.True(t, got.Published)

	// already-unpublished ads are not touched again
	count, err = ExpirePublishedAds(db)
	require.NoError(t, err)
	assert.Zero(t, count)
}
