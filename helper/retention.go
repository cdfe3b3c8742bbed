package helper

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/CuCryptos/cruise-photos/config"
	"github.com/CuCryptos/cruise-photos/repository"
)

var retentionCron *cron.Cron

// StartPhotoRetentionSweeper purges photos past the retention window (the
// guest email promises 30 days) along with their blobs. Runs hourly.
func StartPhotoRetentionSweeper(photos *repository.PhotoRepo, storage PhotoStorage) {
	retentionCron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := retentionCron.AddFunc("@hourly", func() {
		sweepExpiredPhotos(photos, storage)
	})
	if err != nil {
		log.Printf("photo retention sweeper init failed: %v", err)
		return
	}

	retentionCron.Start()
	log.Println("photo retention sweeper started (hourly)")
}

func sweepExpiredPhotos(photos *repository.PhotoRepo, storage PhotoStorage) {
	days := config.ConfigInt("PHOTO_RETENTION_DAYS", 30)
	cutoff := time.Now().AddDate(0, 0, -days)

	purged, err := photos.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("photo retention sweep failed: %v", err)
		return
	}
	for _, photo := range purged {
		if err := storage.Delete(context.Background(), photo.CloudinaryPublicID); err != nil {
			log.Printf("blob delete failed for photo %d (%s): %v", photo.ID, photo.CloudinaryPublicID, err)
		}
	}
	if len(purged) > 0 {
		log.Printf("purged %d photos past the %d-day retention window", len(purged), days)
	}
}

func StopPhotoRetentionSweeper() {
	if retentionCron != nil {
		retentionCron.Stop()
	}
}
