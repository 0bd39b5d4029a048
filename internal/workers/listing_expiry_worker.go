package workers

import (
	"context"
	"time"

	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
)

const expiryWorkerName = "listing_expiry_worker"

// ListingExpiryReport - сколько листингов закрыто за один проход
type ListingExpiryReport struct {
	TripsCompleted         int64
	AnnouncementsCancelled int64
	AnnouncementsCompleted int64
}

type ListingExpiryWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewListingExpiryWorker(db *gorm.DB, interval time.Duration) *ListingExpiryWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ListingExpiryWorker{db: db, interval: interval}
}

// Start запускает автозакрытие листингов с прошедшими датами
func (w *ListingExpiryWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ListingExpiryWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Listing expiry worker stopped")
			return
		case <-ticker.C:
			report, err := w.Sweep(ctx, time.Now())
			if err != nil {
				logger.WorkerLog(expiryWorkerName, "sweep", err)
				continue
			}
			if report.TripsCompleted+report.AnnouncementsCancelled+report.AnnouncementsCompleted > 0 {
				logger.WorkerLog(expiryWorkerName, "sweep", nil,
					"trips_completed", report.TripsCompleted,
					"announcements_cancelled", report.AnnouncementsCancelled,
					"announcements_completed", report.AnnouncementsCompleted,
				)
			}
		}
	}
}

// Sweep закрывает листинги, чье окно закончилось до now:
// поездки (active, matched) -> completed,
// объявления active -> cancelled, matched -> completed.
// Листинги без конечной даты не трогаются.
func (w *ListingExpiryWorker) Sweep(ctx context.Context, now time.Time) (*ListingExpiryReport, error) {
	report := &ListingExpiryReport{}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Trip{}).
			Where("status IN ? AND arrival_date IS NOT NULL AND arrival_date < ?",
				[]models.ListingStatus{models.ListingStatusActive, models.ListingStatusMatched}, now).
			Updates(map[string]interface{}{"status": models.ListingStatusCompleted, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		report.TripsCompleted = res.RowsAffected

		res = tx.Model(&models.Announcement{}).
			Where("status = ? AND date_to IS NOT NULL AND date_to < ?", models.ListingStatusActive, now).
			Updates(map[string]interface{}{"status": models.ListingStatusCancelled, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		report.AnnouncementsCancelled = res.RowsAffected

		res = tx.Model(&models.Announcement{}).
			Where("status = ? AND date_to IS NOT NULL AND date_to < ?", models.ListingStatusMatched, now).
			Updates(map[string]interface{}{"status": models.ListingStatusCompleted, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		report.AnnouncementsCompleted = res.RowsAffected
		return nil
	})

	return report, err
}
