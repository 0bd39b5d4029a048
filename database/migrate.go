package database

import (
	"fmt"

	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
)

// индексы под фильтры поиска и подбора: статус + города маршрута
var listingIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_announcements_route ON announcements (status, from_city, to_city)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_route ON trips (status, from_city, to_city)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_dates ON trips (departure_date, arrival_date)`,
	`CREATE INDEX IF NOT EXISTS idx_announcements_dates ON announcements (date_from, date_to)`,
}

// один отзыв от автора получателю на листинг; у отзыва задан ровно один из листингов
var reviewIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_once_announcement ON reviews (reviewer_id, reviewee_id, announcement_id) WHERE announcement_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_once_trip ON reviews (reviewer_id, reviewee_id, trip_id) WHERE trip_id IS NOT NULL`,
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Announcement{},
		&models.Trip{},
		&models.Alert{},
		&models.AlertDelivery{},
		&models.Review{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range append(listingIndexes, reviewIndexes...) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	logger.Info("AutoMigrate completed")
	return nil
}
