package repositories

import (
	"errors"

	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	// Exists - есть ли уже отзыв этого автора этому пользователю по листингу
	Exists(db *gorm.DB, reviewerID, revieweeID string, announcementID, tripID *string) (bool, error)
	ListByReviewee(db *gorm.DB, revieweeID string, page, pageSize int) ([]models.Review, int64, error)
	RatingStats(db *gorm.DB, revieweeID string) (*RatingStats, error)
}

type RatingStats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	exists, err := r.Exists(db, review.ReviewerID, review.RevieweeID, review.AnnouncementID, review.TripID)
	if err != nil {
		return err
	}
	if exists {
		return ErrReviewAlreadyExists
	}
	// параллельную вставку ловит уникальный индекс
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) Exists(db *gorm.DB, reviewerID, revieweeID string, announcementID, tripID *string) (bool, error) {
	query := db.Model(&models.Review{}).
		Where("reviewer_id = ? AND reviewee_id = ?", reviewerID, revieweeID)

	if announcementID != nil {
		query = query.Where("announcement_id = ?", *announcementID)
	} else {
		query = query.Where("announcement_id IS NULL")
	}
	if tripID != nil {
		query = query.Where("trip_id = ?", *tripID)
	} else {
		query = query.Where("trip_id IS NULL")
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) ListByReviewee(db *gorm.DB, revieweeID string, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	query := db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Reviewer").
		Scopes(newestFirst, Paginate(page, pageSize)).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) RatingStats(db *gorm.DB, revieweeID string) (*RatingStats, error) {
	var stats RatingStats
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("reviewee_id = ?", revieweeID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
