package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, db *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListUserReviews(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) (*dto.ReviewListResponse, error)
}

type ReviewServiceImpl struct {
	reviewRepo       repositories.ReviewRepository
	userRepo         repositories.UserRepository
	announcementRepo repositories.AnnouncementRepository
	tripRepo         repositories.TripRepository
	notificationRepo repositories.NotificationRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	announcementRepo repositories.AnnouncementRepository,
	tripRepo repositories.TripRepository,
	notificationRepo repositories.NotificationRepository,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:       reviewRepo,
		userRepo:         userRepo,
		announcementRepo: announcementRepo,
		tripRepo:         tripRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateReview сохраняет отзыв и пересчитывает рейтинг получателя.
// Отзыв привязан ровно к одному листингу, которым владеет автор или получатель.
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, db *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if reviewerID == req.RevieweeID {
		return nil, apperrors.ErrSelfReview
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidInput(fmt.Errorf("rating must be between 1 and 5"))
	}
	if (req.AnnouncementID == nil) == (req.TripID == nil) {
		return nil, apperrors.ErrInvalidInput(fmt.Errorf("exactly one of announcement_id and trip_id is required"))
	}

	db = withCtx(ctx, db)

	if _, err := s.userRepo.FindByID(db, req.RevieweeID); err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.checkListing(db, reviewerID, req); err != nil {
		return nil, err
	}

	review := &models.Review{
		ReviewerID:     reviewerID,
		RevieweeID:     req.RevieweeID,
		AnnouncementID: req.AnnouncementID,
		TripID:         req.TripID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	err := inTransaction(db, func(tx *gorm.DB) error {
		// отзывы одному пользователю пересчитывают рейтинг по очереди
		if err := s.userRepo.LockForUpdate(tx, req.RevieweeID); err != nil {
			return err
		}
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}

		stats, err := s.reviewRepo.RatingStats(tx, req.RevieweeID)
		if err != nil {
			return err
		}
		var rating *float64
		if stats.Count > 0 {
			avg := math.Round(stats.Average*100) / 100
			rating = &avg
		}
		if err := s.userRepo.UpdateRating(tx, req.RevieweeID, rating, int(stats.Count)); err != nil {
			return err
		}

		return s.notificationRepo.Create(tx, newReviewNotification(review))
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "Review created", "review_id", review.ID, "reviewee_id", review.RevieweeID, "rating", review.Rating)
	return dto.NewReviewResponse(review), nil
}

func (s *ReviewServiceImpl) checkListing(db *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) error {
	var ownerID string
	if req.AnnouncementID != nil {
		announcement, err := s.announcementRepo.FindByID(db, *req.AnnouncementID)
		if err != nil {
			return mapRepoError(err)
		}
		ownerID = announcement.UserID
	} else {
		trip, err := s.tripRepo.FindByID(db, *req.TripID)
		if err != nil {
			return mapRepoError(err)
		}
		ownerID = trip.UserID
	}

	if ownerID != reviewerID && ownerID != req.RevieweeID {
		return apperrors.ErrInvalidOperation("review", "Listing does not belong to either party")
	}
	return nil
}

func newReviewNotification(review *models.Review) *models.Notification {
	data, _ := json.Marshal(map[string]interface{}{
		"review_id":   review.ID,
		"reviewer_id": review.ReviewerID,
		"rating":      review.Rating,
	})
	return &models.Notification{
		UserID:  review.RevieweeID,
		Type:    models.NotificationTypeNewReview,
		Title:   "New review",
		Message: fmt.Sprintf("You received a %d-star review", review.Rating),
		Data:    datatypes.JSON(data),
	}
}

func (s *ReviewServiceImpl) ListUserReviews(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	db = withCtx(ctx, db)
	page, pageSize = normalizePage(page, pageSize)

	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, mapRepoError(err)
	}

	reviews, total, err := s.reviewRepo.ListByReviewee(db, userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}

	return &dto.ReviewListResponse{
		Reviews:    items,
		Pagination: dto.NewPagination(total, page, pageSize),
	}, nil
}
