package dto

import (
	"time"

	"shippertrip_backend/internal/models"
)

// CreateReviewRequest - отзыв привязан ровно к одному листингу
type CreateReviewRequest struct {
	RevieweeID     string  `json:"reviewee_id" validate:"required"`
	AnnouncementID *string `json:"announcement_id,omitempty"`
	TripID         *string `json:"trip_id,omitempty"`
	Rating         int     `json:"rating" validate:"required,min=1,max=5"`
	Comment        string  `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID             string      `json:"id"`
	ReviewerID     string      `json:"reviewer_id"`
	RevieweeID     string      `json:"reviewee_id"`
	AnnouncementID *string     `json:"announcement_id,omitempty"`
	TripID         *string     `json:"trip_id,omitempty"`
	Rating         int         `json:"rating"`
	Comment        string      `json:"comment"`
	Reviewer       *PublicUser `json:"reviewer,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
	Pagination
}

func NewReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:             r.ID,
		ReviewerID:     r.ReviewerID,
		RevieweeID:     r.RevieweeID,
		AnnouncementID: r.AnnouncementID,
		TripID:         r.TripID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		Reviewer:       NewPublicUser(r.Reviewer),
		CreatedAt:      r.CreatedAt,
	}
}
