package dto

import (
	"time"

	"shippertrip_backend/internal/models"
)

// ---------------- Announcements ----------------

type CreateAnnouncementRequest struct {
	Type        string       `json:"type" validate:"required,is-announcement-type"`
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description" validate:"omitempty,max=5000"`
	From        PlaceRequest `json:"from"`
	To          PlaceRequest `json:"to"`
	DateFrom    *time.Time   `json:"date_from"`
	DateTo      *time.Time   `json:"date_to"`
	Reward      float64      `json:"reward" validate:"gt=0"`
	Currency    string       `json:"currency" validate:"omitempty,len=3"`
	Weight      *float64     `json:"weight" validate:"omitempty,gt=0"`
}

type AnnouncementResponse struct {
	ID          string                  `json:"id"`
	Type        models.AnnouncementType `json:"type"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	From        models.Place            `json:"from"`
	To          models.Place            `json:"to"`
	DateFrom    *time.Time              `json:"date_from"`
	DateTo      *time.Time              `json:"date_to"`
	Reward      float64                 `json:"reward"`
	Currency    string                  `json:"currency"`
	Weight      *float64                `json:"weight,omitempty"`
	PhotoURL    *string                 `json:"photo_url,omitempty"`
	Status      models.ListingStatus    `json:"status"`
	UserID      string                  `json:"user_id"`
	User        *PublicUser             `json:"user,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

type AnnouncementListResponse struct {
	Announcements []*AnnouncementResponse `json:"announcements"`
	Pagination
}

// ---------------- Trips ----------------

type CreateTripRequest struct {
	From          PlaceRequest `json:"from"`
	To            PlaceRequest `json:"to"`
	DepartureDate *time.Time   `json:"departure_date" validate:"required"`
	ArrivalDate   *time.Time   `json:"arrival_date" validate:"required"`
	AvailableKg   float64      `json:"available_kg" validate:"gt=0,max=1000"`
	PricePerKg    float64      `json:"price_per_kg" validate:"gte=0"`
	Currency      string       `json:"currency" validate:"omitempty,len=3"`
	Notes         string       `json:"notes" validate:"omitempty,max=2000"`
}

type TripResponse struct {
	ID            string               `json:"id"`
	From          models.Place         `json:"from"`
	To            models.Place         `json:"to"`
	DepartureDate *time.Time           `json:"departure_date"`
	ArrivalDate   *time.Time           `json:"arrival_date"`
	AvailableKg   float64              `json:"available_kg"`
	PricePerKg    float64              `json:"price_per_kg"`
	Currency      string               `json:"currency"`
	Notes         string               `json:"notes"`
	Status        models.ListingStatus `json:"status"`
	UserID        string               `json:"user_id"`
	User          *PublicUser          `json:"user,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type TripListResponse struct {
	Trips []*TripResponse `json:"trips"`
	Pagination
}

// ---------------- Builders ----------------

func NewPublicUser(u *models.User) *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		IsVerified:   u.IsVerified,
		Rating:       u.Rating,
		ReviewsCount: u.ReviewsCount,
	}
}

func NewAnnouncementResponse(a *models.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		From:        a.From,
		To:          a.To,
		DateFrom:    a.DateFrom,
		DateTo:      a.DateTo,
		Reward:      a.Reward,
		Currency:    a.Currency,
		Weight:      a.Weight,
		PhotoURL:    a.PhotoURL,
		Status:      a.Status,
		UserID:      a.UserID,
		User:        NewPublicUser(a.User),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewTripResponse(t *models.Trip) *TripResponse {
	return &TripResponse{
		ID:            t.ID,
		From:          t.From,
		To:            t.To,
		DepartureDate: t.DepartureDate,
		ArrivalDate:   t.ArrivalDate,
		AvailableKg:   t.AvailableKg,
		PricePerKg:    t.PricePerKg,
		Currency:      t.Currency,
		Notes:         t.Notes,
		Status:        t.Status,
		UserID:        t.UserID,
		User:          NewPublicUser(t.User),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
