package dto

import (
	"time"

	"shippertrip_backend/internal/models"
)

type CreateAlertRequest struct {
	Type     string     `json:"type" validate:"required,is-alert-type"`
	FromCity *string    `json:"from_city" validate:"omitempty,min=1,max=120"`
	ToCity   *string    `json:"to_city" validate:"omitempty,min=1,max=120"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
}

type AlertResponse struct {
	ID        string           `json:"id"`
	Type      models.AlertType `json:"type"`
	FromCity  *string          `json:"from_city"`
	ToCity    *string          `json:"to_city"`
	DateFrom  *time.Time       `json:"date_from"`
	DateTo    *time.Time       `json:"date_to"`
	CreatedAt time.Time        `json:"created_at"`
}

type AlertListResponse struct {
	Alerts []*AlertResponse `json:"alerts"`
	Pagination
}

func NewAlertResponse(a *models.Alert) *AlertResponse {
	return &AlertResponse{
		ID:        a.ID,
		Type:      a.Type,
		FromCity:  a.FromCity,
		ToCity:    a.ToCity,
		DateFrom:  a.DateFrom,
		DateTo:    a.DateTo,
		CreatedAt: a.CreatedAt,
	}
}
