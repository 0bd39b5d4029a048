package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationTypeAlertMatch    = "alert_match"
	NotificationTypeNewReview     = "new_review"
	NotificationTypeStatusChanged = "status_changed"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"`
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data"` // {"alert_id": "...", "listing_id": "...", "score": 90}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}
