package models

import "time"

// Alert - сохраненный поиск. Создается пользователем, не редактируется,
// только удаляется.
type Alert struct {
	BaseModel
	UserID   string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Type     AlertType  `gorm:"type:varchar(20);not null" json:"type"`
	FromCity *string    `gorm:"type:varchar(120)" json:"from_city"`
	ToCity   *string    `gorm:"type:varchar(120)" json:"to_city"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// AlertDelivery фиксирует, что по паре (алерт, объявление/поездка)
// уведомление уже отправлено
type AlertDelivery struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	AlertID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_alert_listing" json:"alert_id"`
	ListingID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_alert_listing" json:"listing_id"`
	ListingType string    `gorm:"type:varchar(20);not null" json:"listing_type"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}
