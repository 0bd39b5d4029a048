package models

import "time"

// Announcement - заявка отправителя на доставку посылки или покупку
type Announcement struct {
	BaseModel
	UserID      string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        AnnouncementType `gorm:"type:varchar(20);not null" json:"type"`
	Title       string           `gorm:"type:varchar(200);not null" json:"title"`
	Description string           `json:"description"`
	From        Place            `gorm:"embedded;embeddedPrefix:from_" json:"from"`
	To          Place            `gorm:"embedded;embeddedPrefix:to_" json:"to"`
	DateFrom    *time.Time       `json:"date_from"`
	DateTo      *time.Time       `json:"date_to"`
	Reward      float64          `gorm:"not null" json:"reward"`
	Currency    string           `gorm:"type:varchar(3);default:'EUR'" json:"currency"`
	Weight      *float64         `json:"weight,omitempty"`
	PhotoURL    *string          `json:"photo_url,omitempty"`
	Status      ListingStatus    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
