package models

import "time"

// Trip - поездка путешественника со свободным местом в багаже
type Trip struct {
	BaseModel
	UserID        string        `gorm:"type:uuid;not null;index" json:"user_id"`
	From          Place         `gorm:"embedded;embeddedPrefix:from_" json:"from"`
	To            Place         `gorm:"embedded;embeddedPrefix:to_" json:"to"`
	DepartureDate *time.Time    `json:"departure_date"`
	ArrivalDate   *time.Time    `json:"arrival_date"`
	AvailableKg   float64       `gorm:"not null" json:"available_kg"`
	PricePerKg    float64       `gorm:"not null;default:0" json:"price_per_kg"`
	Currency      string        `gorm:"type:varchar(3);default:'EUR'" json:"currency"`
	Notes         string        `json:"notes"`
	Status        ListingStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
