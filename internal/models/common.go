package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate проставляет UUID, если ID не задан вызывающим кодом
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Place - город и страна точки маршрута.
// В таблицах хранится плоско: from_city, from_country, to_city, to_country.
type Place struct {
	City    string `gorm:"type:varchar(120);not null" json:"city"`
	Country string `gorm:"type:varchar(120)" json:"country"`
}
