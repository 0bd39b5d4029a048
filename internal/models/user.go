package models

type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(120);not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`

	// Rating - среднее по полученным отзывам, nil пока отзывов нет
	Rating       *float64 `json:"rating,omitempty"`
	ReviewsCount int      `gorm:"default:0" json:"reviews_count"`
}
