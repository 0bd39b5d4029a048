package models

type Review struct {
	BaseModel
	ReviewerID     string  `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	RevieweeID     string  `gorm:"type:uuid;not null;index" json:"reviewee_id"`
	AnnouncementID *string `gorm:"type:uuid;index" json:"announcement_id,omitempty"`
	TripID         *string `gorm:"type:uuid;index" json:"trip_id,omitempty"`
	Rating         int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment        string  `json:"comment"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}
