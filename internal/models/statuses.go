package models

type UserStatus string
type UserRole string
type ListingStatus string
type AnnouncementType string
type AlertType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	// Жизненный цикл общий для объявлений и поездок
	ListingStatusActive    ListingStatus = "active"
	ListingStatusMatched   ListingStatus = "matched"
	ListingStatusCompleted ListingStatus = "completed"
	ListingStatusCancelled ListingStatus = "cancelled"

	AnnouncementTypePackage  AnnouncementType = "package"
	AnnouncementTypeShopping AnnouncementType = "shopping"

	// sender-алерт ищет поездки, shipper-алерт ищет объявления
	AlertTypeSender  AlertType = "sender"
	AlertTypeShipper AlertType = "shipper"
)

// IsValid сообщает, входит ли статус в известный набор
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusMatched, ListingStatusCompleted, ListingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo описывает допустимые переходы статусов объявлений и поездок.
// completed и cancelled - терминальные.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	switch s {
	case ListingStatusActive:
		return next == ListingStatusMatched || next == ListingStatusCompleted || next == ListingStatusCancelled
	case ListingStatusMatched:
		return next == ListingStatusActive || next == ListingStatusCompleted || next == ListingStatusCancelled
	default:
		return false
	}
}

func (t AnnouncementType) IsValid() bool {
	return t == AnnouncementTypePackage || t == AnnouncementTypeShopping
}

func (t AlertType) IsValid() bool {
	return t == AlertTypeSender || t == AlertTypeShipper
}
