package repositories

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrTripNotFound         = errors.New("trip not found")
	ErrAlertNotFound        = errors.New("alert not found")
	ErrReviewAlreadyExists  = errors.New("review already exists for this listing")
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrStatusChanged - строка не найдена или статус уже изменился
	ErrStatusChanged        = errors.New("listing status changed")
)
