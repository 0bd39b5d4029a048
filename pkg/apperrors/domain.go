package apperrors

import (
	"net/http"
)

// ErrNotFound - фабрика для ошибки "не найдено" (404) поверх ошибки репозитория
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrInvalidInput - структурно неверные входные данные для скоринга:
// нет города, перевернутое окно дат, рейтинг вне диапазона.
func ErrInvalidInput(err error) *AppError {
	return Wrap(err, CodeInvalidInput, "matching", "Invalid input: "+err.Error(), http.StatusBadRequest)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Alerts ---

// ErrAlertNotFound - алерт не существует или принадлежит другому пользователю.
// Чужой алерт намеренно неотличим от несуществующего.
var ErrAlertNotFound = New(
	CodeNotFound,
	"alert",
	"Alert not found",
	http.StatusNotFound,
)

// ErrInvalidAlert - тип алерта не sender и не shipper
var ErrInvalidAlert = New(
	CodeInvalidAlert,
	"alert",
	"Alert type must be 'sender' or 'shipper'",
	http.StatusBadRequest,
)

// --- Listings ---

var ErrAnnouncementNotFound = New(
	CodeNotFound,
	"announcement",
	"Announcement not found",
	http.StatusNotFound,
)

var ErrTripNotFound = New(
	CodeNotFound,
	"trip",
	"Trip not found",
	http.StatusNotFound,
)

// ErrInvalidStatusTransition - переход статуса запрещен (completed/cancelled терминальные)
var ErrInvalidStatusTransition = New(
	CodeInvalidStatus,
	"listing",
	"Status transition is not allowed",
	http.StatusConflict,
)

// ErrForbiddenListing - операция над чужим объявлением или поездкой
var ErrForbiddenListing = New(
	CodeForbidden,
	"listing",
	"You are not the owner of this listing",
	http.StatusForbidden,
)

// --- Reviews ---

var ErrSelfReview = New(
	CodeInvalidOperation,
	"review",
	"You cannot review yourself",
	http.StatusBadRequest,
)

var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"Review for this listing already exists",
	http.StatusConflict,
)

// --- Notifications ---

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// --- Auth & Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
