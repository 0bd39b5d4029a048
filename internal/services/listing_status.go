package services

import (
	"encoding/json"

	"shippertrip_backend/internal/auth"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// checkStatusChange - общая проверка для объявлений и поездок:
// менять статус может владелец или админ, и только по разрешенному переходу
func checkStatusChange(userID, role, ownerID string, current, next models.ListingStatus) error {
	if !auth.CanManage(userID, role, ownerID) {
		return apperrors.ErrForbiddenListing
	}
	if !next.IsValid() {
		return apperrors.ErrInvalidStatusTransition.WithDetails(map[string]string{"status": string(next)})
	}
	if !current.CanTransitionTo(next) {
		return transitionError(current, next)
	}
	return nil
}

func transitionError(current, next models.ListingStatus) error {
	return apperrors.ErrInvalidStatusTransition.WithDetails(map[string]string{
		"from": string(current),
		"to":   string(next),
	})
}

// statusNotification - уведомление владельцу, когда статус меняет не он сам
func statusNotification(ownerID, listingType, listingID, title string, status models.ListingStatus) *models.Notification {
	data, _ := json.Marshal(map[string]string{
		"listing_type": listingType,
		"listing_id":   listingID,
		"status":       string(status),
	})
	return &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationTypeStatusChanged,
		Title:   "Listing status changed",
		Message: title + ": " + string(status),
		Data:    datatypes.JSON(data),
	}
}
