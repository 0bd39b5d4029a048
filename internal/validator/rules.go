package validator

import (
	"log"

	"shippertrip_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила на основе statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-alert-type", validateAlertType)
	mustRegister("is-listing-status", validateListingStatus)
	mustRegister("is-announcement-type", validateAnnouncementType)
}

// Пустые значения не проверяем, для этого есть 'required'

func validateAlertType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.AlertType(value).IsValid()
}

func validateListingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ListingStatus(value).IsValid()
}

func validateAnnouncementType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.AnnouncementType(value).IsValid()
}
