package services

import (
	"context"
	"fmt"
	"strings"

	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AlertService - сохраненные поиски. Алерт нельзя изменить, только удалить.
type AlertService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateAlertRequest) (*dto.AlertResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) (*dto.AlertListResponse, error)
	Get(ctx context.Context, db *gorm.DB, userID, alertID string) (*dto.AlertResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, alertID string) error
}

type AlertServiceImpl struct {
	alertRepo repositories.AlertRepository
}

func NewAlertService(alertRepo repositories.AlertRepository) AlertService {
	return &AlertServiceImpl{alertRepo: alertRepo}
}

func (s *AlertServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	alertType := models.AlertType(req.Type)
	if !alertType.IsValid() {
		return nil, apperrors.ErrInvalidAlert
	}

	fromCity, err := optionalCity("from_city", req.FromCity)
	if err != nil {
		return nil, err
	}
	toCity, err := optionalCity("to_city", req.ToCity)
	if err != nil {
		return nil, err
	}

	if req.DateFrom != nil && req.DateTo != nil && req.DateFrom.After(*req.DateTo) {
		return nil, apperrors.ErrInvalidInput(fmt.Errorf("date_from is after date_to"))
	}

	alert := &models.Alert{
		UserID:   userID,
		Type:     alertType,
		FromCity: fromCity,
		ToCity:   toCity,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	}

	if err := s.alertRepo.Create(withCtx(ctx, db), alert); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Alert created", "alert_id", alert.ID, "type", alert.Type)
	return dto.NewAlertResponse(alert), nil
}

// optionalCity: nil остается nil, пустая строка после trim - ошибка
func optionalCity(field string, city *string) (*string, error) {
	if city == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*city)
	if trimmed == "" {
		return nil, apperrors.ErrInvalidInput(fmt.Errorf("%s must not be blank", field))
	}
	return &trimmed, nil
}

func (s *AlertServiceImpl) List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) (*dto.AlertListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	alerts, total, err := s.alertRepo.ListByUser(withCtx(ctx, db), userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, dto.NewAlertResponse(&alerts[i]))
	}

	return &dto.AlertListResponse{
		Alerts:     items,
		Pagination: dto.NewPagination(total, page, pageSize),
	}, nil
}

func (s *AlertServiceImpl) Get(ctx context.Context, db *gorm.DB, userID, alertID string) (*dto.AlertResponse, error) {
	alert, err := s.ownAlert(withCtx(ctx, db), userID, alertID)
	if err != nil {
		return nil, err
	}
	return dto.NewAlertResponse(alert), nil
}

func (s *AlertServiceImpl) Delete(ctx context.Context, db *gorm.DB, userID, alertID string) error {
	db = withCtx(ctx, db)

	if _, err := s.ownAlert(db, userID, alertID); err != nil {
		return err
	}
	if err := s.alertRepo.Delete(db, alertID); err != nil {
		return mapRepoError(err)
	}

	logger.CtxInfo(ctx, "Alert deleted", "alert_id", alertID)
	return nil
}

func (s *AlertServiceImpl) ownAlert(db *gorm.DB, userID, alertID string) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(db, alertID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if alert.UserID != userID {
		return nil, apperrors.ErrAlertNotFound
	}
	return alert, nil
}
