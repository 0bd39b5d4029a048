package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// withCtx привязывает контекст запроса к соединению.
// nil db пропускается как есть (юнит-тесты с моками репозиториев).
func withCtx(ctx context.Context, db *gorm.DB) *gorm.DB {
	if db == nil {
		return nil
	}
	return db.WithContext(ctx)
}

// mapRepoError переводит sentinel-ошибки репозиториев в AppError
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrAlertNotFound):
		return apperrors.ErrAlertNotFound
	case errors.Is(err, repositories.ErrAnnouncementNotFound):
		return apperrors.ErrAnnouncementNotFound
	case errors.Is(err, repositories.ErrTripNotFound):
		return apperrors.ErrTripNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	case errors.Is(err, repositories.ErrReviewAlreadyExists):
		return apperrors.ErrReviewAlreadyExists
	case errors.Is(err, repositories.ErrEmailAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	default:
		return apperrors.InternalError(err)
	}
}

// inTransaction выполняет fn в транзакции; без соединения (тесты на моках)
// fn вызывается напрямую
func inTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = repositories.DefaultPageSize
	}
	if pageSize > repositories.MaxPageSize {
		pageSize = repositories.MaxPageSize
	}
	return page, pageSize
}

const queryDateLayout = "2006-01-02"

// listingFilterFromQuery разбирает фильтры из query string.
// date_to включает весь указанный день.
func listingFilterFromQuery(q *dto.ListingQuery) (repositories.ListingFilter, error) {
	filter := repositories.ListingFilter{}

	if city := strings.TrimSpace(q.FromCity); city != "" {
		filter.FromCity = &city
	}
	if city := strings.TrimSpace(q.ToCity); city != "" {
		filter.ToCity = &city
	}

	if q.DateFrom != "" {
		from, err := time.Parse(queryDateLayout, q.DateFrom)
		if err != nil {
			return filter, apperrors.ErrInvalidInput(fmt.Errorf("date_from: %w", err))
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := time.Parse(queryDateLayout, q.DateTo)
		if err != nil {
			return filter, apperrors.ErrInvalidInput(fmt.Errorf("date_to: %w", err))
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return filter, apperrors.ErrInvalidInput(fmt.Errorf("date_from is after date_to"))
	}

	if q.Status != "" {
		filter.Statuses = []models.ListingStatus{models.ListingStatus(q.Status)}
	}
	if q.Type != "" {
		t := models.AnnouncementType(q.Type)
		filter.Type = &t
	}

	filter.Page, filter.PageSize = normalizePage(q.Page, q.PageSize)
	return filter, nil
}

func trimmedPlace(p dto.PlaceRequest) models.Place {
	return models.Place{
		City:    strings.TrimSpace(p.City),
		Country: strings.TrimSpace(p.Country),
	}
}
