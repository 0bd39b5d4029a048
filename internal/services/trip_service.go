package services

import (
	"context"
	"errors"
	"strings"

	"shippertrip_backend/internal/algorithms"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TripService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTripRequest) (*dto.TripResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*dto.TripResponse, error)
	List(ctx context.Context, db *gorm.DB, query *dto.ListingQuery) (*dto.TripListResponse, error)
	ListMine(ctx context.Context, db *gorm.DB, userID string, query *dto.ListingQuery) (*dto.TripListResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, role, id string, status models.ListingStatus) (*dto.TripResponse, error)
}

type TripServiceImpl struct {
	tripRepo         repositories.TripRepository
	notificationRepo repositories.NotificationRepository
}

func NewTripService(tripRepo repositories.TripRepository, notificationRepo repositories.NotificationRepository) TripService {
	return &TripServiceImpl{
		tripRepo:         tripRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *TripServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTripRequest) (*dto.TripResponse, error) {
	trip := &models.Trip{
		UserID:        userID,
		From:          trimmedPlace(req.From),
		To:            trimmedPlace(req.To),
		DepartureDate: req.DepartureDate,
		ArrivalDate:   req.ArrivalDate,
		AvailableKg:   req.AvailableKg,
		PricePerKg:    req.PricePerKg,
		Currency:      strings.ToUpper(req.Currency),
		Notes:         req.Notes,
		Status:        models.ListingStatusActive,
	}
	if trip.Currency == "" {
		trip.Currency = "EUR"
	}

	if err := algorithms.ValidateTripSide(tripSide(trip)); err != nil {
		return nil, apperrors.ErrInvalidInput(err)
	}

	if err := s.tripRepo.Create(withCtx(ctx, db), trip); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Trip created", "trip_id", trip.ID, "from", trip.From.City, "to", trip.To.City)
	return dto.NewTripResponse(trip), nil
}

func (s *TripServiceImpl) GetByID(ctx context.Context, db *gorm.DB, id string) (*dto.TripResponse, error) {
	trip, err := s.tripRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewTripResponse(trip), nil
}

func (s *TripServiceImpl) List(ctx context.Context, db *gorm.DB, query *dto.ListingQuery) (*dto.TripListResponse, error) {
	filter, err := listingFilterFromQuery(query)
	if err != nil {
		return nil, err
	}
	filter.Type = nil
	if len(filter.Statuses) == 0 {
		filter.Statuses = []models.ListingStatus{models.ListingStatusActive}
	}
	return s.list(ctx, db, filter)
}

func (s *TripServiceImpl) ListMine(ctx context.Context, db *gorm.DB, userID string, query *dto.ListingQuery) (*dto.TripListResponse, error) {
	filter, err := listingFilterFromQuery(query)
	if err != nil {
		return nil, err
	}
	filter.Type = nil
	filter.UserID = userID
	return s.list(ctx, db, filter)
}

func (s *TripServiceImpl) list(ctx context.Context, db *gorm.DB, filter repositories.ListingFilter) (*dto.TripListResponse, error) {
	trips, total, err := s.tripRepo.List(withCtx(ctx, db), filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.TripResponse, 0, len(trips))
	for i := range trips {
		items = append(items, dto.NewTripResponse(&trips[i]))
	}

	return &dto.TripListResponse{
		Trips:      items,
		Pagination: dto.NewPagination(total, filter.Page, filter.PageSize),
	}, nil
}

func (s *TripServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, userID, role, id string, status models.ListingStatus) (*dto.TripResponse, error) {
	db = withCtx(ctx, db)

	trip, err := s.tripRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := checkStatusChange(userID, role, trip.UserID, trip.Status, status); err != nil {
		return nil, err
	}

	if err := s.tripRepo.UpdateStatus(db, id, trip.Status, status); err != nil {
		if !errors.Is(err, repositories.ErrStatusChanged) {
			return nil, mapRepoError(err)
		}
		// статус успели поменять (другой запрос или воркер истечения)
		fresh, findErr := s.tripRepo.FindByID(db, id)
		if findErr != nil {
			return nil, mapRepoError(findErr)
		}
		return nil, transitionError(fresh.Status, status)
	}
	trip.Status = status

	if userID != trip.UserID {
		title := trip.From.City + " - " + trip.To.City
		n := statusNotification(trip.UserID, dto.MatchTypeTrip, trip.ID, title, status)
		if err := s.notificationRepo.Create(db, n); err != nil {
			logger.CtxWarn(ctx, "Failed to notify owner about status change", "trip_id", id, "error", err)
		}
	}

	return dto.NewTripResponse(trip), nil
}
