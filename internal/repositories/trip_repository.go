package repositories

import (
	"errors"

	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
)

type TripRepository interface {
	Create(db *gorm.DB, trip *models.Trip) error
	FindByID(db *gorm.DB, id string) (*models.Trip, error)
	List(db *gorm.DB, filter ListingFilter) ([]models.Trip, int64, error)
	// ListActive грузит поездки вместе с путешественником (рейтинг, верификация)
	ListActive(db *gorm.DB, filter ListingFilter) ([]models.Trip, error)
	// UpdateStatus меняет статус, только если он все еще равен from
	UpdateStatus(db *gorm.DB, id string, from, to models.ListingStatus) error
	CountByStatus(db *gorm.DB) (map[models.ListingStatus]int64, error)
}

type TripRepositoryImpl struct{}

func NewTripRepository() TripRepository {
	return &TripRepositoryImpl{}
}

func (r *TripRepositoryImpl) Create(db *gorm.DB, trip *models.Trip) error {
	if trip.Status == "" {
		trip.Status = models.ListingStatusActive
	}
	return db.Create(trip).Error
}

func (r *TripRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Trip, error) {
	var trip models.Trip
	if err := db.Preload("User").First(&trip, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepositoryImpl) List(db *gorm.DB, filter ListingFilter) ([]models.Trip, int64, error) {
	var trips []models.Trip
	var total int64

	query := filter.apply(db.Model(&models.Trip{}), "departure_date", "arrival_date")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(newestFirst, Paginate(filter.Page, filter.PageSize)).
		Find(&trips).Error
	return trips, total, err
}

func (r *TripRepositoryImpl) ListActive(db *gorm.DB, filter ListingFilter) ([]models.Trip, error) {
	filter.Statuses = []models.ListingStatus{models.ListingStatusActive}

	var trips []models.Trip
	err := filter.apply(db.Model(&models.Trip{}), "departure_date", "arrival_date").
		Preload("User").
		Scopes(newestFirst, Paginate(filter.Page, filter.PageSize)).
		Find(&trips).Error
	return trips, err
}

func (r *TripRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.ListingStatus) error {
	res := db.Model(&models.Trip{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *TripRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.ListingStatus]int64, error) {
	return countByStatus(db, &models.Trip{})
}
