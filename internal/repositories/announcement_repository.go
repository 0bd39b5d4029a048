package repositories

import (
	"errors"

	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(db *gorm.DB, announcement *models.Announcement) error
	FindByID(db *gorm.DB, id string) (*models.Announcement, error)
	List(db *gorm.DB, filter ListingFilter) ([]models.Announcement, int64, error)
	// ListActive - кандидаты для матчинга, всегда только status = active
	ListActive(db *gorm.DB, filter ListingFilter) ([]models.Announcement, error)
	// UpdateStatus меняет статус, только если он все еще равен from
	UpdateStatus(db *gorm.DB, id string, from, to models.ListingStatus) error
	UpdatePhoto(db *gorm.DB, id, photoURL string) error
	CountByStatus(db *gorm.DB) (map[models.ListingStatus]int64, error)
}

type AnnouncementRepositoryImpl struct{}

func NewAnnouncementRepository() AnnouncementRepository {
	return &AnnouncementRepositoryImpl{}
}

func (r *AnnouncementRepositoryImpl) Create(db *gorm.DB, announcement *models.Announcement) error {
	if announcement.Status == "" {
		announcement.Status = models.ListingStatusActive
	}
	return db.Create(announcement).Error
}

func (r *AnnouncementRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := db.Preload("User").First(&announcement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *AnnouncementRepositoryImpl) List(db *gorm.DB, filter ListingFilter) ([]models.Announcement, int64, error) {
	var announcements []models.Announcement
	var total int64

	query := filter.apply(db.Model(&models.Announcement{}), "date_from", "date_to")
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(newestFirst, Paginate(filter.Page, filter.PageSize)).
		Find(&announcements).Error
	return announcements, total, err
}

func (r *AnnouncementRepositoryImpl) ListActive(db *gorm.DB, filter ListingFilter) ([]models.Announcement, error) {
	filter.Statuses = []models.ListingStatus{models.ListingStatusActive}

	var announcements []models.Announcement
	query := filter.apply(db.Model(&models.Announcement{}), "date_from", "date_to")
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	err := query.Preload("User").
		Scopes(newestFirst, Paginate(filter.Page, filter.PageSize)).
		Find(&announcements).Error
	return announcements, err
}

func (r *AnnouncementRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.ListingStatus) error {
	res := db.Model(&models.Announcement{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) UpdatePhoto(db *gorm.DB, id, photoURL string) error {
	res := db.Model(&models.Announcement{}).Where("id = ?", id).Update("photo_url", photoURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.ListingStatus]int64, error) {
	return countByStatus(db, &models.Announcement{})
}

type statusCount struct {
	Status models.ListingStatus
	Count  int64
}

func countByStatus(db *gorm.DB, model interface{}) (map[models.ListingStatus]int64, error) {
	var rows []statusCount
	err := db.Model(model).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[models.ListingStatus]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}
