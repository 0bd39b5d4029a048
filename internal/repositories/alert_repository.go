package repositories

import (
	"errors"

	"shippertrip_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository interface {
	Create(db *gorm.DB, alert *models.Alert) error
	FindByID(db *gorm.DB, id string) (*models.Alert, error)
	ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Alert, int64, error)
	// ListBatch - постраничный обход всех алертов для воркера (keyset по id)
	ListBatch(db *gorm.DB, afterID string, limit int) ([]models.Alert, error)
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)
}

type AlertRepositoryImpl struct{}

func NewAlertRepository() AlertRepository {
	return &AlertRepositoryImpl{}
}

func (r *AlertRepositoryImpl) Create(db *gorm.DB, alert *models.Alert) error {
	return db.Create(alert).Error
}

func (r *AlertRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Alert, error) {
	var alert models.Alert
	if err := db.Preload("User").First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *AlertRepositoryImpl) ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Alert, int64, error) {
	var alerts []models.Alert
	var total int64

	query := db.Model(&models.Alert{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(newestFirst, Paginate(page, pageSize)).Find(&alerts).Error
	return alerts, total, err
}

func (r *AlertRepositoryImpl) ListBatch(db *gorm.DB, afterID string, limit int) ([]models.Alert, error) {
	var alerts []models.Alert

	query := db.Model(&models.Alert{}).Preload("User")
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}
	err := query.Order("id ASC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("alert_id = ?", id).Delete(&models.AlertDelivery{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Alert{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlertNotFound
		}
		return nil
	})
}

func (r *AlertRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Alert{}).Count(&count).Error
	return count, err
}

// AlertDeliveryRepository хранит отметки об уже отправленных уведомлениях
type AlertDeliveryRepository interface {
	// Record вставляет отметку; false - если пара (алерт, листинг) уже была
	Record(db *gorm.DB, delivery *models.AlertDelivery) (bool, error)
}

type AlertDeliveryRepositoryImpl struct{}

func NewAlertDeliveryRepository() AlertDeliveryRepository {
	return &AlertDeliveryRepositoryImpl{}
}

func (r *AlertDeliveryRepositoryImpl) Record(db *gorm.DB, delivery *models.AlertDelivery) (bool, error) {
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "alert_id"}, {Name: "listing_id"}},
		DoNothing: true,
	}).Create(delivery)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
