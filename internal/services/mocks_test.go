package services

import (
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// ---------------- Alerts ----------------

type mockAlertRepo struct{ mock.Mock }

func (m *mockAlertRepo) Create(db *gorm.DB, alert *models.Alert) error {
	return m.Called(db, alert).Error(0)
}

func (m *mockAlertRepo) FindByID(db *gorm.DB, id string) (*models.Alert, error) {
	args := m.Called(db, id)
	alert, _ := args.Get(0).(*models.Alert)
	return alert, args.Error(1)
}

func (m *mockAlertRepo) ListByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Alert, int64, error) {
	args := m.Called(db, userID, page, pageSize)
	alerts, _ := args.Get(0).([]models.Alert)
	return alerts, args.Get(1).(int64), args.Error(2)
}

func (m *mockAlertRepo) ListBatch(db *gorm.DB, afterID string, limit int) ([]models.Alert, error) {
	args := m.Called(db, afterID, limit)
	alerts, _ := args.Get(0).([]models.Alert)
	return alerts, args.Error(1)
}

func (m *mockAlertRepo) Delete(db *gorm.DB, id string) error {
	return m.Called(db, id).Error(0)
}

func (m *mockAlertRepo) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

// ---------------- Announcements ----------------

type mockAnnouncementRepo struct{ mock.Mock }

func (m *mockAnnouncementRepo) Create(db *gorm.DB, a *models.Announcement) error {
	return m.Called(db, a).Error(0)
}

func (m *mockAnnouncementRepo) FindByID(db *gorm.DB, id string) (*models.Announcement, error) {
	args := m.Called(db, id)
	a, _ := args.Get(0).(*models.Announcement)
	return a, args.Error(1)
}

func (m *mockAnnouncementRepo) List(db *gorm.DB, filter repositories.ListingFilter) ([]models.Announcement, int64, error) {
	args := m.Called(db, filter)
	list, _ := args.Get(0).([]models.Announcement)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockAnnouncementRepo) ListActive(db *gorm.DB, filter repositories.ListingFilter) ([]models.Announcement, error) {
	args := m.Called(db, filter)
	list, _ := args.Get(0).([]models.Announcement)
	return list, args.Error(1)
}

func (m *mockAnnouncementRepo) UpdateStatus(db *gorm.DB, id string, from, to models.ListingStatus) error {
	return m.Called(db, id, from, to).Error(0)
}

func (m *mockAnnouncementRepo) UpdatePhoto(db *gorm.DB, id, photoURL string) error {
	return m.Called(db, id, photoURL).Error(0)
}

func (m *mockAnnouncementRepo) CountByStatus(db *gorm.DB) (map[models.ListingStatus]int64, error) {
	args := m.Called(db)
	counts, _ := args.Get(0).(map[models.ListingStatus]int64)
	return counts, args.Error(1)
}

// ---------------- Trips ----------------

type mockTripRepo struct{ mock.Mock }

func (m *mockTripRepo) Create(db *gorm.DB, t *models.Trip) error {
	return m.Called(db, t).Error(0)
}

func (m *mockTripRepo) FindByID(db *gorm.DB, id string) (*models.Trip, error) {
	args := m.Called(db, id)
	t, _ := args.Get(0).(*models.Trip)
	return t, args.Error(1)
}

func (m *mockTripRepo) List(db *gorm.DB, filter repositories.ListingFilter) ([]models.Trip, int64, error) {
	args := m.Called(db, filter)
	list, _ := args.Get(0).([]models.Trip)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockTripRepo) ListActive(db *gorm.DB, filter repositories.ListingFilter) ([]models.Trip, error) {
	args := m.Called(db, filter)
	list, _ := args.Get(0).([]models.Trip)
	return list, args.Error(1)
}

func (m *mockTripRepo) UpdateStatus(db *gorm.DB, id string, from, to models.ListingStatus) error {
	return m.Called(db, id, from, to).Error(0)
}

func (m *mockTripRepo) CountByStatus(db *gorm.DB) (map[models.ListingStatus]int64, error) {
	args := m.Called(db)
	counts, _ := args.Get(0).(map[models.ListingStatus]int64)
	return counts, args.Error(1)
}

// ---------------- Users ----------------

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(db *gorm.DB, user *models.User) error {
	return m.Called(db, user).Error(0)
}

func (m *mockUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	args := m.Called(db, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	args := m.Called(db, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByIDs(db *gorm.DB, ids []string) (map[string]*models.User, error) {
	args := m.Called(db, ids)
	users, _ := args.Get(0).(map[string]*models.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) LockForUpdate(db *gorm.DB, id string) error {
	return m.Called(db, id).Error(0)
}

func (m *mockUserRepo) UpdateRating(db *gorm.DB, userID string, rating *float64, reviewsCount int) error {
	return m.Called(db, userID, rating, reviewsCount).Error(0)
}

func (m *mockUserRepo) SetVerified(db *gorm.DB, userID string, verified bool) error {
	return m.Called(db, userID, verified).Error(0)
}

func (m *mockUserRepo) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) CountVerified(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

// ---------------- Reviews ----------------

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(db *gorm.DB, review *models.Review) error {
	return m.Called(db, review).Error(0)
}

func (m *mockReviewRepo) Exists(db *gorm.DB, reviewerID, revieweeID string, announcementID, tripID *string) (bool, error) {
	args := m.Called(db, reviewerID, revieweeID, announcementID, tripID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByReviewee(db *gorm.DB, revieweeID string, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(db, revieweeID, page, pageSize)
	list, _ := args.Get(0).([]models.Review)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepo) RatingStats(db *gorm.DB, revieweeID string) (*repositories.RatingStats, error) {
	args := m.Called(db, revieweeID)
	stats, _ := args.Get(0).(*repositories.RatingStats)
	return stats, args.Error(1)
}

// ---------------- Notifications ----------------

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(db *gorm.DB, n *models.Notification) error {
	return m.Called(db, n).Error(0)
}

func (m *mockNotificationRepo) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	args := m.Called(db, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *mockNotificationRepo) ListByUser(db *gorm.DB, userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	args := m.Called(db, userID, unreadOnly, page, pageSize)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) MarkAsRead(db *gorm.DB, id string) error {
	return m.Called(db, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(db *gorm.DB, userID string) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}
