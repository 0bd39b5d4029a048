package workers

import (
	"context"
	"errors"
	"testing"

	"shippertrip_backend/internal/email"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

type mockDeliveryRepo struct{ mock.Mock }

func (m *mockDeliveryRepo) Record(db *gorm.DB, delivery *models.AlertDelivery) (bool, error) {
	args := m.Called(db, delivery)
	return args.Bool(0), args.Error(1)
}

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

type mockMatching struct{ mock.Mock }

func (m *mockMatching) FindMatches(ctx context.Context, db *gorm.DB, userID, alertID string) (*dto.AlertMatchesResponse, error) {
	args := m.Called(ctx, db, userID, alertID)
	res, _ := args.Get(0).(*dto.AlertMatchesResponse)
	return res, args.Error(1)
}

func (m *mockMatching) EvaluateAlert(ctx context.Context, db *gorm.DB, alert *models.Alert) (*dto.AlertMatchesResponse, error) {
	args := m.Called(ctx, db, alert)
	res, _ := args.Get(0).(*dto.AlertMatchesResponse)
	return res, args.Error(1)
}

func (m *mockMatching) ScorePair(ctx context.Context, db *gorm.DB, announcementID, tripID string) (*dto.CompatibilityResult, error) {
	args := m.Called(ctx, db, announcementID, tripID)
	res, _ := args.Get(0).(*dto.CompatibilityResult)
	return res, args.Error(1)
}

func (m *mockMatching) MatchesForAnnouncement(ctx context.Context, db *gorm.DB, announcementID string, limit int) (*dto.ListingMatchesResponse, error) {
	args := m.Called(ctx, db, announcementID, limit)
	res, _ := args.Get(0).(*dto.ListingMatchesResponse)
	return res, args.Error(1)
}

func (m *mockMatching) MatchesForTrip(ctx context.Context, db *gorm.DB, tripID string, limit int) (*dto.ListingMatchesResponse, error) {
	args := m.Called(ctx, db, tripID, limit)
	res, _ := args.Get(0).(*dto.ListingMatchesResponse)
	return res, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, e *email.Email) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockMailer) SendTemplate(ctx context.Context, to []string, subject, templateName string, data email.TemplateData) error {
	return m.Called(ctx, to, subject, templateName, data).Error(0)
}

func (m *mockMailer) Close() error {
	return m.Called().Error(0)
}

type workerFixture struct {
	alerts        *mockAlertRepo
	deliveries    *mockDeliveryRepo
	notifications *mockNotificationRepo
	matching      *mockMatching
	mailer        *mockMailer
	worker        *AlertWorker
}

func newWorkerFixture(opts AlertWorkerOptions) *workerFixture {
	f := &workerFixture{
		alerts:        new(mockAlertRepo),
		deliveries:    new(mockDeliveryRepo),
		notifications: new(mockNotificationRepo),
		matching:      new(mockMatching),
		mailer:        new(mockMailer),
	}
	f.worker = NewAlertWorker(nil, f.alerts, f.deliveries, f.notifications, f.matching, f.mailer, opts)
	return f
}

func senderAlert(id string) models.Alert {
	return models.Alert{
		BaseModel: models.BaseModel{ID: id},
		UserID:    "owner",
		Type:      models.AlertTypeSender,
		User:      &models.User{BaseModel: models.BaseModel{ID: "owner"}, Name: "Anna", Email: "anna@example.com"},
	}
}

func tripMatch(id string, score int) *dto.RankedMatch {
	return &dto.RankedMatch{
		ID:    id,
		Type:  dto.MatchTypeTrip,
		Score: score,
		Trip: &dto.TripResponse{
			ID:   id,
			From: models.Place{City: "Paris"},
			To:   models.Place{City: "Lyon"},
		},
	}
}

func TestAlertWorker_NotifiesNewMatchesAboveThreshold(t *testing.T) {
	f := newWorkerFixture(AlertWorkerOptions{NotifyMinScore: 60, BatchSize: 10, PublicURL: "https://app.example"})

	alert := senderAlert("al-1")
	f.alerts.On("ListBatch", mock.Anything, "", 10).Return([]models.Alert{alert}, nil)
	f.matching.On("EvaluateAlert", mock.Anything, mock.Anything, mock.Anything).Return(&dto.AlertMatchesResponse{
		AlertID:   "al-1",
		MatchType: dto.MatchTypeTrip,
		Matches:   []*dto.RankedMatch{tripMatch("t-new", 90), tripMatch("t-seen", 70), tripMatch("t-low", 50)},
	}, nil)

	f.deliveries.On("Record", mock.Anything, mock.MatchedBy(func(d *models.AlertDelivery) bool {
		return d.ListingID == "t-new" && d.ID != ""
	})).Return(true, nil)
	f.deliveries.On("Record", mock.Anything, mock.MatchedBy(func(d *models.AlertDelivery) bool {
		return d.ListingID == "t-seen"
	})).Return(false, nil)

	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "owner" && n.Type == models.NotificationTypeAlertMatch
	})).Return(nil)
	f.mailer.On("SendTemplate", mock.Anything, []string{"anna@example.com"}, mock.Anything, email.TemplateAlertMatch,
		mock.MatchedBy(func(data email.TemplateData) bool {
			return data["Score"] == 90 && data["URL"] == "https://app.example/trips/t-new"
		})).Return(nil)

	report, err := f.worker.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.AlertsProcessed)
	assert.Equal(t, 0, report.AlertsFailed)
	assert.Equal(t, 1, report.NotificationsSent)

	f.deliveries.AssertNumberOfCalls(t, "Record", 2)
	f.notifications.AssertNumberOfCalls(t, "Create", 1)
	f.mailer.AssertNumberOfCalls(t, "SendTemplate", 1)
}

func TestAlertWorker_FailedAlertDoesNotStopRun(t *testing.T) {
	f := newWorkerFixture(AlertWorkerOptions{NotifyMinScore: 60, BatchSize: 10})

	broken := senderAlert("al-broken")
	ok := senderAlert("al-ok")
	f.alerts.On("ListBatch", mock.Anything, "", 10).Return([]models.Alert{broken, ok}, nil)
	f.matching.On("EvaluateAlert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.Alert) bool {
		return a.ID == "al-broken"
	})).Return(nil, errors.New("boom"))
	f.matching.On("EvaluateAlert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.Alert) bool {
		return a.ID == "al-ok"
	})).Return(&dto.AlertMatchesResponse{AlertID: "al-ok"}, nil)

	report, err := f.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.AlertsProcessed)
	assert.Equal(t, 1, report.AlertsFailed)
	assert.Equal(t, 0, report.NotificationsSent)
}

func TestAlertWorker_PagesThroughAlerts(t *testing.T) {
	f := newWorkerFixture(AlertWorkerOptions{NotifyMinScore: 60, BatchSize: 2})

	f.alerts.On("ListBatch", mock.Anything, "", 2).Return([]models.Alert{senderAlert("a"), senderAlert("b")}, nil)
	f.alerts.On("ListBatch", mock.Anything, "b", 2).Return([]models.Alert{senderAlert("c")}, nil)
	f.matching.On("EvaluateAlert", mock.Anything, mock.Anything, mock.Anything).Return(&dto.AlertMatchesResponse{}, nil)

	report, err := f.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.AlertsProcessed)
	f.alerts.AssertExpectations(t)
}

func TestAlertWorker_EmailFailureIsNotFatal(t *testing.T) {
	f := newWorkerFixture(AlertWorkerOptions{NotifyMinScore: 60, BatchSize: 10})

	f.alerts.On("ListBatch", mock.Anything, "", 10).Return([]models.Alert{senderAlert("al-1")}, nil)
	f.matching.On("EvaluateAlert", mock.Anything, mock.Anything, mock.Anything).Return(&dto.AlertMatchesResponse{
		Matches: []*dto.RankedMatch{tripMatch("t1", 80)},
	}, nil)
	f.deliveries.On("Record", mock.Anything, mock.Anything).Return(true, nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	report, err := f.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.NotificationsSent)
}

func TestAlertWorker_BatchErrorAborts(t *testing.T) {
	f := newWorkerFixture(AlertWorkerOptions{BatchSize: 10})

	f.alerts.On("ListBatch", mock.Anything, "", 10).Return(nil, errors.New("db gone"))

	report, err := f.worker.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, report.AlertsProcessed)
}

func TestAlertWorker_StopsOnCancelledContext(t *testing.T) {
	f := newWorkerFixture(AlertWorkerOptions{BatchSize: 10})

	f.alerts.On("ListBatch", mock.Anything, "", 10).Return([]models.Alert{senderAlert("al-1")}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.worker.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	f.matching.AssertNotCalled(t, "EvaluateAlert", mock.Anything, mock.Anything, mock.Anything)
}
