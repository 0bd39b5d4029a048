package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStorage - storage.Storage в памяти
type memStorage struct {
	files   map[string][]byte
	saveErr error
	urlErr  error
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *memStorage) GetURL(ctx context.Context, path string) (string, error) {
	if s.urlErr != nil {
		return "", s.urlErr
	}
	return "/files/" + path, nil
}

func testPNG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestAnnouncementService_Create(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	svc := NewAnnouncementService(repo, new(mockNotificationRepo), newMemStorage(), 0)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Announcement) bool {
		return a.UserID == "u1" && a.From.City == "Paris" && a.To.City == "Lyon" &&
			a.Status == models.ListingStatusActive && a.Currency == "EUR"
	})).Return(nil)

	res, err := svc.Create(context.Background(), nil, "u1", &dto.CreateAnnouncementRequest{
		Type:   "package",
		Title:  "  Documents ",
		From:   dto.PlaceRequest{City: " Paris "},
		To:     dto.PlaceRequest{City: "Lyon"},
		Reward: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "Documents", res.Title)
	assert.Equal(t, models.ListingStatusActive, res.Status)
	repo.AssertExpectations(t)
}

func TestAnnouncementService_CreateRejectsInvertedWindow(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	svc := NewAnnouncementService(repo, new(mockNotificationRepo), newMemStorage(), 0)

	_, err := svc.Create(context.Background(), nil, "u1", &dto.CreateAnnouncementRequest{
		Type:     "package",
		Title:    "Box",
		From:     dto.PlaceRequest{City: "Paris"},
		To:       dto.PlaceRequest{City: "Lyon"},
		DateFrom: date(3, 10),
		DateTo:   date(3, 1),
		Reward:   10,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnnouncementService_ListDefaultsToActive(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	svc := NewAnnouncementService(repo, new(mockNotificationRepo), newMemStorage(), 0)

	items := []models.Announcement{newAnnouncement("a1", "u1", "Paris", "Lyon", nil, nil, seconds(1))}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.ListingFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0] == models.ListingStatusActive &&
			f.Page == 1 && f.PageSize == repositories.DefaultPageSize &&
			f.DateTo != nil && f.DateTo.Hour() == 23
	})).Return(items, int64(41), nil)

	res, err := svc.List(context.Background(), nil, &dto.ListingQuery{DateTo: "2024-03-05"})
	require.NoError(t, err)
	assert.Len(t, res.Announcements, 1)
	assert.Equal(t, int64(41), res.Total)
	assert.Equal(t, 3, res.TotalPages)
}

func TestAnnouncementService_ListRejectsInvertedRange(t *testing.T) {
	svc := NewAnnouncementService(new(mockAnnouncementRepo), new(mockNotificationRepo), newMemStorage(), 0)

	_, err := svc.List(context.Background(), nil, &dto.ListingQuery{DateFrom: "2024-03-05", DateTo: "2024-03-01"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
}

func TestAnnouncementService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		role     string
		current  models.ListingStatus
		next     models.ListingStatus
		wantErr  error
		notifies bool
	}{
		{name: "owner cancels", userID: "owner", role: "user", current: models.ListingStatusActive, next: models.ListingStatusCancelled},
		{name: "stranger forbidden", userID: "other", role: "user", current: models.ListingStatusActive, next: models.ListingStatusCancelled, wantErr: apperrors.ErrForbiddenListing},
		{name: "terminal status", userID: "owner", role: "user", current: models.ListingStatusCompleted, next: models.ListingStatusActive, wantErr: apperrors.ErrInvalidStatusTransition},
		{name: "admin notifies owner", userID: "admin", role: "admin", current: models.ListingStatusMatched, next: models.ListingStatusActive, notifies: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockAnnouncementRepo)
			notifications := new(mockNotificationRepo)
			svc := NewAnnouncementService(repo, notifications, newMemStorage(), 0)

			a := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
			a.Status = tt.current
			repo.On("FindByID", mock.Anything, "a1").Return(&a, nil)
			repo.On("UpdateStatus", mock.Anything, "a1", tt.current, tt.next).Return(nil)
			notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
				return n.UserID == "owner" && n.Type == models.NotificationTypeStatusChanged
			})).Return(nil)

			res, err := svc.UpdateStatus(context.Background(), nil, tt.userID, tt.role, "a1", tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, res.Status)
			if tt.notifies {
				notifications.AssertNumberOfCalls(t, "Create", 1)
			} else {
				notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAnnouncementService_UpdateStatusLosesRaceToSweep(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	notifications := new(mockNotificationRepo)
	svc := NewAnnouncementService(repo, notifications, newMemStorage(), 0)

	active := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
	swept := active
	swept.Status = models.ListingStatusCompleted

	repo.On("FindByID", mock.Anything, "a1").Return(&active, nil).Once()
	repo.On("FindByID", mock.Anything, "a1").Return(&swept, nil).Once()
	repo.On("UpdateStatus", mock.Anything, "a1", models.ListingStatusActive, models.ListingStatusCancelled).
		Return(repositories.ErrStatusChanged)

	_, err := svc.UpdateStatus(context.Background(), nil, "owner", "user", "a1", models.ListingStatusCancelled)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
	assert.Equal(t, map[string]string{"from": "completed", "to": "cancelled"}, appErr.Details)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAnnouncementService_UploadPhoto(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	store := newMemStorage()
	svc := NewAnnouncementService(repo, new(mockNotificationRepo), store, 1024)

	a := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
	repo.On("FindByID", mock.Anything, "a1").Return(&a, nil)
	repo.On("UpdatePhoto", mock.Anything, "a1", mock.MatchedBy(func(url string) bool {
		return strings.HasPrefix(url, "/files/announcements/a1/") && strings.HasSuffix(url, ".png")
	})).Return(nil)

	photo := testPNG(t, 2, 2)
	res, err := svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader(photo), int64(len(photo)), "image/png")
	require.NoError(t, err)
	require.NotNil(t, res.PhotoURL)
	require.Len(t, store.files, 1)
	for _, data := range store.files {
		assert.Equal(t, photo, data)
	}
}

func TestAnnouncementService_UploadPhotoDownscales(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	store := newMemStorage()
	svc := NewAnnouncementService(repo, new(mockNotificationRepo), store, 0)

	a := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
	repo.On("FindByID", mock.Anything, "a1").Return(&a, nil)
	repo.On("UpdatePhoto", mock.Anything, "a1", mock.Anything).Return(nil)

	photo := testPNG(t, 3200, 800)
	_, err := svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader(photo), int64(len(photo)), "image/png")
	require.NoError(t, err)

	require.Len(t, store.files, 1)
	for _, data := range store.files {
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 1600, cfg.Width)
		assert.Equal(t, 400, cfg.Height)
	}
}

func TestAnnouncementService_UploadPhotoRejects(t *testing.T) {
	repo := new(mockAnnouncementRepo)
	store := newMemStorage()
	svc := NewAnnouncementService(repo, new(mockNotificationRepo), store, 4)

	a := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
	repo.On("FindByID", mock.Anything, "a1").Return(&a, nil)

	_, err := svc.UploadPhoto(context.Background(), nil, "other", "user", "a1", bytes.NewReader(nil), 1, "image/png")
	assert.ErrorIs(t, err, apperrors.ErrForbiddenListing)

	_, err = svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader(nil), 1, "application/pdf")
	assert.Error(t, err)

	_, err = svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader(nil), 10, "image/jpeg")
	assert.Error(t, err)

	// размер занижен, но тело длиннее лимита
	_, err = svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader([]byte("0123456789")), 1, "image/png")
	assert.Error(t, err)

	// не картинка
	_, err = svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader([]byte("abc")), 3, "image/png")
	assert.Error(t, err)

	assert.Empty(t, store.files)
	repo.AssertNotCalled(t, "UpdatePhoto", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnnouncementService_UploadPhotoCleansUpOnFailure(t *testing.T) {
	t.Run("url error", func(t *testing.T) {
		repo := new(mockAnnouncementRepo)
		store := newMemStorage()
		store.urlErr = errors.New("presign failed")
		svc := NewAnnouncementService(repo, new(mockNotificationRepo), store, 1024)

		a := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
		repo.On("FindByID", mock.Anything, "a1").Return(&a, nil)

		photo := testPNG(t, 2, 2)
		_, err := svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader(photo), int64(len(photo)), "image/png")
		assert.Error(t, err)
		assert.Empty(t, store.files)
		repo.AssertNotCalled(t, "UpdatePhoto", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("update error", func(t *testing.T) {
		repo := new(mockAnnouncementRepo)
		store := newMemStorage()
		svc := NewAnnouncementService(repo, new(mockNotificationRepo), store, 1024)

		a := newAnnouncement("a1", "owner", "Paris", "Lyon", nil, nil, seconds(1))
		repo.On("FindByID", mock.Anything, "a1").Return(&a, nil)
		repo.On("UpdatePhoto", mock.Anything, "a1", mock.Anything).Return(repositories.ErrAnnouncementNotFound)

		photo := testPNG(t, 2, 2)
		_, err := svc.UploadPhoto(context.Background(), nil, "owner", "user", "a1", bytes.NewReader(photo), int64(len(photo)), "image/png")
		assert.ErrorIs(t, err, apperrors.ErrAnnouncementNotFound)
		assert.Empty(t, store.files)
	})
}

func TestTripService_Create(t *testing.T) {
	repo := new(mockTripRepo)
	svc := NewTripService(repo, new(mockNotificationRepo))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Trip")).Return(nil)

	res, err := svc.Create(context.Background(), nil, "u1", &dto.CreateTripRequest{
		From:          dto.PlaceRequest{City: "Paris", Country: "FR"},
		To:            dto.PlaceRequest{City: "Berlin", Country: "DE"},
		DepartureDate: date(5, 1),
		ArrivalDate:   date(5, 2),
		AvailableKg:   8,
		Currency:      "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", res.Currency)
	assert.Equal(t, "Berlin", res.To.City)
}

func TestTripService_CreateRequiresCities(t *testing.T) {
	repo := new(mockTripRepo)
	svc := NewTripService(repo, new(mockNotificationRepo))

	_, err := svc.Create(context.Background(), nil, "u1", &dto.CreateTripRequest{
		From:          dto.PlaceRequest{City: "  "},
		To:            dto.PlaceRequest{City: "Berlin"},
		DepartureDate: date(5, 1),
		ArrivalDate:   date(5, 2),
		AvailableKg:   8,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTripService_ListMineIncludesAllStatuses(t *testing.T) {
	repo := new(mockTripRepo)
	svc := NewTripService(repo, new(mockNotificationRepo))

	repo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.ListingFilter) bool {
		return f.UserID == "u1" && len(f.Statuses) == 0 && f.Type == nil
	})).Return([]models.Trip{}, int64(0), nil)

	res, err := svc.ListMine(context.Background(), nil, "u1", &dto.ListingQuery{Type: "package"})
	require.NoError(t, err)
	assert.Empty(t, res.Trips)
	repo.AssertExpectations(t)
}

func TestTripService_GetByIDNotFound(t *testing.T) {
	repo := new(mockTripRepo)
	svc := NewTripService(repo, new(mockNotificationRepo))

	repo.On("FindByID", mock.Anything, "missing").Return(nil, repositories.ErrTripNotFound)

	_, err := svc.GetByID(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTripNotFound)
}

func TestTripService_UpdateStatusLosesRace(t *testing.T) {
	repo := new(mockTripRepo)
	notifications := new(mockNotificationRepo)
	svc := NewTripService(repo, notifications)

	trip := newTrip("t1", "Paris", "Lyon", nil, nil, traveler("owner", nil, false), seconds(1))
	matched := trip
	matched.Status = models.ListingStatusMatched
	completed := trip
	completed.Status = models.ListingStatusCompleted

	// админ видел matched, воркер успел закрыть поездку
	repo.On("FindByID", mock.Anything, "t1").Return(&matched, nil).Once()
	repo.On("FindByID", mock.Anything, "t1").Return(&completed, nil).Once()
	repo.On("UpdateStatus", mock.Anything, "t1", models.ListingStatusMatched, models.ListingStatusActive).
		Return(repositories.ErrStatusChanged)

	_, err := svc.UpdateStatus(context.Background(), nil, "admin", "admin", "t1", models.ListingStatusActive)

	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTripService_UpdateStatusMissingAfterConflict(t *testing.T) {
	repo := new(mockTripRepo)
	svc := NewTripService(repo, new(mockNotificationRepo))

	trip := newTrip("t1", "Paris", "Lyon", nil, nil, traveler("owner", nil, false), seconds(1))
	repo.On("FindByID", mock.Anything, "t1").Return(&trip, nil).Once()
	repo.On("FindByID", mock.Anything, "t1").Return(nil, repositories.ErrTripNotFound).Once()
	repo.On("UpdateStatus", mock.Anything, "t1", models.ListingStatusActive, models.ListingStatusCancelled).
		Return(repositories.ErrStatusChanged)

	_, err := svc.UpdateStatus(context.Background(), nil, "owner", "user", "t1", models.ListingStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrTripNotFound)
}
