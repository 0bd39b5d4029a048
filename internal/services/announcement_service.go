package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"shippertrip_backend/internal/algorithms"
	"shippertrip_backend/internal/auth"
	"shippertrip_backend/internal/imageprocessor"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/internal/storage"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*dto.AnnouncementResponse, error)
	List(ctx context.Context, db *gorm.DB, query *dto.ListingQuery) (*dto.AnnouncementListResponse, error)
	ListMine(ctx context.Context, db *gorm.DB, userID string, query *dto.ListingQuery) (*dto.AnnouncementListResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, role, id string, status models.ListingStatus) (*dto.AnnouncementResponse, error)
	UploadPhoto(ctx context.Context, db *gorm.DB, userID, role, id string, file io.Reader, size int64, contentType string) (*dto.AnnouncementResponse, error)
}

type AnnouncementServiceImpl struct {
	announcementRepo repositories.AnnouncementRepository
	notificationRepo repositories.NotificationRepository
	storage          storage.Storage
	photos           *imageprocessor.Processor
	maxPhotoBytes    int64
}

func NewAnnouncementService(
	announcementRepo repositories.AnnouncementRepository,
	notificationRepo repositories.NotificationRepository,
	fileStorage storage.Storage,
	maxPhotoBytes int64,
) AnnouncementService {
	return &AnnouncementServiceImpl{
		announcementRepo: announcementRepo,
		notificationRepo: notificationRepo,
		storage:          fileStorage,
		photos:           imageprocessor.NewProcessor(85),
		maxPhotoBytes:    maxPhotoBytes,
	}
}

func (s *AnnouncementServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	announcement := &models.Announcement{
		UserID:      userID,
		Type:        models.AnnouncementType(req.Type),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		From:        trimmedPlace(req.From),
		To:          trimmedPlace(req.To),
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Reward:      req.Reward,
		Currency:    strings.ToUpper(req.Currency),
		Weight:      req.Weight,
		Status:      models.ListingStatusActive,
	}
	if announcement.Currency == "" {
		announcement.Currency = "EUR"
	}

	if !announcement.Type.IsValid() {
		return nil, apperrors.ErrInvalidInput(fmt.Errorf("unknown announcement type %q", req.Type))
	}
	if err := algorithms.ValidateAnnouncementSide(announcementSide(announcement)); err != nil {
		return nil, apperrors.ErrInvalidInput(err)
	}

	if err := s.announcementRepo.Create(withCtx(ctx, db), announcement); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Announcement created", "announcement_id", announcement.ID, "from", announcement.From.City, "to", announcement.To.City)
	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *AnnouncementServiceImpl) GetByID(ctx context.Context, db *gorm.DB, id string) (*dto.AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewAnnouncementResponse(announcement), nil
}

// List - публичный каталог; без явного статуса показываются только активные
func (s *AnnouncementServiceImpl) List(ctx context.Context, db *gorm.DB, query *dto.ListingQuery) (*dto.AnnouncementListResponse, error) {
	filter, err := listingFilterFromQuery(query)
	if err != nil {
		return nil, err
	}
	if len(filter.Statuses) == 0 {
		filter.Statuses = []models.ListingStatus{models.ListingStatusActive}
	}
	return s.list(ctx, db, filter)
}

func (s *AnnouncementServiceImpl) ListMine(ctx context.Context, db *gorm.DB, userID string, query *dto.ListingQuery) (*dto.AnnouncementListResponse, error) {
	filter, err := listingFilterFromQuery(query)
	if err != nil {
		return nil, err
	}
	filter.UserID = userID
	return s.list(ctx, db, filter)
}

func (s *AnnouncementServiceImpl) list(ctx context.Context, db *gorm.DB, filter repositories.ListingFilter) (*dto.AnnouncementListResponse, error) {
	announcements, total, err := s.announcementRepo.List(withCtx(ctx, db), filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		items = append(items, dto.NewAnnouncementResponse(&announcements[i]))
	}

	return &dto.AnnouncementListResponse{
		Announcements: items,
		Pagination:    dto.NewPagination(total, filter.Page, filter.PageSize),
	}, nil
}

func (s *AnnouncementServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, userID, role, id string, status models.ListingStatus) (*dto.AnnouncementResponse, error) {
	db = withCtx(ctx, db)

	announcement, err := s.announcementRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := checkStatusChange(userID, role, announcement.UserID, announcement.Status, status); err != nil {
		return nil, err
	}

	if err := s.announcementRepo.UpdateStatus(db, id, announcement.Status, status); err != nil {
		if !errors.Is(err, repositories.ErrStatusChanged) {
			return nil, mapRepoError(err)
		}
		// статус успели поменять (другой запрос или воркер истечения)
		fresh, findErr := s.announcementRepo.FindByID(db, id)
		if findErr != nil {
			return nil, mapRepoError(findErr)
		}
		return nil, transitionError(fresh.Status, status)
	}
	announcement.Status = status

	if userID != announcement.UserID {
		n := statusNotification(announcement.UserID, dto.MatchTypeAnnouncement, announcement.ID, announcement.Title, status)
		if err := s.notificationRepo.Create(db, n); err != nil {
			logger.CtxWarn(ctx, "Failed to notify owner about status change", "announcement_id", id, "error", err)
		}
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *AnnouncementServiceImpl) UploadPhoto(ctx context.Context, db *gorm.DB, userID, role, id string, file io.Reader, size int64, contentType string) (*dto.AnnouncementResponse, error) {
	db = withCtx(ctx, db)

	announcement, err := s.announcementRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !auth.CanManage(userID, role, announcement.UserID) {
		return nil, apperrors.ErrForbiddenListing
	}

	if _, ok := storage.PhotoExtension(contentType); !ok {
		return nil, apperrors.ErrInvalidOperation("upload", "Only JPEG, PNG and WebP photos are allowed")
	}
	if s.maxPhotoBytes > 0 && size > s.maxPhotoBytes {
		return nil, apperrors.ErrInvalidOperation("upload", fmt.Sprintf("Photo exceeds %d bytes", s.maxPhotoBytes))
	}

	// заявленному размеру не верим, читаем не больше лимита
	reader := file
	if s.maxPhotoBytes > 0 {
		reader = io.LimitReader(file, s.maxPhotoBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if s.maxPhotoBytes > 0 && int64(len(data)) > s.maxPhotoBytes {
		return nil, apperrors.ErrInvalidOperation("upload", fmt.Sprintf("Photo exceeds %d bytes", s.maxPhotoBytes))
	}

	photo, err := s.photos.Fit(data, imageprocessor.SizePhoto)
	if err != nil {
		if errors.Is(err, imageprocessor.ErrNotImage) {
			return nil, apperrors.ErrInvalidOperation("upload", "File is not a valid image")
		}
		return nil, apperrors.InternalError(err)
	}
	ext, _ := storage.PhotoExtension(photo.ContentType)

	key := storage.PhotoKey(announcement.ID, ext)
	if err := s.storage.Save(ctx, key, bytes.NewReader(photo.Data), photo.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if photo.Resized {
		logger.CtxInfo(ctx, "Announcement photo resized", "announcement_id", announcement.ID, "width", photo.Width, "height", photo.Height)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		s.removeOrphanedPhoto(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	if err := s.announcementRepo.UpdatePhoto(db, announcement.ID, url); err != nil {
		s.removeOrphanedPhoto(ctx, key)
		return nil, mapRepoError(err)
	}

	announcement.PhotoURL = &url
	return dto.NewAnnouncementResponse(announcement), nil
}

// removeOrphanedPhoto удаляет сохраненный файл, если ссылку на него так и не записали
func (s *AnnouncementServiceImpl) removeOrphanedPhoto(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWarn(ctx, "Failed to clean up orphaned photo", "key", key, "error", err)
	}
}
