package services

import (
	"context"
	"time"

	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	List(ctx context.Context, db *gorm.DB, userID string, query *dto.NotificationQuery) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error)
	MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	UnreadCount(ctx context.Context, db *gorm.DB, userID string) (*dto.UnreadCountResponse, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) List(ctx context.Context, db *gorm.DB, userID string, query *dto.NotificationQuery) (*dto.NotificationListResponse, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	notifications, total, err := s.notificationRepo.ListByUser(withCtx(ctx, db), userID, query.UnreadOnly, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Pagination:    dto.NewPagination(total, page, pageSize),
	}, nil
}

// MarkAsRead - чужое уведомление выглядит как несуществующее
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error) {
	db = withCtx(ctx, db)

	notification, err := s.notificationRepo.FindByID(db, notificationID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if notification.UserID != userID {
		return nil, apperrors.ErrNotificationNotFound
	}

	if !notification.IsRead {
		if err := s.notificationRepo.MarkAsRead(db, notificationID); err != nil {
			return nil, mapRepoError(err)
		}
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
	}

	return dto.NewNotificationResponse(notification), nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(withCtx(ctx, db), userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, db *gorm.DB, userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(withCtx(ctx, db), userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
