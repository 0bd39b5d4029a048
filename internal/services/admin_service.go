package services

import (
	"context"

	"shippertrip_backend/internal/auth"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	GetPlatformStats(ctx context.Context, db *gorm.DB) (*dto.PlatformStats, error)
	VerifyUser(ctx context.Context, db *gorm.DB, adminID, userID string, verified bool) (*dto.UserResponse, error)
	SetAnnouncementStatus(ctx context.Context, db *gorm.DB, adminID, id string, status models.ListingStatus) (*dto.AnnouncementResponse, error)
	SetTripStatus(ctx context.Context, db *gorm.DB, adminID, id string, status models.ListingStatus) (*dto.TripResponse, error)
}

type AdminServiceImpl struct {
	userRepo            repositories.UserRepository
	announcementRepo    repositories.AnnouncementRepository
	tripRepo            repositories.TripRepository
	alertRepo           repositories.AlertRepository
	notificationRepo    repositories.NotificationRepository
	announcementService AnnouncementService
	tripService         TripService
}

func NewAdminService(
	userRepo repositories.UserRepository,
	announcementRepo repositories.AnnouncementRepository,
	tripRepo repositories.TripRepository,
	alertRepo repositories.AlertRepository,
	notificationRepo repositories.NotificationRepository,
	announcementService AnnouncementService,
	tripService TripService,
) AdminService {
	return &AdminServiceImpl{
		userRepo:            userRepo,
		announcementRepo:    announcementRepo,
		tripRepo:            tripRepo,
		alertRepo:           alertRepo,
		notificationRepo:    notificationRepo,
		announcementService: announcementService,
		tripService:         tripService,
	}
}

func (s *AdminServiceImpl) GetPlatformStats(ctx context.Context, db *gorm.DB) (*dto.PlatformStats, error) {
	db = withCtx(ctx, db)
	stats := &dto.PlatformStats{}
	var err error

	if stats.Users, err = s.userRepo.Count(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.VerifiedUsers, err = s.userRepo.CountVerified(db); err != nil {
		return nil, apperrors.InternalError(err)
	}

	announcements, err := s.announcementRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.Announcements = byStatus(announcements)

	trips, err := s.tripRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.Trips = byStatus(trips)

	if stats.Alerts, err = s.alertRepo.Count(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Notifications, err = s.notificationRepo.Count(db); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}

// byStatus всегда содержит все четыре статуса, даже с нулями
func byStatus(counts map[models.ListingStatus]int64) map[string]int64 {
	out := map[string]int64{
		string(models.ListingStatusActive):    0,
		string(models.ListingStatusMatched):   0,
		string(models.ListingStatusCompleted): 0,
		string(models.ListingStatusCancelled): 0,
	}
	for status, n := range counts {
		out[string(status)] = n
	}
	return out
}

func (s *AdminServiceImpl) VerifyUser(ctx context.Context, db *gorm.DB, adminID, userID string, verified bool) (*dto.UserResponse, error) {
	db = withCtx(ctx, db)

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.userRepo.SetVerified(db, userID, verified); err != nil {
		return nil, mapRepoError(err)
	}
	user.IsVerified = verified

	logger.CtxInfo(ctx, "User verification changed", "admin_id", adminID, "user_id", userID, "verified", verified)
	return dto.NewUserResponse(user), nil
}

func (s *AdminServiceImpl) SetAnnouncementStatus(ctx context.Context, db *gorm.DB, adminID, id string, status models.ListingStatus) (*dto.AnnouncementResponse, error) {
	return s.announcementService.UpdateStatus(ctx, db, adminID, auth.RoleAdmin, id, status)
}

func (s *AdminServiceImpl) SetTripStatus(ctx context.Context, db *gorm.DB, adminID, id string, status models.ListingStatus) (*dto.TripResponse, error) {
	return s.tripService.UpdateStatus(ctx, db, adminID, auth.RoleAdmin, id, status)
}
