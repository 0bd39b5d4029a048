package services

import (
	"context"

	"shippertrip_backend/internal/algorithms"
	"shippertrip_backend/internal/metrics"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services/dto"
	"shippertrip_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MatchingService - ранжирование кандидатов по алертам и листингам.
// Все операции только читают данные.
type MatchingService interface {
	// FindMatches - алерт пользователя в ранжированный список кандидатов
	FindMatches(ctx context.Context, db *gorm.DB, userID, alertID string) (*dto.AlertMatchesResponse, error)
	// EvaluateAlert - то же без проверки владельца (фоновый воркер)
	EvaluateAlert(ctx context.Context, db *gorm.DB, alert *models.Alert) (*dto.AlertMatchesResponse, error)

	ScorePair(ctx context.Context, db *gorm.DB, announcementID, tripID string) (*dto.CompatibilityResult, error)
	MatchesForAnnouncement(ctx context.Context, db *gorm.DB, announcementID string, limit int) (*dto.ListingMatchesResponse, error)
	MatchesForTrip(ctx context.Context, db *gorm.DB, tripID string, limit int) (*dto.ListingMatchesResponse, error)
}

type MatchingOptions struct {
	// MinScore отбрасывает кандидатов с меньшей оценкой (0 - не отбрасывать)
	MinScore     int
	DefaultLimit int
}

type matchingService struct {
	alertRepo        repositories.AlertRepository
	announcementRepo repositories.AnnouncementRepository
	tripRepo         repositories.TripRepository
	userRepo         repositories.UserRepository
	opts             MatchingOptions
}

func NewMatchingService(
	alertRepo repositories.AlertRepository,
	announcementRepo repositories.AnnouncementRepository,
	tripRepo repositories.TripRepository,
	userRepo repositories.UserRepository,
	opts MatchingOptions,
) MatchingService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = repositories.DefaultPageSize
	}
	return &matchingService{
		alertRepo:        alertRepo,
		announcementRepo: announcementRepo,
		tripRepo:         tripRepo,
		userRepo:         userRepo,
		opts:             opts,
	}
}

// -------------------------------
// Alerts
// -------------------------------

func (s *matchingService) FindMatches(ctx context.Context, db *gorm.DB, userID, alertID string) (*dto.AlertMatchesResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db = withCtx(ctx, db)

	alert, err := s.alertRepo.FindByID(db, alertID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	// Чужой алерт неотличим от несуществующего
	if alert.UserID != userID {
		return nil, apperrors.ErrAlertNotFound
	}

	return s.EvaluateAlert(ctx, db, alert)
}

func (s *matchingService) EvaluateAlert(ctx context.Context, db *gorm.DB, alert *models.Alert) (*dto.AlertMatchesResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db = withCtx(ctx, db)

	filter := alertFilter(alert)

	var (
		matchType string
		matches   []*dto.RankedMatch
		err       error
	)

	switch alert.Type {
	case models.AlertTypeSender:
		matchType = dto.MatchTypeTrip
		matches, err = s.rankTrips(db, impliedAnnouncement(alert), filter, alert.UserID)
	case models.AlertTypeShipper:
		matchType = dto.MatchTypeAnnouncement
		var owner *models.User
		owner, err = s.alertOwner(db, alert)
		if err != nil {
			return nil, err
		}
		matches, err = s.rankAnnouncements(db, impliedTrip(alert, owner), filter, alert.UserID)
	default:
		return nil, apperrors.ErrInvalidAlert
	}
	if err != nil {
		return nil, err
	}

	return &dto.AlertMatchesResponse{
		AlertID:   alert.ID,
		MatchType: matchType,
		Matches:   matches,
	}, nil
}

func (s *matchingService) alertOwner(db *gorm.DB, alert *models.Alert) (*models.User, error) {
	if alert.User != nil {
		return alert.User, nil
	}
	owner, err := s.userRepo.FindByID(db, alert.UserID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return owner, nil
}

// alertFilter: незаданные поля алерта не ограничивают выборку, статус всегда active.
// Собственные листинги владельца алерта в результат не попадают.
func alertFilter(alert *models.Alert) repositories.ListingFilter {
	return repositories.ListingFilter{
		FromCity: alert.FromCity,
		ToCity:   alert.ToCity,
		DateFrom: alert.DateFrom,
		DateTo:   alert.DateTo,
		Statuses: []models.ListingStatus{models.ListingStatusActive},
	}
}

// -------------------------------
// Ranking
// -------------------------------

// rankTrips оценивает активные поездки против стороны объявления.
// Кандидаты повторно проверяются фильтром и валидируются; поездки
// excludeUserID пропускаются.
func (s *matchingService) rankTrips(db *gorm.DB, side algorithms.AnnouncementSide, filter repositories.ListingFilter, excludeUserID string) ([]*dto.RankedMatch, error) {
	trips, err := s.tripRepo.ListActive(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	matches := make([]*dto.RankedMatch, 0, len(trips))
	for i := range trips {
		trip := &trips[i]
		if !filter.AllowsTrip(trip) || (excludeUserID != "" && trip.UserID == excludeUserID) {
			continue
		}

		candidate := tripSide(trip)
		if algorithms.ValidateTripSide(candidate) != nil {
			continue
		}

		breakdown := algorithms.Breakdown(side, candidate)
		if breakdown.Total < s.opts.MinScore {
			continue
		}

		matches = append(matches, &dto.RankedMatch{
			ID:        trip.ID,
			Type:      dto.MatchTypeTrip,
			Score:     breakdown.Total,
			Breakdown: breakdown,
			CreatedAt: trip.CreatedAt,
			Trip:      dto.NewTripResponse(trip),
		})
	}

	metrics.MatchesComputedTotal.WithLabelValues(dto.MatchTypeTrip).Add(float64(len(trips)))
	sortMatches(matches)
	return matches, nil
}

func (s *matchingService) rankAnnouncements(db *gorm.DB, side algorithms.TripSide, filter repositories.ListingFilter, excludeUserID string) ([]*dto.RankedMatch, error) {
	announcements, err := s.announcementRepo.ListActive(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	matches := make([]*dto.RankedMatch, 0, len(announcements))
	for i := range announcements {
		announcement := &announcements[i]
		if !filter.AllowsAnnouncement(announcement) || (excludeUserID != "" && announcement.UserID == excludeUserID) {
			continue
		}

		candidate := announcementSide(announcement)
		if algorithms.ValidateAnnouncementSide(candidate) != nil {
			continue
		}

		breakdown := algorithms.Breakdown(candidate, side)
		if breakdown.Total < s.opts.MinScore {
			continue
		}

		matches = append(matches, &dto.RankedMatch{
			ID:           announcement.ID,
			Type:         dto.MatchTypeAnnouncement,
			Score:        breakdown.Total,
			Breakdown:    breakdown,
			CreatedAt:    announcement.CreatedAt,
			Announcement: dto.NewAnnouncementResponse(announcement),
		})
	}

	metrics.MatchesComputedTotal.WithLabelValues(dto.MatchTypeAnnouncement).Add(float64(len(announcements)))
	sortMatches(matches)
	return matches, nil
}

func sortMatches(matches []*dto.RankedMatch) {
	algorithms.SortRanked(matches, func(m *dto.RankedMatch) algorithms.Ranked {
		return algorithms.Ranked{ID: m.ID, Score: m.Score, CreatedAt: m.CreatedAt}
	})
}

// -------------------------------
// Listings
// -------------------------------

func (s *matchingService) ScorePair(ctx context.Context, db *gorm.DB, announcementID, tripID string) (*dto.CompatibilityResult, error) {
	db = withCtx(ctx, db)

	announcement, err := s.announcementRepo.FindByID(db, announcementID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	trip, err := s.tripRepo.FindByID(db, tripID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	aSide := announcementSide(announcement)
	if err := algorithms.ValidateAnnouncementSide(aSide); err != nil {
		return nil, apperrors.ErrInvalidInput(err)
	}
	tSide := tripSide(trip)
	if err := algorithms.ValidateTripSide(tSide); err != nil {
		return nil, apperrors.ErrInvalidInput(err)
	}

	breakdown := algorithms.Breakdown(aSide, tSide)
	return &dto.CompatibilityResult{
		AnnouncementID: announcement.ID,
		TripID:         trip.ID,
		Score:          breakdown.Total,
		Breakdown:      breakdown,
	}, nil
}

// MatchesForAnnouncement - активные поездки из того же города, лучшие первыми
func (s *matchingService) MatchesForAnnouncement(ctx context.Context, db *gorm.DB, announcementID string, limit int) (*dto.ListingMatchesResponse, error) {
	db = withCtx(ctx, db)

	announcement, err := s.announcementRepo.FindByID(db, announcementID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	side := announcementSide(announcement)
	if err := algorithms.ValidateAnnouncementSide(side); err != nil {
		return nil, apperrors.ErrInvalidInput(err)
	}

	origin := announcement.From.City
	filter := repositories.ListingFilter{
		FromCity: &origin,
		Statuses: []models.ListingStatus{models.ListingStatusActive},
	}

	matches, err := s.rankTrips(db, side, filter, announcement.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.ListingMatchesResponse{
		ListingID: announcement.ID,
		MatchType: dto.MatchTypeTrip,
		Matches:   s.limit(matches, limit),
	}, nil
}

// MatchesForTrip - активные объявления из города отправления поездки
func (s *matchingService) MatchesForTrip(ctx context.Context, db *gorm.DB, tripID string, limit int) (*dto.ListingMatchesResponse, error) {
	db = withCtx(ctx, db)

	trip, err := s.tripRepo.FindByID(db, tripID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	side := tripSide(trip)
	if err := algorithms.ValidateTripSide(side); err != nil {
		return nil, apperrors.ErrInvalidInput(err)
	}

	origin := trip.From.City
	filter := repositories.ListingFilter{
		FromCity: &origin,
		Statuses: []models.ListingStatus{models.ListingStatusActive},
	}

	matches, err := s.rankAnnouncements(db, side, filter, trip.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.ListingMatchesResponse{
		ListingID: trip.ID,
		MatchType: dto.MatchTypeAnnouncement,
		Matches:   s.limit(matches, limit),
	}, nil
}

func (s *matchingService) limit(matches []*dto.RankedMatch, limit int) []*dto.RankedMatch {
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	if len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
