package dto

import (
	"time"

	"shippertrip_backend/internal/algorithms"
)

const (
	MatchTypeTrip         = "trip"
	MatchTypeAnnouncement = "announcement"
)

// RankedMatch - один кандидат с оценкой. Заполнено ровно одно из
// Trip / Announcement, в зависимости от Type.
type RankedMatch struct {
	ID           string                    `json:"id"`
	Type         string                    `json:"type"`
	Score        int                       `json:"score"`
	Breakdown    algorithms.ScoreBreakdown `json:"breakdown"`
	CreatedAt    time.Time                 `json:"created_at"`
	Trip         *TripResponse             `json:"trip,omitempty"`
	Announcement *AnnouncementResponse     `json:"announcement,omitempty"`
}

// AlertMatchesResponse - результат FindMatches
type AlertMatchesResponse struct {
	AlertID   string         `json:"alert_id"`
	MatchType string         `json:"match_type"`
	Matches   []*RankedMatch `json:"matches"`
}

// ListingMatchesResponse - кандидаты для конкретного объявления или поездки
type ListingMatchesResponse struct {
	ListingID string         `json:"listing_id"`
	MatchType string         `json:"match_type"`
	Matches   []*RankedMatch `json:"matches"`
}

type CompatibilityResult struct {
	AnnouncementID string                    `json:"announcement_id"`
	TripID         string                    `json:"trip_id"`
	Score          int                       `json:"score"`
	Breakdown      algorithms.ScoreBreakdown `json:"breakdown"`
}

type ScorePairQuery struct {
	AnnouncementID string `form:"announcement_id" validate:"required"`
	TripID         string `form:"trip_id" validate:"required"`
}
