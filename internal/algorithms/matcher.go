package algorithms

import (
	"math"
	"time"
)

// Signal weights. Their sum equals MaxScore.
const (
	OriginCityPoints      = 20
	DestinationCityPoints = 20
	DateOverlapPoints     = 30
	MaxRatingPoints       = 20
	VerifiedPoints        = 10

	// RatingMultiplier maps a 0..5 rating onto 0..20 points
	RatingMultiplier = 4.0

	MaxScore = 100
)

// Place is a route endpoint. Only City takes part in scoring.
type Place struct {
	City    string
	Country string
}

// Window is a date range with optional bounds. A nil bound means the
// value is missing, not open-ended.
type Window struct {
	From *time.Time
	To   *time.Time
}

// AnnouncementSide is the sender's half of a pair.
type AnnouncementSide struct {
	From   Place
	To     Place
	Window Window
}

// TripSide is the traveler's half of a pair, including the traveler's
// public stats.
type TripSide struct {
	From     Place
	To       Place
	Window   Window
	Rating   *float64
	Verified *bool
}

// ScoreBreakdown lists the points each signal contributed.
type ScoreBreakdown struct {
	OriginCity      int `json:"origin_city"`
	DestinationCity int `json:"destination_city"`
	DateOverlap     int `json:"date_overlap"`
	Rating          int `json:"rating"`
	Verified        int `json:"verified"`
	Total           int `json:"total"`
}

// Score calculates how well a trip fits an announcement (0-100).
// Pure and deterministic: the same pair always yields the same score.
func Score(a AnnouncementSide, t TripSide) int {
	return Breakdown(a, t).Total
}

// Breakdown runs the same computation as Score and keeps every
// signal's contribution.
func Breakdown(a AnnouncementSide, t TripSide) ScoreBreakdown {
	var b ScoreBreakdown

	// City match is exact string equality, no case or whitespace folding
	if a.From.City == t.From.City {
		b.OriginCity = OriginCityPoints
	}
	if a.To.City == t.To.City {
		b.DestinationCity = DestinationCityPoints
	}

	if Overlaps(a.Window, t.Window) {
		b.DateOverlap = DateOverlapPoints
	}

	b.Rating = RatingPoints(t.Rating)

	if t.Verified != nil && *t.Verified {
		b.Verified = VerifiedPoints
	}

	b.Total = clamp(b.OriginCity+b.DestinationCity+b.DateOverlap+b.Rating+b.Verified, 0, MaxScore)
	return b
}

// RatingPoints returns min(rating*4, 20) rounded to the nearest integer.
// A missing, negative or NaN rating contributes nothing.
func RatingPoints(rating *float64) int {
	if rating == nil || math.IsNaN(*rating) || *rating <= 0 {
		return 0
	}
	points := math.Min(*rating*RatingMultiplier, MaxRatingPoints)
	return int(math.Floor(points + 0.5))
}

// Overlaps reports whether two windows share at least one instant, both
// endpoints included: start1 <= end2 && start2 <= end1. Any missing bound
// on either side means no overlap.
func Overlaps(a, b Window) bool {
	if a.From == nil || a.To == nil || b.From == nil || b.To == nil {
		return false
	}
	return !a.From.After(*b.To) && !b.From.After(*a.To)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
