package algorithms

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is returned when a side is structurally malformed and
// must not be scored.
var ErrInvalidInput = errors.New("invalid match input")

// ValidateAnnouncementSide checks the fields Score relies on. Missing
// optional fields are fine, missing cities or an inverted window are not.
func ValidateAnnouncementSide(a AnnouncementSide) error {
	if err := validateRoute(a.From, a.To); err != nil {
		return err
	}
	return validateWindow(a.Window)
}

// ValidateTripSide checks route, window and rating range.
func ValidateTripSide(t TripSide) error {
	if err := validateRoute(t.From, t.To); err != nil {
		return err
	}
	if err := validateWindow(t.Window); err != nil {
		return err
	}
	if t.Rating != nil {
		r := *t.Rating
		if math.IsNaN(r) || r < 0 || r > 5 {
			return fmt.Errorf("%w: rating %v is outside [0, 5]", ErrInvalidInput, r)
		}
	}
	return nil
}

func validateRoute(from, to Place) error {
	if strings.TrimSpace(from.City) == "" {
		return fmt.Errorf("%w: origin city is required", ErrInvalidInput)
	}
	if strings.TrimSpace(to.City) == "" {
		return fmt.Errorf("%w: destination city is required", ErrInvalidInput)
	}
	return nil
}

func validateWindow(w Window) error {
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return fmt.Errorf("%w: date window starts after it ends", ErrInvalidInput)
	}
	return nil
}
