package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnnouncementSide(t *testing.T) {
	ok := parisLyon("2024-06-01", "2024-06-10")
	require.NoError(t, ValidateAnnouncementSide(ok))

	noOrigin := ok
	noOrigin.From.City = "  "
	assert.True(t, errors.Is(ValidateAnnouncementSide(noOrigin), ErrInvalidInput))

	noDest := ok
	noDest.To.City = ""
	assert.True(t, errors.Is(ValidateAnnouncementSide(noDest), ErrInvalidInput))

	inverted := parisLyon("2024-06-10", "2024-06-01")
	assert.True(t, errors.Is(ValidateAnnouncementSide(inverted), ErrInvalidInput))

	// Missing dates are allowed, they just never overlap
	open := ok
	open.Window = Window{}
	assert.NoError(t, ValidateAnnouncementSide(open))
}

func TestValidateTripSide_Rating(t *testing.T) {
	trip := TripSide{From: Place{City: "Paris"}, To: Place{City: "Lyon"}}
	assert.NoError(t, ValidateTripSide(trip))

	for _, bad := range []float64{-0.1, 5.01, math.NaN()} {
		trip.Rating = f64(bad)
		assert.ErrorIs(t, ValidateTripSide(trip), ErrInvalidInput)
	}

	trip.Rating = f64(5)
	assert.NoError(t, ValidateTripSide(trip))
}
