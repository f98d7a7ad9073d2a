package circadian

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumirum/internal/models"
)

func TestSolarTimes_InvalidCoordinates(t *testing.T) {
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	for _, c := range []struct{ lat, lon float64 }{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	} {
		_, _, err := SolarTimes(date, c.lat, c.lon)
		assert.ErrorIs(t, err, ErrInvalidCoordinates, "lat=%v lon=%v", c.lat, c.lon)
	}
}

func TestSolarTimes_MidLatitudes(t *testing.T) {
	loc, err := LoadTimezone("Europe/Kyiv")
	require.NoError(t, err)

	// Kyiv on the June solstice: a long day with an early sunrise and a
	// late sunset. Lighting guidance needs no sub-minute precision, so the
	// assertions are deliberately coarse.
	date := time.Date(2025, 6, 21, 12, 0, 0, 0, loc)
	sunriseTod, sunsetTod, err := SolarTimes(date, 50.45, 30.52)
	require.NoError(t, err)

	assert.Less(t, sunriseTod.Minutes(), 6*60, "solstice sunrise is before 06:00 local")
	assert.Greater(t, sunsetTod.Minutes(), 20*60, "solstice sunset is after 20:00 local")
	assert.Less(t, sunriseTod.Minutes(), sunsetTod.Minutes())
}

func TestSolarTimes_PolarNight(t *testing.T) {
	// Longyearbyen in late December: the sun never rises.
	date := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	sunriseTod, sunsetTod, err := SolarTimes(date, 78.22, 15.65)
	require.NoError(t, err)

	assert.Equal(t, models.TimeOfDay(0), sunriseTod)
	assert.Equal(t, models.TimeOfDay(0), sunsetTod)
}

func TestSolarTimes_PolarDay(t *testing.T) {
	// Longyearbyen in late June: the sun never sets.
	date := time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	sunriseTod, sunsetTod, err := SolarTimes(date, 78.22, 15.65)
	require.NoError(t, err)

	assert.Equal(t, models.TimeOfDay(0), sunriseTod)
	assert.Equal(t, models.NewTimeOfDay(23, 59, 59), sunsetTod)
}

func TestEstimateSolarTimes(t *testing.T) {
	p := models.Profile{
		SleepStart: models.NewTimeOfDay(22, 0, 0),
		SleepEnd:   models.NewTimeOfDay(6, 0, 0),
	}
	sunriseTod, sunsetTod := EstimateSolarTimes(p)
	assert.Equal(t, models.NewTimeOfDay(6, 0, 0), sunriseTod, "sunrise anchors to wake-up")
	assert.Equal(t, models.NewTimeOfDay(20, 0, 0), sunsetTod, "sunset sits two hours before sleep")
}

func TestEstimateSolarTimes_WrapsPastMidnight(t *testing.T) {
	p := models.Profile{
		SleepStart: models.NewTimeOfDay(1, 0, 0),
		SleepEnd:   models.NewTimeOfDay(9, 0, 0),
	}
	_, sunsetTod := EstimateSolarTimes(p)
	assert.Equal(t, models.NewTimeOfDay(23, 0, 0), sunsetTod)
}
