package circadian

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumirum/internal/models"
)

func utcProfile() models.Profile {
	return models.Profile{
		ID:                   7,
		Timezone:             "UTC",
		SleepStart:           models.NewTimeOfDay(22, 0, 0),
		SleepEnd:             models.NewTimeOfDay(6, 0, 0),
		MinColorTemp:         2000,
		MaxColorTemp:         6500,
		NightModeEnabled:     true,
		MotionTimeoutSeconds: 300,
	}
}

func frozenGenerator(at time.Time) *Generator {
	return &Generator{Now: func() time.Time { return at }}
}

func TestGenerate_InvalidTimezone(t *testing.T) {
	p := utcProfile()
	p.Timezone = "Atlantis/Lost_City"

	_, err := (&Generator{}).Generate(p, 4, 15*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestGenerate_InvalidCoordinates(t *testing.T) {
	p := utcProfile()
	lat, lon := 120.0, 30.0
	p.Latitude, p.Longitude = &lat, &lon

	_, err := (&Generator{}).Generate(p, 4, 15*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestGenerate_ShapeAndMetadata(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	p := utcProfile()

	got, err := frozenGenerator(now).Generate(p, 96, 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ProfileID)
	assert.Equal(t, uint32(22*3600), got.SleepStartUTCSeconds)
	assert.Equal(t, uint32(6*3600), got.SleepEndUTCSeconds)
	assert.Equal(t, p.MinColorTemp, got.MinColorTemp)
	assert.Equal(t, p.MaxColorTemp, got.MaxColorTemp)
	assert.True(t, got.NightModeEnabled)
	assert.Equal(t, 300, got.MotionTimeoutSeconds)
	assert.Equal(t, now, got.GeneratedAt)
	assert.Equal(t, now.Add(96*15*time.Minute), got.ValidUntil)

	require.Len(t, got.Schedule, 96)
	for i, pt := range got.Schedule {
		assert.Equal(t, now.Add(time.Duration(i)*15*time.Minute), pt.Timestamp)
		assert.GreaterOrEqual(t, pt.ColorTemp, p.MinColorTemp)
		assert.LessOrEqual(t, pt.ColorTemp, p.MaxColorTemp)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	gen := frozenGenerator(now)
	p := utcProfile()

	first, err := gen.Generate(p, 48, 30*time.Minute)
	require.NoError(t, err)
	second, err := gen.Generate(p, 48, 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// End-to-end scenario: UTC profile, sleep 22:00-06:00, no coordinates. The
// estimated sunrise is 06:00 and sunset 20:00, so the day walks through a
// nightlight, a morning boost, full daylight, and an evening relaxation.
func TestColorTempAt_DailyScenario(t *testing.T) {
	p := utcProfile()

	at := func(hour, minute int) time.Time {
		return time.Date(2025, 7, 15, hour, minute, 0, 0, time.UTC)
	}

	// 05:00 is inside the wrapping sleep window.
	temp, err := colorTempAt(p, at(5, 0))
	require.NoError(t, err)
	assert.Equal(t, 2000, temp)

	// 03:00 and 23:00 also sleep; noon does not.
	temp, err = colorTempAt(p, at(3, 0))
	require.NoError(t, err)
	assert.Equal(t, 2000, temp)
	temp, err = colorTempAt(p, at(23, 0))
	require.NoError(t, err)
	assert.Equal(t, 2000, temp)

	// 07:00 sits past the morning boost; half an hour in, 06:30, is
	// strictly between the bounds.
	temp, err = colorTempAt(p, at(6, 30))
	require.NoError(t, err)
	assert.Greater(t, temp, 2000)
	assert.Less(t, temp, 6500)

	// 13:00 is plain daylight.
	temp, err = colorTempAt(p, at(13, 0))
	require.NoError(t, err)
	assert.Equal(t, 6500, temp)

	// 20:30 is inside the evening relaxation [20:00, 21:00): between the
	// relaxation plateau (3500) and daylight.
	temp, err = colorTempAt(p, at(20, 30))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, temp, 3500)
	assert.LessOrEqual(t, temp, 6500)
}
