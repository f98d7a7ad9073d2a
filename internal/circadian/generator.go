package circadian

import (
	"time"

	"lumirum/internal/models"
)

// Generator builds lighting schedules. It is stateless and safe for
// concurrent use; Now exists so tests can freeze the clock and defaults to
// time.Now.
type Generator struct {
	Now func() time.Time
}

// Generate computes a schedule of points evenly spaced future points starting
// at now. Each point is an independent pure function of its own timestamp, so
// the sequence is restartable and has no point-to-point state.
//
// Fails with ErrInvalidTimezone or ErrInvalidCoordinates when the profile's
// configuration cannot be resolved; all other unusual inputs fall back to
// documented heuristics instead of failing. Bounding points is the caller's
// job.
func (g *Generator) Generate(p models.Profile, points int, spacing time.Duration) (models.LightingSchedule, error) {
	now := g.now()

	loc, err := LoadTimezone(p.Timezone)
	if err != nil {
		return models.LightingSchedule{}, err
	}

	schedule := make([]models.LightingPoint, 0, points)
	for i := 0; i < points; i++ {
		ts := now.Add(spacing * time.Duration(i))
		temp, err := colorTempAt(p, ts.In(loc))
		if err != nil {
			return models.LightingSchedule{}, err
		}
		schedule = append(schedule, models.LightingPoint{Timestamp: ts, ColorTemp: temp})
	}

	return models.LightingSchedule{
		ProfileID:            p.ID,
		SleepStartUTCSeconds: UTCSecondsFromMidnight(p.SleepStart, loc, now),
		SleepEndUTCSeconds:   UTCSecondsFromMidnight(p.SleepEnd, loc, now),
		MinColorTemp:         p.MinColorTemp,
		MaxColorTemp:         p.MaxColorTemp,
		NightModeEnabled:     p.NightModeEnabled,
		MotionTimeoutSeconds: p.MotionTimeoutSeconds,
		GeneratedAt:          now,
		ValidUntil:           now.Add(spacing * time.Duration(points)),
		Schedule:             schedule,
	}, nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now().UTC()
}

// colorTempAt evaluates the target color temperature for one local instant.
func colorTempAt(p models.Profile, localTime time.Time) (int, error) {
	sunset, err := sunsetFor(p, localTime)
	if err != nil {
		return 0, err
	}

	currentMinutes := localTime.Hour()*60 + localTime.Minute()
	sleepStart := p.SleepStart.Minutes()
	sleepEnd := p.SleepEnd.Minutes()

	// Sleep period short-circuits the curve entirely.
	if inWindow(currentMinutes, sleepStart, sleepEnd) {
		return p.MinColorTemp, nil
	}

	return EvaluateCurve(currentMinutes, CurveBounds{
		WakeMinutes:     sleepEnd,
		SleepMinutes:    sleepStart,
		PreSleepMinutes: mod1440(sleepStart - windDownMinutes),
		SunsetMinutes:   sunset.Minutes(),
		MinTemp:         p.MinColorTemp,
		MaxTemp:         p.MaxColorTemp,
	}), nil
}
