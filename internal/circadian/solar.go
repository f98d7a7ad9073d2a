package circadian

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"

	"lumirum/internal/models"
)

// Estimated sunset sits two hours before sleep start, leaving room for an
// evening relaxation phase.
const estimatedSunsetLead = 2 * 3600

// SolarTimes computes local sunrise and sunset for the given date and
// coordinates. On polar days and nights, where the sun never crosses the
// horizon, the result degrades to an explicit policy instead of an undefined
// value: above the horizon all day means sunset at the end of the day, below
// it all day means both boundaries at the start of the day.
func SolarTimes(date time.Time, lat, lon float64) (models.TimeOfDay, models.TimeOfDay, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("%w: %v, %v", ErrInvalidCoordinates, lat, lon)
	}

	year, month, day := date.Date()
	rise, set := sunrise.SunriseSunset(lat, lon, year, month, day)
	if rise.IsZero() || set.IsZero() {
		sr, ss := polarSolarTimes(date, lat, lon)
		return sr, ss, nil
	}

	loc := date.Location()
	riseLocal := rise.In(loc)
	setLocal := set.In(loc)
	return models.NewTimeOfDay(riseLocal.Hour(), riseLocal.Minute(), riseLocal.Second()),
		models.NewTimeOfDay(setLocal.Hour(), setLocal.Minute(), setLocal.Second()),
		nil
}

// polarSolarTimes decides between polar day and polar night by sampling the
// sun's altitude at local noon.
func polarSolarTimes(date time.Time, lat, lon float64) (models.TimeOfDay, models.TimeOfDay) {
	year, month, day := date.Date()
	noon := time.Date(year, month, day, 12, 0, 0, 0, date.Location())

	if suncalc.GetPosition(noon, lat, lon).Altitude > 0 {
		// Always day: sunrise at the start of the day, sunset at the end.
		return 0, models.NewTimeOfDay(23, 59, 59)
	}
	// Always night: both boundaries collapse to the start of the day.
	return 0, 0
}

// sunsetFor returns the sunset boundary the curve needs for the date of
// localTime: computed from coordinates when the profile has them, estimated
// from the sleep schedule otherwise.
func sunsetFor(p models.Profile, localTime time.Time) (models.TimeOfDay, error) {
	if p.HasCoordinates() {
		_, sunset, err := SolarTimes(localTime, *p.Latitude, *p.Longitude)
		return sunset, err
	}
	_, sunset := EstimateSolarTimes(p)
	return sunset, nil
}

// EstimateSolarTimes synthesizes sunrise and sunset from the sleep schedule
// when no location is known: sunrise aligns with wake-up (the user wants light
// then), sunset is placed two hours before sleep start, wrapping past midnight
// when the subtraction underflows.
func EstimateSolarTimes(p models.Profile) (models.TimeOfDay, models.TimeOfDay) {
	return p.SleepEnd, p.SleepStart.AddSeconds(-estimatedSunsetLead)
}
