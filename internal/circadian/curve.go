package circadian

const (
	minutesPerDay = 24 * 60

	// The morning boost runs for one hour after waking; the final wind-down
	// starts one hour before sleep.
	morningBoostMinutes = 60
	windDownMinutes     = 60
)

// CurveBounds are the day's phase boundaries (minutes since local midnight)
// and the color temperature range the curve interpolates between.
type CurveBounds struct {
	WakeMinutes     int
	SleepMinutes    int
	PreSleepMinutes int
	SunsetMinutes   int

	MinTemp int // Kelvin
	MaxTemp int // Kelvin
}

// relaxTemp is the evening plateau target: warmer than daylight, brighter
// than the nightlight. E.g. max 6500 and min 2000 give 3500.
func (b CurveBounds) relaxTemp() int {
	return b.MinTemp + (b.MaxTemp-b.MinTemp)/3
}

// EvaluateCurve maps a time of day to a target color temperature in Kelvin.
// The result is always within [MinTemp, MaxTemp].
//
// The day splits into four phases, checked in a fixed order. The order is the
// conflict-resolution policy for overlapping windows (a late summer sunset can
// run past pre-sleep) and must not be rearranged; in particular the wind-down
// is checked before the sunset phase so the declared sleep schedule always
// overrides solar timing.
//
//  1. Morning Boost  [wake, wake+1h):     min -> max, ease-out
//  2. Final Wind-down [pre-sleep, sleep): relax -> min, ease-in
//  3. Evening Relaxation [sunset, pre-sleep): max -> relax, linear
//  4. Daylight default:                   max
//
// The sleep period itself is the caller's concern: callers return MinTemp for
// times inside [sleep, wake) without invoking the curve.
func EvaluateCurve(currentMinutes int, b CurveBounds) int {
	span := float64(b.MaxTemp - b.MinTemp)

	morningEnd := (b.WakeMinutes + morningBoostMinutes) % minutesPerDay
	if inWindow(currentMinutes, b.WakeMinutes, morningEnd) {
		t := progress(currentMinutes, b.WakeMinutes, morningEnd)
		eased := 1 - (1-t)*(1-t) // fast rise, slowing toward the end
		return b.MinTemp + int(span*eased)
	}

	relax := b.relaxTemp()

	if inWindow(currentMinutes, b.PreSleepMinutes, b.SleepMinutes) {
		t := progress(currentMinutes, b.PreSleepMinutes, b.SleepMinutes)
		eased := t * t // slow start, fast finish
		return relax - int(float64(relax-b.MinTemp)*eased)
	}

	if inWindow(currentMinutes, b.SunsetMinutes, b.PreSleepMinutes) {
		t := progress(currentMinutes, b.SunsetMinutes, b.PreSleepMinutes)
		return b.MaxTemp - int(float64(b.MaxTemp-relax)*t)
	}

	return b.MaxTemp
}

// inWindow reports whether curr lies in the half-open window [start, end),
// which may wrap past midnight when end is numerically before start.
func inWindow(curr, start, end int) bool {
	if start <= end {
		return curr >= start && curr < end
	}
	return curr >= start || curr < end
}

// progress is the fraction of the circular window [start, end) elapsed at
// curr, clamped to [0, 1]. A zero-length window counts as already complete,
// which also avoids dividing by zero.
func progress(curr, start, end int) float64 {
	total := mod1440(end - start)
	if total == 0 {
		return 1
	}
	elapsed := mod1440(curr - start)
	t := float64(elapsed) / float64(total)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func mod1440(v int) int {
	v %= minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return v
}
