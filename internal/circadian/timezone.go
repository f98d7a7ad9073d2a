package circadian

import (
	"fmt"
	"sort"
	"time"

	"lumirum/internal/models"
)

// LoadTimezone resolves an IANA timezone name against the system tz database.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// UTCSecondsFromMidnight converts a local wall-clock time to seconds since
// midnight UTC, for the date currently observed in loc at the instant now.
//
// Daylight-saving handling:
//   - a wall clock that exists once converts directly;
//   - a repeated wall clock (fall-back hour) resolves to the earlier of the
//     two instants;
//   - a skipped wall clock (spring-forward gap) has no real instant, so the
//     conversion falls back to plain arithmetic with the offset observed at
//     now, ignoring the transition.
func UTCSecondsFromMidnight(local models.TimeOfDay, loc *time.Location, now time.Time) uint32 {
	year, month, day := now.In(loc).Date()

	// Wall clock reading, pinned to UTC so offset arithmetic below is exact.
	naive := time.Date(year, month, day, local.Hour(), local.Minute(), local.Second(), 0, time.UTC)

	candidates := realInstants(naive, loc)
	if len(candidates) == 0 {
		_, offset := now.In(loc).Zone()
		forced := naive.Add(-time.Duration(offset) * time.Second)
		return secondsFromMidnightUTC(forced)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	return secondsFromMidnightUTC(candidates[0])
}

// realInstants returns every UTC instant whose wall clock in loc reads naive.
// Probing the offsets in effect a day before and after covers any transition
// crossing the target date; each distinct offset yields at most one candidate.
func realInstants(naive time.Time, loc *time.Location) []time.Time {
	seen := make(map[int]bool, 3)
	var out []time.Time
	for _, probe := range []time.Time{naive.Add(-24 * time.Hour), naive, naive.Add(24 * time.Hour)} {
		_, offset := probe.In(loc).Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true

		cand := naive.Add(-time.Duration(offset) * time.Second)
		if sameWallClock(cand.In(loc), naive) {
			out = append(out, cand)
		}
	}
	return out
}

func sameWallClock(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

func secondsFromMidnightUTC(t time.Time) uint32 {
	u := t.UTC()
	return uint32(u.Hour()*3600 + u.Minute()*60 + u.Second())
}
