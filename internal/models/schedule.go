package models

import "time"

// LightingSchedule is the precomputed lookup table a device follows between
// server round-trips. It is never persisted; every request recomputes it.
type LightingSchedule struct {
	ProfileID int64 `json:"profile_id"`

	// Sleep boundaries re-expressed as seconds since midnight UTC, so the
	// firmware can apply them without timezone awareness.
	SleepStartUTCSeconds uint32 `json:"sleep_start_utc_seconds"`
	SleepEndUTCSeconds   uint32 `json:"sleep_end_utc_seconds"`

	// Kelvin.
	MinColorTemp int `json:"min_color_temp"`
	MaxColorTemp int `json:"max_color_temp"`

	NightModeEnabled     bool `json:"night_mode_enabled"`
	MotionTimeoutSeconds int  `json:"motion_timeout_seconds"`

	GeneratedAt time.Time `json:"generated_at"`
	ValidUntil  time.Time `json:"valid_until"`

	Schedule []LightingPoint `json:"schedule"`
}

// LightingPoint is one entry of the lookup table. Each point is a pure
// function of its absolute timestamp, independent of neighboring points.
type LightingPoint struct {
	Timestamp time.Time `json:"utc"`
	ColorTemp int       `json:"temp"` // Kelvin, within [min, max]
}
