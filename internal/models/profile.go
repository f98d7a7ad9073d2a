package models

import "time"

// Profile holds a user's circadian lighting configuration. Devices are
// assigned a profile and receive schedules computed from it.
type Profile struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`

	// Optional location; when absent solar times are estimated from
	// the sleep schedule.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// IANA timezone name, e.g. "Europe/Kyiv".
	Timezone string `json:"timezone"`

	SleepStart TimeOfDay `json:"sleep_start"`
	SleepEnd   TimeOfDay `json:"sleep_end"`

	NightModeEnabled bool `json:"night_mode_enabled"`

	// Color temperature bounds in Kelvin.
	MinColorTemp int `json:"min_color_temp"`
	MaxColorTemp int `json:"max_color_temp"`

	MotionTimeoutSeconds int `json:"motion_timeout_seconds"`

	CreatedAt time.Time `json:"created_at"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (p Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
