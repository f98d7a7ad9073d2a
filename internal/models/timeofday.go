package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time without a date, stored as seconds since
// midnight. Serialized as "HH:MM:SS" both in JSON and in the database.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from clock components, wrapping past midnight.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	s := (hour*3600 + minute*60 + second) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return TimeOfDay(s)
}

// ParseTimeOfDay parses a "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return (int(t) % 3600) / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// Seconds returns seconds since midnight, in [0, 86400).
func (t TimeOfDay) Seconds() int { return int(t) }

// Minutes returns whole minutes since midnight, in [0, 1440).
func (t TimeOfDay) Minutes() int { return int(t) / 60 }

// AddSeconds shifts the time by d seconds, wrapping around midnight in either
// direction. d may be negative.
func (t TimeOfDay) AddSeconds(d int) TimeOfDay {
	s := (int(t) + d) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return TimeOfDay(s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer so the type can be stored as TEXT.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for TEXT columns.
func (t *TimeOfDay) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
