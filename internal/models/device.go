package models

import "time"

// Device is a registered light fixture. Devices authenticate with their
// secret key and pull schedules for their assigned profile.
type Device struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`

	// SecretKey is shown to the owner so it can be flashed onto hardware.
	SecretKey string `json:"secret_key"`

	ProfileID *int64 `json:"profile_id,omitempty"`

	FirmwareVersion *string    `json:"firmware_version,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
