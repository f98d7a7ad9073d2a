package models

import "time"

// Telemetry is a single event reported by a device.
type Telemetry struct {
	ID       int64 `json:"id"`
	DeviceID int64 `json:"device_id"`

	EventType string `json:"event_type"` // e.g. motion_detected, light_changed

	MotionDetected *bool `json:"motion_detected,omitempty"`
	LightIsOn      *bool `json:"light_is_on,omitempty"`
	Brightness     *int  `json:"brightness,omitempty"`    // 0..100
	ColorTemp      *int  `json:"color_temp,omitempty"`    // Kelvin
	AmbientLight   *int  `json:"ambient_light,omitempty"` // raw sensor units

	CreatedAt time.Time `json:"created_at"`
}
