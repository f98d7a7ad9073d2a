package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/service"
)

func TestDeviceSchedule_PullWithKey(t *testing.T) {
	profileID := int64(5)
	devices := &mockDevices{device: models.Device{ID: 9, OwnerID: 1, Name: "hallway", ProfileID: &profileID}}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	schedules := &mockSchedules{
		schedule: models.LightingSchedule{
			ProfileID:            5,
			SleepStartUTCSeconds: 19800,
			SleepEndUTCSeconds:   12600,
			MinColorTemp:         2700,
			MaxColorTemp:         6500,
			GeneratedAt:          now,
			ValidUntil:           now.Add(24 * time.Hour),
			Schedule:             []models.LightingPoint{{Timestamp: now, ColorTemp: 6500}},
		},
	}
	s := &service.Service{Devices: devices, Schedules: schedules}
	r := newTestRouter(s)

	// Without key → 401
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/device/circadian", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", w.Code)
	}

	// With key → 200 and schedule JSON in the firmware wire format
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/device/circadian", nil)
	req.Header.Set(apiKeyHeader, "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule status=%d, body=%s", w.Code, w.Body.String())
	}
	if schedules.lastDevice.ID != 9 {
		t.Fatalf("device not forwarded to schedule service: %+v", schedules.lastDevice)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"profile_id",
		"sleep_start_utc_seconds",
		"sleep_end_utc_seconds",
		"min_color_temp",
		"max_color_temp",
		"night_mode_enabled",
		"motion_timeout_seconds",
		"generated_at",
		"valid_until",
		"schedule",
	} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing wire key %q in %s", key, w.Body.String())
		}
	}

	var points []struct {
		UTC  time.Time `json:"utc"`
		Temp int       `json:"temp"`
	}
	if err := json.Unmarshal(raw["schedule"], &points); err != nil {
		t.Fatalf("unmarshal points: %v", err)
	}
	if len(points) != 1 || points[0].Temp != 6500 {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestDeviceSchedule_NoProfileAssigned(t *testing.T) {
	devices := &mockDevices{device: models.Device{ID: 9, OwnerID: 1, Name: "hallway"}}
	schedules := &mockSchedules{err: service.ErrNoProfile}
	s := &service.Service{Devices: devices, Schedules: schedules}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/device/circadian", nil)
	req.Header.Set(apiKeyHeader, "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when no profile assigned, got %d; body=%s", w.Code, w.Body.String())
	}
}

func TestDeviceTelemetry_Ingest(t *testing.T) {
	devices := &mockDevices{device: models.Device{ID: 9, OwnerID: 1, Name: "hallway"}}
	motion := true
	telemetry := &mockTelemetry{event: models.Telemetry{ID: 1, DeviceID: 9, EventType: "motion_detected", MotionDetected: &motion}}
	s := &service.Service{Devices: devices, Telemetry: telemetry}
	r := newTestRouter(s)

	body, _ := json.Marshal(map[string]any{
		"event_type":      "motion_detected",
		"motion_detected": true,
		"brightness":      80,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/device/telemetry", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("ingest status=%d, body=%s", w.Code, w.Body.String())
	}
	if telemetry.lastDeviceID != 9 {
		t.Fatalf("device id not propagated: %d", telemetry.lastDeviceID)
	}
	if telemetry.lastInput.EventType != "motion_detected" {
		t.Fatalf("input not forwarded: %+v", telemetry.lastInput)
	}
	if telemetry.lastInput.Brightness == nil || *telemetry.lastInput.Brightness != 80 {
		t.Fatalf("brightness not forwarded: %v", telemetry.lastInput.Brightness)
	}

	// Missing event_type → 400 from binding
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/device/telemetry", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", w.Code)
	}
}
