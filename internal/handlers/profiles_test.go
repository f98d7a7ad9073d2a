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

func doRequest(r http.Handler, method, target, token string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestProfileHandlers_CRUD(t *testing.T) {
	auth := &mockAuth{parseID: 42}
	profiles := &mockProfiles{
		profile: models.Profile{ID: 3, OwnerID: 42, Name: "bedroom", Timezone: "Europe/Kyiv"},
		list:    []models.Profile{{ID: 3, Name: "bedroom"}, {ID: 4, Name: "office"}},
	}
	s := &service.Service{Authorization: auth, Profiles: profiles}
	r := newTestRouter(s)

	// Unauthenticated list → 401
	w := doRequest(r, http.MethodGet, "/api/v1/profiles", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	// List → 200 with count
	w = doRequest(r, http.MethodGet, "/api/v1/profiles", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	var listResp struct {
		Count    int              `json:"count"`
		Profiles []models.Profile `json:"profiles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if listResp.Count != 2 || len(listResp.Profiles) != 2 {
		t.Fatalf("unexpected list response: %+v", listResp)
	}
	if profiles.lastOwnerID != 42 {
		t.Fatalf("owner id not propagated: got %d", profiles.lastOwnerID)
	}

	// Create → 200 and forwards the payload
	body, _ := json.Marshal(map[string]any{
		"name":           "bedroom",
		"timezone":       "Europe/Kyiv",
		"sleep_start":    "22:30:00",
		"sleep_end":      "06:30:00",
		"min_color_temp": 2700,
		"max_color_temp": 6500,
	})
	w = doRequest(r, http.MethodPost, "/api/v1/profiles", "valid", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create status=%d, body=%s", w.Code, w.Body.String())
	}
	if profiles.lastInput.Name != "bedroom" || profiles.lastInput.Timezone != "Europe/Kyiv" {
		t.Fatalf("input not forwarded: %+v", profiles.lastInput)
	}
	if profiles.lastInput.SleepStart.Seconds() != 22*3600+30*60 {
		t.Fatalf("sleep_start parsed wrong: %v", profiles.lastInput.SleepStart)
	}

	// Create with missing required fields → 400 from binding
	w = doRequest(r, http.MethodPost, "/api/v1/profiles", "valid", []byte(`{"name":""}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid body, got %d", w.Code)
	}

	// Get with bad id → 400
	w = doRequest(r, http.MethodGet, "/api/v1/profiles/abc", "valid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}

	// Delete → 200
	w = doRequest(r, http.MethodDelete, "/api/v1/profiles/3", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d, body=%s", w.Code, w.Body.String())
	}
	if profiles.lastID != 3 {
		t.Fatalf("delete id not propagated: got %d", profiles.lastID)
	}
}

func TestProfileHandlers_NotFoundMapping(t *testing.T) {
	auth := &mockAuth{parseID: 42}
	profiles := &mockProfiles{err: service.ErrProfileNotFound}
	s := &service.Service{Authorization: auth, Profiles: profiles}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/profiles/99", "valid", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d; body=%s", w.Code, w.Body.String())
	}
}

func TestProfileScheduleHandler(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	auth := &mockAuth{parseID: 42}
	schedules := &mockSchedules{
		schedule: models.LightingSchedule{
			ProfileID:    3,
			MinColorTemp: 2700,
			MaxColorTemp: 6500,
			GeneratedAt:  now,
			Schedule: []models.LightingPoint{
				{Timestamp: now, ColorTemp: 6500},
			},
		},
	}
	s := &service.Service{Authorization: auth, Schedules: schedules}
	r := newTestRouter(s)

	// Defaults apply when no query parameters are given.
	w := doRequest(r, http.MethodGet, "/api/v1/profiles/3/schedule", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule status=%d, body=%s", w.Code, w.Body.String())
	}
	if schedules.lastOwnerID != 42 || schedules.lastProfileID != 3 {
		t.Fatalf("ids not propagated: owner=%d profile=%d", schedules.lastOwnerID, schedules.lastProfileID)
	}
	if schedules.lastOpts.Points != 0 || schedules.lastOpts.Interval != 0 {
		t.Fatalf("expected zero options for defaults, got %+v", schedules.lastOpts)
	}

	var resp models.LightingSchedule
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal schedule: %v", err)
	}
	if resp.ProfileID != 3 || len(resp.Schedule) != 1 || resp.Schedule[0].ColorTemp != 6500 {
		t.Fatalf("unexpected schedule: %+v", resp)
	}

	// Explicit points/interval are parsed and forwarded.
	w = doRequest(r, http.MethodGet, "/api/v1/profiles/3/schedule?points=48&interval=30m", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("schedule status=%d, body=%s", w.Code, w.Body.String())
	}
	if schedules.lastOpts.Points != 48 || schedules.lastOpts.Interval != 30*time.Minute {
		t.Fatalf("options not forwarded: %+v", schedules.lastOpts)
	}

	// Malformed options → 400 before the service is hit.
	w = doRequest(r, http.MethodGet, "/api/v1/profiles/3/schedule?points=-1", "valid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad points, got %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/api/v1/profiles/3/schedule?interval=zzz", "valid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad interval, got %d", w.Code)
	}
}
