package handlers

import (
	"context"
	"net/http"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int64
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int64
	parseErr      error
	user          models.User
	getUserErr    error
	changePwdErr  error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int64, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) GetUser(ctx context.Context, id int64) (models.User, error) {
	return m.user, m.getUserErr
}
func (m *mockAuth) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	return m.changePwdErr
}

type mockProfiles struct {
	profile models.Profile
	list    []models.Profile
	err     error

	lastOwnerID int64
	lastID      int64
	lastInput   service.ProfileInput
}

func (m *mockProfiles) Create(ctx context.Context, ownerID int64, in service.ProfileInput) (models.Profile, error) {
	m.lastOwnerID = ownerID
	m.lastInput = in
	return m.profile, m.err
}
func (m *mockProfiles) List(ctx context.Context, ownerID int64) ([]models.Profile, error) {
	m.lastOwnerID = ownerID
	return m.list, m.err
}
func (m *mockProfiles) Get(ctx context.Context, ownerID, id int64) (models.Profile, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.profile, m.err
}
func (m *mockProfiles) Update(ctx context.Context, ownerID, id int64, in service.ProfileInput) (models.Profile, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	m.lastInput = in
	return m.profile, m.err
}
func (m *mockProfiles) Delete(ctx context.Context, ownerID, id int64) error {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.err
}

type mockDevices struct {
	device models.Device
	list   []models.Device
	err    error

	lastOwnerID  int64
	lastID       int64
	lastInput    service.DeviceInput
	lastKey      string
	lastFirmware *string
}

func (m *mockDevices) Create(ctx context.Context, ownerID int64, in service.DeviceInput) (models.Device, error) {
	m.lastOwnerID = ownerID
	m.lastInput = in
	return m.device, m.err
}
func (m *mockDevices) List(ctx context.Context, ownerID int64) ([]models.Device, error) {
	m.lastOwnerID = ownerID
	return m.list, m.err
}
func (m *mockDevices) Get(ctx context.Context, ownerID, id int64) (models.Device, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.device, m.err
}
func (m *mockDevices) Update(ctx context.Context, ownerID, id int64, in service.DeviceInput) (models.Device, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	m.lastInput = in
	return m.device, m.err
}
func (m *mockDevices) Delete(ctx context.Context, ownerID, id int64) error {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.err
}
func (m *mockDevices) RegenerateKey(ctx context.Context, ownerID, id int64) (models.Device, error) {
	m.lastOwnerID = ownerID
	m.lastID = id
	return m.device, m.err
}
func (m *mockDevices) AuthenticateByKey(ctx context.Context, key string, firmware *string) (models.Device, error) {
	m.lastKey = key
	m.lastFirmware = firmware
	return m.device, m.err
}

type mockTelemetry struct {
	event  models.Telemetry
	events []models.Telemetry
	count  int64
	err    error

	lastDeviceID int64
	lastOwnerID  int64
	lastFrom     time.Time
	lastTo       time.Time
	lastInput    service.TelemetryInput
}

func (m *mockTelemetry) Ingest(ctx context.Context, deviceID int64, in service.TelemetryInput) (models.Telemetry, error) {
	m.lastDeviceID = deviceID
	m.lastInput = in
	return m.event, m.err
}
func (m *mockTelemetry) List(ctx context.Context, ownerID int64, from, to time.Time) ([]models.Telemetry, error) {
	m.lastOwnerID = ownerID
	m.lastFrom = from
	m.lastTo = to
	return m.events, m.err
}
func (m *mockTelemetry) ListByDevice(ctx context.Context, ownerID, deviceID int64, from, to time.Time) ([]models.Telemetry, error) {
	m.lastOwnerID = ownerID
	m.lastDeviceID = deviceID
	m.lastFrom = from
	m.lastTo = to
	return m.events, m.err
}
func (m *mockTelemetry) LatestByDevice(ctx context.Context, ownerID, deviceID int64) (models.Telemetry, error) {
	m.lastOwnerID = ownerID
	m.lastDeviceID = deviceID
	return m.event, m.err
}
func (m *mockTelemetry) DeleteByDevice(ctx context.Context, ownerID, deviceID int64, from, to time.Time) (int64, error) {
	m.lastOwnerID = ownerID
	m.lastDeviceID = deviceID
	m.lastFrom = from
	m.lastTo = to
	return m.count, m.err
}

type mockSchedules struct {
	schedule models.LightingSchedule
	err      error

	lastOwnerID   int64
	lastProfileID int64
	lastDevice    models.Device
	lastOpts      service.ScheduleOptions
}

func (m *mockSchedules) ForProfile(ctx context.Context, ownerID, profileID int64, opts service.ScheduleOptions) (models.LightingSchedule, error) {
	m.lastOwnerID = ownerID
	m.lastProfileID = profileID
	m.lastOpts = opts
	return m.schedule, m.err
}
func (m *mockSchedules) ForDevice(ctx context.Context, device models.Device, opts service.ScheduleOptions) (models.LightingSchedule, error) {
	m.lastDevice = device
	m.lastOpts = opts
	return m.schedule, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
