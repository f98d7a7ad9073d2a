package service

import (
	"context"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int64, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int64, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error
}

// Profiles owns the circadian configuration CRUD. Everything is scoped to the
// authenticated owner.
type Profiles interface {
	Create(ctx context.Context, ownerID int64, in ProfileInput) (models.Profile, error)
	List(ctx context.Context, ownerID int64) ([]models.Profile, error)
	Get(ctx context.Context, ownerID, id int64) (models.Profile, error)
	Update(ctx context.Context, ownerID, id int64, in ProfileInput) (models.Profile, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Devices owns fixture registration and key management.
type Devices interface {
	Create(ctx context.Context, ownerID int64, in DeviceInput) (models.Device, error)
	List(ctx context.Context, ownerID int64) ([]models.Device, error)
	Get(ctx context.Context, ownerID, id int64) (models.Device, error)
	Update(ctx context.Context, ownerID, id int64, in DeviceInput) (models.Device, error)
	Delete(ctx context.Context, ownerID, id int64) error
	RegenerateKey(ctx context.Context, ownerID, id int64) (models.Device, error)
	// AuthenticateByKey resolves a device from its secret key and records
	// the check-in.
	AuthenticateByKey(ctx context.Context, key string, firmware *string) (models.Device, error)
}

type Telemetry interface {
	Ingest(ctx context.Context, deviceID int64, in TelemetryInput) (models.Telemetry, error)
	List(ctx context.Context, ownerID int64, from, to time.Time) ([]models.Telemetry, error)
	ListByDevice(ctx context.Context, ownerID, deviceID int64, from, to time.Time) ([]models.Telemetry, error)
	LatestByDevice(ctx context.Context, ownerID, deviceID int64) (models.Telemetry, error)
	DeleteByDevice(ctx context.Context, ownerID, deviceID int64, from, to time.Time) (int64, error)
}

// Schedules bridges profiles to the circadian engine. Schedules are computed
// per request and never stored.
type Schedules interface {
	ForProfile(ctx context.Context, ownerID, profileID int64, opts ScheduleOptions) (models.LightingSchedule, error)
	ForDevice(ctx context.Context, device models.Device, opts ScheduleOptions) (models.LightingSchedule, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Profiles
	Devices
	Telemetry
	Schedules
}

// Config carries the tunables services need beyond their repositories.
type Config struct {
	Auth     AuthConfig
	Schedule ScheduleConfig
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.Auth),
		Profiles:      NewProfileService(repos.Profiles),
		Devices:       NewDeviceService(repos.Devices),
		Telemetry:     NewTelemetryService(repos.Telemetry, repos.Devices),
		Schedules:     NewScheduleService(repos.Profiles, cfg.Schedule),
	}
}
