package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/repository/db"
)

// ErrNotFound is returned when a row does not exist. Services translate it
// into their own domain errors.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type Profiles interface {
	Create(ctx context.Context, p models.Profile) (models.Profile, error)
	GetByID(ctx context.Context, id int64) (models.Profile, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Profile, error)
	Update(ctx context.Context, p models.Profile) error
	Delete(ctx context.Context, id int64) error
}

type Devices interface {
	Create(ctx context.Context, d models.Device) (models.Device, error)
	GetByID(ctx context.Context, id int64) (models.Device, error)
	GetBySecretKey(ctx context.Context, key string) (models.Device, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Device, error)
	Update(ctx context.Context, d models.Device) error
	Delete(ctx context.Context, id int64) error
	// MarkSeen records a device check-in, optionally updating the reported
	// firmware version.
	MarkSeen(ctx context.Context, id int64, at time.Time, firmware *string) error
}

type Telemetry interface {
	Append(ctx context.Context, t models.Telemetry) (models.Telemetry, error)
	ListByDevice(ctx context.Context, deviceID int64, from, to time.Time) ([]models.Telemetry, error)
	ListByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]models.Telemetry, error)
	LatestByDevice(ctx context.Context, deviceID int64) (models.Telemetry, error)
	DeleteByDevice(ctx context.Context, deviceID int64, from, to time.Time) (int64, error)
}

type Repository struct {
	Users     Users
	Profiles  Profiles
	Devices   Devices
	Telemetry Telemetry
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(sqlDB),
		Profiles:  NewProfileRepository(sqlDB),
		Devices:   NewDeviceRepository(sqlDB),
		Telemetry: NewTelemetryRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
