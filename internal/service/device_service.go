package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/repository"

	"github.com/google/uuid"
)

// DeviceInput is the create/update payload for a device.
type DeviceInput struct {
	Name      string `json:"name" binding:"required"`
	ProfileID *int64 `json:"profile_id"`
}

type DeviceService struct {
	deviceRepo repository.Devices
}

func NewDeviceService(repo repository.Devices) *DeviceService {
	return &DeviceService{deviceRepo: repo}
}

// newSecretKey returns a fresh 32-character key for device authentication.
func newSecretKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *DeviceService) Create(ctx context.Context, ownerID int64, in DeviceInput) (models.Device, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Device{}, fmt.Errorf("%w: device name is required", ErrValidation)
	}

	created, err := s.deviceRepo.Create(ctx, models.Device{
		OwnerID:   ownerID,
		Name:      in.Name,
		ProfileID: in.ProfileID,
		SecretKey: newSecretKey(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.Device{}, ErrNameTaken
		}
		return models.Device{}, err
	}
	return created, nil
}

func (s *DeviceService) List(ctx context.Context, ownerID int64) ([]models.Device, error) {
	return s.deviceRepo.ListByOwner(ctx, ownerID)
}

func (s *DeviceService) Get(ctx context.Context, ownerID, id int64) (models.Device, error) {
	return s.ownedDevice(ctx, ownerID, id)
}

func (s *DeviceService) Update(ctx context.Context, ownerID, id int64, in DeviceInput) (models.Device, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Device{}, fmt.Errorf("%w: device name is required", ErrValidation)
	}

	d, err := s.ownedDevice(ctx, ownerID, id)
	if err != nil {
		return models.Device{}, err
	}

	d.Name = in.Name
	d.ProfileID = in.ProfileID
	if err := s.deviceRepo.Update(ctx, d); err != nil {
		if isUniqueViolation(err) {
			return models.Device{}, ErrNameTaken
		}
		return models.Device{}, err
	}
	return d, nil
}

func (s *DeviceService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.ownedDevice(ctx, ownerID, id); err != nil {
		return err
	}
	return s.deviceRepo.Delete(ctx, id)
}

// RegenerateKey invalidates the current secret key. The device must be
// re-flashed with the new one.
func (s *DeviceService) RegenerateKey(ctx context.Context, ownerID, id int64) (models.Device, error) {
	d, err := s.ownedDevice(ctx, ownerID, id)
	if err != nil {
		return models.Device{}, err
	}

	d.SecretKey = newSecretKey()
	if err := s.deviceRepo.Update(ctx, d); err != nil {
		return models.Device{}, err
	}
	return d, nil
}

// AuthenticateByKey resolves a device from its secret key and records the
// check-in (last seen, reported firmware).
func (s *DeviceService) AuthenticateByKey(ctx context.Context, key string, firmware *string) (models.Device, error) {
	if key == "" {
		return models.Device{}, ErrInvalidKey
	}

	d, err := s.deviceRepo.GetBySecretKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Device{}, ErrInvalidKey
		}
		return models.Device{}, err
	}

	// Check-in bookkeeping is best effort; the schedule still goes out if
	// it fails.
	_ = s.deviceRepo.MarkSeen(ctx, d.ID, time.Now().UTC(), firmware)

	return d, nil
}

func (s *DeviceService) ownedDevice(ctx context.Context, ownerID, id int64) (models.Device, error) {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Device{}, ErrDeviceNotFound
		}
		return models.Device{}, err
	}
	if d.OwnerID != ownerID {
		return models.Device{}, ErrDeviceNotFound
	}
	return d, nil
}
