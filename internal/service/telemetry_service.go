package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/repository"
)

// TelemetryInput is the ingest payload devices send.
type TelemetryInput struct {
	EventType      string `json:"event_type" binding:"required"`
	MotionDetected *bool  `json:"motion_detected"`
	LightIsOn      *bool  `json:"light_is_on"`
	Brightness     *int   `json:"brightness"`
	ColorTemp      *int   `json:"color_temp"`
	AmbientLight   *int   `json:"ambient_light"`
}

type TelemetryService struct {
	telemetryRepo repository.Telemetry
	deviceRepo    repository.Devices
}

func NewTelemetryService(telemetryRepo repository.Telemetry, deviceRepo repository.Devices) *TelemetryService {
	return &TelemetryService{telemetryRepo: telemetryRepo, deviceRepo: deviceRepo}
}

var errInvalidTimeRange = fmt.Errorf("%w: from must be <= to", ErrValidation)

// Ingest validates and stores one telemetry event for an already
// authenticated device.
func (s *TelemetryService) Ingest(ctx context.Context, deviceID int64, in TelemetryInput) (models.Telemetry, error) {
	if strings.TrimSpace(in.EventType) == "" {
		return models.Telemetry{}, fmt.Errorf("%w: event_type is required", ErrValidation)
	}
	if in.Brightness != nil && (*in.Brightness < 0 || *in.Brightness > 100) {
		return models.Telemetry{}, fmt.Errorf("%w: brightness must be within 0-100", ErrValidation)
	}
	if in.ColorTemp != nil && (*in.ColorTemp < minRenderableTempK || *in.ColorTemp > maxRenderableTempK) {
		return models.Telemetry{}, fmt.Errorf("%w: color_temp must be within %d-%d K", ErrValidation, minRenderableTempK, maxRenderableTempK)
	}

	return s.telemetryRepo.Append(ctx, models.Telemetry{
		DeviceID:       deviceID,
		EventType:      strings.TrimSpace(in.EventType),
		MotionDetected: in.MotionDetected,
		LightIsOn:      in.LightIsOn,
		Brightness:     in.Brightness,
		ColorTemp:      in.ColorTemp,
		AmbientLight:   in.AmbientLight,
	})
}

func (s *TelemetryService) List(ctx context.Context, ownerID int64, from, to time.Time) ([]models.Telemetry, error) {
	if err := validateTimeframe(from, to); err != nil {
		return nil, err
	}
	return s.telemetryRepo.ListByOwner(ctx, ownerID, from, to)
}

func (s *TelemetryService) ListByDevice(ctx context.Context, ownerID, deviceID int64, from, to time.Time) ([]models.Telemetry, error) {
	if err := validateTimeframe(from, to); err != nil {
		return nil, err
	}
	if err := s.checkDeviceOwnership(ctx, ownerID, deviceID); err != nil {
		return nil, err
	}
	return s.telemetryRepo.ListByDevice(ctx, deviceID, from, to)
}

func (s *TelemetryService) LatestByDevice(ctx context.Context, ownerID, deviceID int64) (models.Telemetry, error) {
	if err := s.checkDeviceOwnership(ctx, ownerID, deviceID); err != nil {
		return models.Telemetry{}, err
	}
	t, err := s.telemetryRepo.LatestByDevice(ctx, deviceID)
	if errors.Is(err, repository.ErrNotFound) {
		// No data yet is not an error for a live stream; return an empty
		// snapshot tagged with the device.
		return models.Telemetry{DeviceID: deviceID}, nil
	}
	return t, err
}

func (s *TelemetryService) DeleteByDevice(ctx context.Context, ownerID, deviceID int64, from, to time.Time) (int64, error) {
	if err := validateTimeframe(from, to); err != nil {
		return 0, err
	}
	if err := s.checkDeviceOwnership(ctx, ownerID, deviceID); err != nil {
		return 0, err
	}
	return s.telemetryRepo.DeleteByDevice(ctx, deviceID, from, to)
}

func (s *TelemetryService) checkDeviceOwnership(ctx context.Context, ownerID, deviceID int64) error {
	d, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}
	if d.OwnerID != ownerID {
		return ErrDeviceNotFound
	}
	return nil
}

func validateTimeframe(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return errInvalidTimeRange
	}
	return nil
}
