package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lumirum/internal/circadian"
	"lumirum/internal/models"
	"lumirum/internal/repository"
)

// maxSchedulePoints bounds a single schedule so a mistaken or malicious
// request cannot allocate without limit.
const maxSchedulePoints = 10_000

// ScheduleConfig sets the shape of a schedule when the caller does not ask
// for one. The defaults cover 24 hours at the resolution the firmware stores.
type ScheduleConfig struct {
	DefaultPoints   int
	DefaultInterval time.Duration
}

// ScheduleOptions selects the number of points and their spacing. Zero values
// fall back to the configured defaults.
type ScheduleOptions struct {
	Points   int
	Interval time.Duration
}

type ScheduleService struct {
	profileRepo repository.Profiles
	generator   *circadian.Generator
	cfg         ScheduleConfig
}

func NewScheduleService(profileRepo repository.Profiles, cfg ScheduleConfig) *ScheduleService {
	if cfg.DefaultPoints <= 0 {
		cfg.DefaultPoints = 96
	}
	if cfg.DefaultInterval <= 0 {
		cfg.DefaultInterval = 15 * time.Minute
	}
	return &ScheduleService{
		profileRepo: profileRepo,
		generator:   &circadian.Generator{},
		cfg:         cfg,
	}
}

// ForProfile computes a fresh schedule for one of the owner's profiles.
func (s *ScheduleService) ForProfile(ctx context.Context, ownerID, profileID int64, opts ScheduleOptions) (models.LightingSchedule, error) {
	p, err := ownedProfile(ctx, s.profileRepo, ownerID, profileID)
	if err != nil {
		return models.LightingSchedule{}, err
	}
	return s.generate(p, opts)
}

// ForDevice computes a schedule for an already authenticated device's
// assigned profile.
func (s *ScheduleService) ForDevice(ctx context.Context, device models.Device, opts ScheduleOptions) (models.LightingSchedule, error) {
	if device.ProfileID == nil {
		return models.LightingSchedule{}, ErrNoProfile
	}

	p, err := s.profileRepo.GetByID(ctx, *device.ProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.LightingSchedule{}, ErrNoProfile
		}
		return models.LightingSchedule{}, err
	}
	return s.generate(p, opts)
}

func (s *ScheduleService) generate(p models.Profile, opts ScheduleOptions) (models.LightingSchedule, error) {
	points := opts.Points
	if points <= 0 {
		points = s.cfg.DefaultPoints
	}
	if points > maxSchedulePoints {
		return models.LightingSchedule{}, fmt.Errorf("%w: points must not exceed %d", ErrValidation, maxSchedulePoints)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = s.cfg.DefaultInterval
	}

	return s.generator.Generate(p, points, interval)
}
