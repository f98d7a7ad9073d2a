package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lumirum/internal/circadian"
	"lumirum/internal/models"
	"lumirum/internal/repository"
)

// Color temperature limits the hardware can render.
const (
	minRenderableTempK = 1800
	maxRenderableTempK = 10000
)

// ProfileInput is the create/update payload for a profile.
type ProfileInput struct {
	Name                 string           `json:"name" binding:"required"`
	Latitude             *float64         `json:"latitude"`
	Longitude            *float64         `json:"longitude"`
	Timezone             string           `json:"timezone" binding:"required"`
	SleepStart           models.TimeOfDay `json:"sleep_start"`
	SleepEnd             models.TimeOfDay `json:"sleep_end"`
	NightModeEnabled     bool             `json:"night_mode_enabled"`
	MinColorTemp         int              `json:"min_color_temp"`
	MaxColorTemp         int              `json:"max_color_temp"`
	MotionTimeoutSeconds int              `json:"motion_timeout_seconds"`
}

type ProfileService struct {
	profileRepo repository.Profiles
}

func NewProfileService(repo repository.Profiles) *ProfileService {
	return &ProfileService{profileRepo: repo}
}

func (s *ProfileService) Create(ctx context.Context, ownerID int64, in ProfileInput) (models.Profile, error) {
	if err := validateProfileInput(in); err != nil {
		return models.Profile{}, err
	}

	created, err := s.profileRepo.Create(ctx, profileFromInput(ownerID, in))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Profile{}, ErrNameTaken
		}
		return models.Profile{}, err
	}
	return created, nil
}

func (s *ProfileService) List(ctx context.Context, ownerID int64) ([]models.Profile, error) {
	return s.profileRepo.ListByOwner(ctx, ownerID)
}

func (s *ProfileService) Get(ctx context.Context, ownerID, id int64) (models.Profile, error) {
	return ownedProfile(ctx, s.profileRepo, ownerID, id)
}

func (s *ProfileService) Update(ctx context.Context, ownerID, id int64, in ProfileInput) (models.Profile, error) {
	if err := validateProfileInput(in); err != nil {
		return models.Profile{}, err
	}

	existing, err := ownedProfile(ctx, s.profileRepo, ownerID, id)
	if err != nil {
		return models.Profile{}, err
	}

	updated := profileFromInput(ownerID, in)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.profileRepo.Update(ctx, updated); err != nil {
		if isUniqueViolation(err) {
			return models.Profile{}, ErrNameTaken
		}
		return models.Profile{}, err
	}
	return updated, nil
}

func (s *ProfileService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := ownedProfile(ctx, s.profileRepo, ownerID, id); err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, id)
}

// ownedProfile loads a profile and hides other owners' profiles behind
// not-found, so IDs cannot be probed.
func ownedProfile(ctx context.Context, repo repository.Profiles, ownerID, id int64) (models.Profile, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	if p.OwnerID != ownerID {
		return models.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func profileFromInput(ownerID int64, in ProfileInput) models.Profile {
	return models.Profile{
		OwnerID:              ownerID,
		Name:                 in.Name,
		Latitude:             in.Latitude,
		Longitude:            in.Longitude,
		Timezone:             in.Timezone,
		SleepStart:           in.SleepStart,
		SleepEnd:             in.SleepEnd,
		NightModeEnabled:     in.NightModeEnabled,
		MinColorTemp:         in.MinColorTemp,
		MaxColorTemp:         in.MaxColorTemp,
		MotionTimeoutSeconds: in.MotionTimeoutSeconds,
	}
}

// validateProfileInput rejects configurations the schedule engine would
// refuse at generation time, so mistakes surface on write instead of on the
// device's next poll.
func validateProfileInput(in ProfileInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrValidation)
	}

	if _, err := circadian.LoadTimezone(in.Timezone); err != nil {
		return err
	}

	if (in.Latitude == nil) != (in.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", circadian.ErrInvalidCoordinates)
	}
	if in.Latitude != nil {
		lat, lon := *in.Latitude, *in.Longitude
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return fmt.Errorf("%w: %v, %v", circadian.ErrInvalidCoordinates, lat, lon)
		}
	}

	if in.MinColorTemp < minRenderableTempK || in.MaxColorTemp > maxRenderableTempK {
		return fmt.Errorf("%w: color temperature must stay within %d-%d K", ErrValidation, minRenderableTempK, maxRenderableTempK)
	}
	if in.MinColorTemp > in.MaxColorTemp {
		return fmt.Errorf("%w: min_color_temp must not exceed max_color_temp", ErrValidation)
	}

	if in.MotionTimeoutSeconds < 0 {
		return fmt.Errorf("%w: motion_timeout_seconds must not be negative", ErrValidation)
	}

	return nil
}

// isUniqueViolation sniffs the driver error text; modernc.org/sqlite exposes
// no typed constraint errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
