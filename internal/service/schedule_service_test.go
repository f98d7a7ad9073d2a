package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lumirum/internal/models"
	"lumirum/internal/repository"
)

// mockProfileRepo is a lightweight in-test mock for repository.Profiles.
type mockProfileRepo struct {
	profiles map[int64]models.Profile

	nextID    int64
	createErr error
	updateErr error

	lastCreated models.Profile
	lastUpdated models.Profile
	deleted     []int64
}

func (m *mockProfileRepo) Create(ctx context.Context, p models.Profile) (models.Profile, error) {
	if m.createErr != nil {
		return models.Profile{}, m.createErr
	}
	m.nextID++
	p.ID = m.nextID
	m.lastCreated = p
	return p, nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id int64) (models.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return models.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range m.profiles {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p models.Profile) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.lastUpdated = p
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func mustTimeOfDay(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	tod, err := models.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tod
}

func testProfile(t *testing.T) models.Profile {
	t.Helper()
	return models.Profile{
		ID:                   3,
		OwnerID:              42,
		Name:                 "bedroom",
		Timezone:             "Europe/Kyiv",
		SleepStart:           mustTimeOfDay(t, "22:30:00"),
		SleepEnd:             mustTimeOfDay(t, "06:30:00"),
		MinColorTemp:         2700,
		MaxColorTemp:         6500,
		MotionTimeoutSeconds: 300,
	}
}

func TestScheduleService_ForProfile_Defaults(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[int64]models.Profile{3: testProfile(t)}}
	svc := NewScheduleService(repo, ScheduleConfig{})

	sched, err := svc.ForProfile(context.Background(), 42, 3, ScheduleOptions{})
	if err != nil {
		t.Fatalf("ForProfile failed: %v", err)
	}
	if len(sched.Schedule) != 96 {
		t.Fatalf("expected 96 default points, got %d", len(sched.Schedule))
	}
	if sched.ProfileID != 3 {
		t.Fatalf("expected profile id 3, got %d", sched.ProfileID)
	}
	if got := sched.ValidUntil.Sub(sched.GeneratedAt); got != 96*15*time.Minute {
		t.Fatalf("expected 24h validity window, got %v", got)
	}
}

func TestScheduleService_ForProfile_ExplicitOptions(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[int64]models.Profile{3: testProfile(t)}}
	svc := NewScheduleService(repo, ScheduleConfig{})

	sched, err := svc.ForProfile(context.Background(), 42, 3, ScheduleOptions{Points: 24, Interval: time.Hour})
	if err != nil {
		t.Fatalf("ForProfile failed: %v", err)
	}
	if len(sched.Schedule) != 24 {
		t.Fatalf("expected 24 points, got %d", len(sched.Schedule))
	}
}

func TestScheduleService_ForProfile_PointCap(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[int64]models.Profile{3: testProfile(t)}}
	svc := NewScheduleService(repo, ScheduleConfig{})

	_, err := svc.ForProfile(context.Background(), 42, 3, ScheduleOptions{Points: maxSchedulePoints + 1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for oversized request, got %v", err)
	}
}

func TestScheduleService_ForProfile_OwnershipScoped(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[int64]models.Profile{3: testProfile(t)}}
	svc := NewScheduleService(repo, ScheduleConfig{})

	// Another user cannot see the profile at all.
	_, err := svc.ForProfile(context.Background(), 99, 3, ScheduleOptions{})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for foreign owner, got %v", err)
	}
}

func TestScheduleService_ForDevice(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[int64]models.Profile{3: testProfile(t)}}
	svc := NewScheduleService(repo, ScheduleConfig{})

	// No profile assigned.
	_, err := svc.ForDevice(context.Background(), models.Device{ID: 9}, ScheduleOptions{})
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}

	// Assigned profile no longer exists.
	gone := int64(777)
	_, err = svc.ForDevice(context.Background(), models.Device{ID: 9, ProfileID: &gone}, ScheduleOptions{})
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile for missing profile, got %v", err)
	}

	// Happy path.
	pid := int64(3)
	sched, err := svc.ForDevice(context.Background(), models.Device{ID: 9, ProfileID: &pid}, ScheduleOptions{})
	if err != nil {
		t.Fatalf("ForDevice failed: %v", err)
	}
	if sched.ProfileID != 3 || len(sched.Schedule) != 96 {
		t.Fatalf("unexpected schedule: profile=%d points=%d", sched.ProfileID, len(sched.Schedule))
	}
}
