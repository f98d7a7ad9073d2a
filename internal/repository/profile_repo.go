package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lumirum/internal/models"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ Profiles = (*ProfileRepository)(nil)

const (
	insertProfileSQL = `
		INSERT INTO profiles (
			owner_id, name, latitude, longitude, timezone,
			sleep_start, sleep_end, night_mode_enabled,
			min_color_temp, max_color_temp, motion_timeout_seconds, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectProfileSQL = `
		SELECT id, owner_id, name, latitude, longitude, timezone,
		       sleep_start, sleep_end, night_mode_enabled,
		       min_color_temp, max_color_temp, motion_timeout_seconds, created_at
		FROM profiles
	`

	updateProfileSQL = `
		UPDATE profiles SET
			name = ?, latitude = ?, longitude = ?, timezone = ?,
			sleep_start = ?, sleep_end = ?, night_mode_enabled = ?,
			min_color_temp = ?, max_color_temp = ?, motion_timeout_seconds = ?
		WHERE id = ?
	`

	deleteProfileSQL = `DELETE FROM profiles WHERE id = ?`
)

func (r *ProfileRepository) Create(ctx context.Context, p models.Profile) (models.Profile, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertProfileSQL,
		p.OwnerID, p.Name, p.Latitude, p.Longitude, p.Timezone,
		p.SleepStart, p.SleepEnd, p.NightModeEnabled,
		p.MinColorTemp, p.MaxColorTemp, p.MotionTimeoutSeconds, p.CreatedAt.UTC(),
	)
	if err != nil {
		return models.Profile{}, fmt.Errorf("insert profile %q: %w", p.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Profile{}, fmt.Errorf("get last insert id for profile %q: %w", p.Name, err)
	}
	p.ID = id
	return p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (models.Profile, error) {
	row := r.db.QueryRowContext(ctx, selectProfileSQL+` WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("select profile id=%d: %w", id, err)
	}
	return p, nil
}

func (r *ProfileRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfileSQL+` WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list profiles for owner=%d: %w", ownerID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p models.Profile) error {
	res, err := r.db.ExecContext(ctx, updateProfileSQL,
		p.Name, p.Latitude, p.Longitude, p.Timezone,
		p.SleepStart, p.SleepEnd, p.NightModeEnabled,
		p.MinColorTemp, p.MaxColorTemp, p.MotionTimeoutSeconds,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile id=%d: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteProfileSQL, id)
	if err != nil {
		return fmt.Errorf("delete profile id=%d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner lets scanProfile work for both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var (
		p        models.Profile
		lat, lon sql.NullFloat64
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &lat, &lon, &p.Timezone,
		&p.SleepStart, &p.SleepEnd, &p.NightModeEnabled,
		&p.MinColorTemp, &p.MaxColorTemp, &p.MotionTimeoutSeconds, &p.CreatedAt,
	)
	if err != nil {
		return models.Profile{}, err
	}
	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lon.Valid {
		p.Longitude = &lon.Float64
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
