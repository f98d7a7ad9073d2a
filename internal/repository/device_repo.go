package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lumirum/internal/models"
)

type DeviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

var _ Devices = (*DeviceRepository)(nil)

const (
	insertDeviceSQL = `
		INSERT INTO devices (owner_id, profile_id, name, secret_key, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	selectDeviceSQL = `
		SELECT id, owner_id, profile_id, name, secret_key,
		       firmware_version, last_seen, created_at
		FROM devices
	`

	updateDeviceSQL = `
		UPDATE devices SET
			name = ?, profile_id = ?, secret_key = ?
		WHERE id = ?
	`

	deleteDeviceSQL   = `DELETE FROM devices WHERE id = ?`
	markDeviceSeenSQL = `
		UPDATE devices SET
			last_seen = ?,
			firmware_version = COALESCE(?, firmware_version)
		WHERE id = ?
	`
)

func (r *DeviceRepository) Create(ctx context.Context, d models.Device) (models.Device, error) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertDeviceSQL,
		d.OwnerID, d.ProfileID, d.Name, d.SecretKey, d.CreatedAt.UTC(),
	)
	if err != nil {
		return models.Device{}, fmt.Errorf("insert device %q: %w", d.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Device{}, fmt.Errorf("get last insert id for device %q: %w", d.Name, err)
	}
	d.ID = id
	return d, nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id int64) (models.Device, error) {
	row := r.db.QueryRowContext(ctx, selectDeviceSQL+` WHERE id = ?`, id)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Device{}, ErrNotFound
		}
		return models.Device{}, fmt.Errorf("select device id=%d: %w", id, err)
	}
	return d, nil
}

func (r *DeviceRepository) GetBySecretKey(ctx context.Context, key string) (models.Device, error) {
	row := r.db.QueryRowContext(ctx, selectDeviceSQL+` WHERE secret_key = ?`, key)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Device{}, ErrNotFound
		}
		return models.Device{}, fmt.Errorf("select device by key: %w", err)
	}
	return d, nil
}

func (r *DeviceRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx, selectDeviceSQL+` WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list devices for owner=%d: %w", ownerID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DeviceRepository) Update(ctx context.Context, d models.Device) error {
	res, err := r.db.ExecContext(ctx, updateDeviceSQL, d.Name, d.ProfileID, d.SecretKey, d.ID)
	if err != nil {
		return fmt.Errorf("update device id=%d: %w", d.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteDeviceSQL, id)
	if err != nil {
		return fmt.Errorf("delete device id=%d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DeviceRepository) MarkSeen(ctx context.Context, id int64, at time.Time, firmware *string) error {
	_, err := r.db.ExecContext(ctx, markDeviceSeenSQL, at.UTC(), firmware, id)
	if err != nil {
		return fmt.Errorf("mark device id=%d seen: %w", id, err)
	}
	return nil
}

func scanDevice(row rowScanner) (models.Device, error) {
	var (
		d         models.Device
		profileID sql.NullInt64
		firmware  sql.NullString
		lastSeen  sql.NullTime
	)
	err := row.Scan(
		&d.ID, &d.OwnerID, &profileID, &d.Name, &d.SecretKey,
		&firmware, &lastSeen, &d.CreatedAt,
	)
	if err != nil {
		return models.Device{}, err
	}
	if profileID.Valid {
		d.ProfileID = &profileID.Int64
	}
	if firmware.Valid {
		d.FirmwareVersion = &firmware.String
	}
	if lastSeen.Valid {
		t := lastSeen.Time.UTC()
		d.LastSeen = &t
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return d, nil
}
