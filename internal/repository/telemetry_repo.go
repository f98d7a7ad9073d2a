package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lumirum/internal/models"
)

type TelemetryRepository struct {
	db *sql.DB
}

func NewTelemetryRepository(db *sql.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

var _ Telemetry = (*TelemetryRepository)(nil)

const (
	insertTelemetrySQL = `
		INSERT INTO telemetry (
			device_id, event_type, motion_detected, light_is_on,
			brightness, color_temp, ambient_light, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectTelemetrySQL = `
		SELECT id, device_id, event_type, motion_detected, light_is_on,
		       brightness, color_temp, ambient_light, created_at
		FROM telemetry
	`
)

// Append inserts a new telemetry row. CreatedAt is set if zero.
func (r *TelemetryRepository) Append(ctx context.Context, t models.Telemetry) (models.Telemetry, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	} else {
		t.CreatedAt = t.CreatedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertTelemetrySQL,
		t.DeviceID, t.EventType, t.MotionDetected, t.LightIsOn,
		t.Brightness, t.ColorTemp, t.AmbientLight, t.CreatedAt,
	)
	if err != nil {
		return models.Telemetry{}, fmt.Errorf("insert telemetry for device=%d: %w", t.DeviceID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Telemetry{}, fmt.Errorf("get last insert id for telemetry: %w", err)
	}
	t.ID = id
	return t, nil
}

// ListByDevice returns a device's telemetry within [from, to], ordered ASC.
// Zero boundaries are left open.
func (r *TelemetryRepository) ListByDevice(ctx context.Context, deviceID int64, from, to time.Time) ([]models.Telemetry, error) {
	conds := []string{"device_id = ?"}
	args := []any{deviceID}
	conds, args = appendTimeframe(conds, args, from, to)

	query := selectTelemetrySQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY created_at ASC"
	return r.query(ctx, query, args...)
}

// ListByOwner returns telemetry from every device the owner has.
func (r *TelemetryRepository) ListByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]models.Telemetry, error) {
	conds := []string{"device_id IN (SELECT id FROM devices WHERE owner_id = ?)"}
	args := []any{ownerID}
	conds, args = appendTimeframe(conds, args, from, to)

	query := selectTelemetrySQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY created_at ASC"
	return r.query(ctx, query, args...)
}

// LatestByDevice returns the most recent telemetry row for a device.
func (r *TelemetryRepository) LatestByDevice(ctx context.Context, deviceID int64) (models.Telemetry, error) {
	row := r.db.QueryRowContext(ctx,
		selectTelemetrySQL+` WHERE device_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, deviceID)
	t, err := scanTelemetry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Telemetry{}, ErrNotFound
		}
		return models.Telemetry{}, fmt.Errorf("select latest telemetry for device=%d: %w", deviceID, err)
	}
	return t, nil
}

// DeleteByDevice removes a device's telemetry within [from, to] and reports
// how many rows went away.
func (r *TelemetryRepository) DeleteByDevice(ctx context.Context, deviceID int64, from, to time.Time) (int64, error) {
	conds := []string{"device_id = ?"}
	args := []any{deviceID}
	conds, args = appendTimeframe(conds, args, from, to)

	res, err := r.db.ExecContext(ctx, "DELETE FROM telemetry WHERE "+strings.Join(conds, " AND "), args...)
	if err != nil {
		return 0, fmt.Errorf("delete telemetry for device=%d: %w", deviceID, err)
	}
	return res.RowsAffected()
}

func appendTimeframe(conds []string, args []any, from, to time.Time) ([]string, []any) {
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC())
	}
	return conds, args
}

func (r *TelemetryRepository) query(ctx context.Context, query string, args ...any) ([]models.Telemetry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query telemetry: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Telemetry
	for rows.Next() {
		t, err := scanTelemetry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan telemetry row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTelemetry(row rowScanner) (models.Telemetry, error) {
	var (
		t                 models.Telemetry
		motion, lightIsOn sql.NullBool
		bright, temp, amb sql.NullInt64
	)
	err := row.Scan(
		&t.ID, &t.DeviceID, &t.EventType, &motion, &lightIsOn,
		&bright, &temp, &amb, &t.CreatedAt,
	)
	if err != nil {
		return models.Telemetry{}, err
	}
	if motion.Valid {
		t.MotionDetected = &motion.Bool
	}
	if lightIsOn.Valid {
		t.LightIsOn = &lightIsOn.Bool
	}
	if bright.Valid {
		v := int(bright.Int64)
		t.Brightness = &v
	}
	if temp.Valid {
		v := int(temp.Int64)
		t.ColorTemp = &v
	}
	if amb.Valid {
		v := int(amb.Int64)
		t.AmbientLight = &v
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
