package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
)

func (r *scheduleRepository) Create(ctx context.Context, entry *model.StaffSchedule) error {
	query := `
		INSERT INTO staff_schedules (
			id, staff_id, date, shift_type, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.StaffID,
		entry.Date,
		entry.ShiftType,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.StaffScheduleView, error) {
	query := `
		SELECT ss.id, ss.staff_id, ss.date, ss.shift_type,
			   ss.created_at, ss.updated_at,
			   u.name AS staff_name, u.staff_category, u.phone AS staff_phone,
			   u.email AS staff_email
		FROM staff_schedules ss
		JOIN users u ON u.id = ss.staff_id
		WHERE ss.id = $1
	`
	var entry model.StaffScheduleView
	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return &entry, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM staff_schedules
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *scheduleRepository) ListAll(ctx context.Context) ([]*model.StaffScheduleView, error) {
	query := `
		SELECT ss.id, ss.staff_id, ss.date, ss.shift_type,
			   ss.created_at, ss.updated_at,
			   u.name AS staff_name, u.staff_category, u.phone AS staff_phone,
			   u.email AS staff_email
		FROM staff_schedules ss
		JOIN users u ON u.id = ss.staff_id
		ORDER BY ss.date DESC
	`
	var entries []*model.StaffScheduleView
	err := r.db.SelectContext(ctx, &entries, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return entries, nil
}

func (r *scheduleRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.StaffScheduleView, error) {
	query := `
		SELECT ss.id, ss.staff_id, ss.date, ss.shift_type,
			   ss.created_at, ss.updated_at,
			   u.name AS staff_name, u.staff_category, u.phone AS staff_phone,
			   u.email AS staff_email
		FROM staff_schedules ss
		JOIN users u ON u.id = ss.staff_id
		WHERE ss.staff_id = $1
		ORDER BY ss.date DESC
	`
	var entries []*model.StaffScheduleView
	err := r.db.SelectContext(ctx, &entries, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff schedule: %w", err)
	}
	return entries, nil
}
