package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
)

func (r *donorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DonorProfile, error) {
	query := `
		SELECT id, user_id, blood_type, location, available, completed_count
		FROM donor_profiles
		WHERE user_id = $1
	`
	var profile model.DonorProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get donor profile: %w", err)
	}
	return &profile, nil
}

// EnsureProfile upserts on user_id so a donor's first action creates
// the profile row. Empty blood_type/location columns are backfilled on
// later calls that carry real values.
func (r *donorRepository) EnsureProfile(ctx context.Context, userID uuid.UUID, bloodType, location string) (*model.DonorProfile, error) {
	query := `
		INSERT INTO donor_profiles (id, user_id, blood_type, location, available, completed_count)
		VALUES ($1, $2, $3, $4, TRUE, 0)
		ON CONFLICT (user_id) DO UPDATE SET
			blood_type = COALESCE(NULLIF(donor_profiles.blood_type, ''), EXCLUDED.blood_type),
			location   = COALESCE(NULLIF(donor_profiles.location, ''), EXCLUDED.location)
		RETURNING id, user_id, blood_type, location, available, completed_count
	`
	var profile model.DonorProfile
	err := r.db.GetContext(ctx, &profile, query, uuid.New(), userID, bloodType, location)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure donor profile: %w", err)
	}
	return &profile, nil
}

func (r *donorRepository) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error {
	query := `
		UPDATE donor_profiles
		SET available = $1
		WHERE user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, available, userID)
	if err != nil {
		return fmt.Errorf("failed to set donor availability: %w", err)
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

func (r *donorRepository) IncrementCompleted(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE donor_profiles
		SET completed_count = completed_count + 1
		WHERE user_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment completed count: %w", err)
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
