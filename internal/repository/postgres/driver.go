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

func (r *driverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DriverProfile, error) {
	query := `
		SELECT id, user_id, completed_requests
		FROM driver_profiles
		WHERE user_id = $1
	`
	var profile model.DriverProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get driver profile: %w", err)
	}
	return &profile, nil
}

func (r *driverRepository) EnsureProfile(ctx context.Context, userID uuid.UUID) (*model.DriverProfile, error) {
	query := `
		INSERT INTO driver_profiles (id, user_id, completed_requests)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, completed_requests
	`
	var profile model.DriverProfile
	err := r.db.GetContext(ctx, &profile, query, uuid.New(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure driver profile: %w", err)
	}
	return &profile, nil
}

func (r *driverRepository) IncrementCompleted(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE driver_profiles
		SET completed_requests = completed_requests + 1
		WHERE user_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment completed requests: %w", err)
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
