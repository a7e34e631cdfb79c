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

func (r *bedRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bed, error) {
	query := `
		SELECT id, code, type, category, is_active, created_at, updated_at
		FROM beds
		WHERE id = $1
	`
	var bed model.Bed
	err := r.db.GetContext(ctx, &bed, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bed: %w", err)
	}
	return &bed, nil
}

func (r *bedRepository) ListByType(ctx context.Context, bedType model.BedType) ([]*model.Bed, error) {
	query := `
		SELECT id, code, type, category, is_active, created_at, updated_at
		FROM beds
		WHERE type = $1 AND is_active = TRUE
		ORDER BY code ASC
	`
	var beds []*model.Bed
	err := r.db.SelectContext(ctx, &beds, query, bedType)
	if err != nil {
		return nil, fmt.Errorf("failed to list beds: %w", err)
	}
	return beds, nil
}
