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

func (r *ambulanceCallRepository) Create(ctx context.Context, call *model.AmbulanceCall) error {
	query := `
		INSERT INTO ambulance_calls (
			id, patient_id, pickup_location, status,
			requested_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	call.ID = uuid.New()
	call.Status = model.AmbulanceCallStatusRequested
	call.RequestedAt = time.Now()
	call.CreatedAt = call.RequestedAt
	call.UpdatedAt = call.RequestedAt

	_, err := r.db.ExecContext(ctx, query,
		call.ID,
		call.PatientID,
		call.PickupLocation,
		call.Status,
		call.RequestedAt,
		call.CreatedAt,
		call.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ambulance call: %w", err)
	}
	return nil
}

func (r *ambulanceCallRepository) Get(ctx context.Context, id uuid.UUID) (*model.AmbulanceCall, error) {
	query := `
		SELECT id, patient_id, driver_id, pickup_location, status,
			   requested_at, accepted_at, completed_at, created_at, updated_at
		FROM ambulance_calls
		WHERE id = $1
	`
	var call model.AmbulanceCall
	err := r.db.GetContext(ctx, &call, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ambulance call: %w", err)
	}
	return &call, nil
}

func (r *ambulanceCallRepository) ListByStatus(ctx context.Context, status model.AmbulanceCallStatus) ([]*model.AmbulanceCallView, error) {
	query := `
		SELECT ac.id, ac.patient_id, ac.driver_id, ac.pickup_location, ac.status,
			   ac.requested_at, ac.accepted_at, ac.completed_at,
			   ac.created_at, ac.updated_at,
			   u.name AS patient_name, u.location AS patient_location
		FROM ambulance_calls ac
		JOIN users u ON u.id = ac.patient_id
		WHERE ac.status = $1
		ORDER BY ac.requested_at ASC
	`
	var calls []*model.AmbulanceCallView
	err := r.db.SelectContext(ctx, &calls, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list ambulance calls: %w", err)
	}
	return calls, nil
}

func (r *ambulanceCallRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*model.AmbulanceCallView, error) {
	query := `
		SELECT ac.id, ac.patient_id, ac.driver_id, ac.pickup_location, ac.status,
			   ac.requested_at, ac.accepted_at, ac.completed_at,
			   ac.created_at, ac.updated_at,
			   u.name AS patient_name, u.location AS patient_location
		FROM ambulance_calls ac
		JOIN users u ON u.id = ac.patient_id
		WHERE ac.driver_id = $1 AND ac.status IN ($2, $3)
		ORDER BY ac.requested_at DESC
	`
	var calls []*model.AmbulanceCallView
	err := r.db.SelectContext(ctx, &calls, query, driverID,
		model.AmbulanceCallStatusAccepted, model.AmbulanceCallStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver calls: %w", err)
	}
	return calls, nil
}

func (r *ambulanceCallRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AmbulanceCall, error) {
	query := `
		SELECT id, patient_id, driver_id, pickup_location, status,
			   requested_at, accepted_at, completed_at, created_at, updated_at
		FROM ambulance_calls
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var calls []*model.AmbulanceCall
	err := r.db.SelectContext(ctx, &calls, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient calls: %w", err)
	}
	return calls, nil
}

// Claim mirrors the blood-request claim: conditional update keyed on
// the open status, loser of a race observes ErrAlreadyClaimed.
func (r *ambulanceCallRepository) Claim(ctx context.Context, id, driverID uuid.UUID, at time.Time) error {
	query := `
		UPDATE ambulance_calls
		SET status = $1, driver_id = $2, accepted_at = $3, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AmbulanceCallStatusAccepted,
		driverID,
		at,
		id,
		model.AmbulanceCallStatusRequested,
	)
	if err != nil {
		return fmt.Errorf("failed to claim ambulance call: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return repository.ErrAlreadyClaimed
	}
	return nil
}

func (r *ambulanceCallRepository) Complete(ctx context.Context, id, driverID uuid.UUID, at time.Time) error {
	query := `
		UPDATE ambulance_calls
		SET status = $1, completed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4 AND driver_id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AmbulanceCallStatusCompleted,
		at,
		id,
		model.AmbulanceCallStatusAccepted,
		driverID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete ambulance call: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		call, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if call.DriverID == nil || *call.DriverID != driverID {
			return repository.ErrNotClaimant
		}
		return repository.ErrInvalidState
	}
	return nil
}
