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

func (r *bloodRequestRepository) Create(ctx context.Context, req *model.BloodRequest) error {
	query := `
		INSERT INTO blood_requests (
			id, patient_id, blood_type, location, status,
			requested_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	req.ID = uuid.New()
	req.Status = model.BloodRequestStatusRequested
	req.RequestedAt = time.Now()
	req.CreatedAt = req.RequestedAt
	req.UpdatedAt = req.RequestedAt

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.PatientID,
		req.BloodType,
		req.Location,
		req.Status,
		req.RequestedAt,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blood request: %w", err)
	}
	return nil
}

func (r *bloodRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.BloodRequest, error) {
	query := `
		SELECT id, patient_id, blood_type, location, status, donor_id,
			   requested_at, accepted_at, completed_at, created_at, updated_at
		FROM blood_requests
		WHERE id = $1
	`
	var req model.BloodRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blood request: %w", err)
	}
	return &req, nil
}

func (r *bloodRequestRepository) ListByStatus(ctx context.Context, status model.BloodRequestStatus) ([]*model.BloodRequestView, error) {
	query := `
		SELECT br.id, br.patient_id, br.blood_type, br.location, br.status,
			   br.donor_id, br.requested_at, br.accepted_at, br.completed_at,
			   br.created_at, br.updated_at,
			   u.name AS patient_name, u.location AS patient_location
		FROM blood_requests br
		JOIN users u ON u.id = br.patient_id
		WHERE br.status = $1
		ORDER BY br.requested_at ASC
	`
	var requests []*model.BloodRequestView
	err := r.db.SelectContext(ctx, &requests, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	return requests, nil
}

func (r *bloodRequestRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*model.BloodRequestView, error) {
	query := `
		SELECT br.id, br.patient_id, br.blood_type, br.location, br.status,
			   br.donor_id, br.requested_at, br.accepted_at, br.completed_at,
			   br.created_at, br.updated_at,
			   u.name AS patient_name, u.location AS patient_location
		FROM blood_requests br
		JOIN users u ON u.id = br.patient_id
		WHERE br.donor_id = $1
		ORDER BY br.requested_at DESC
	`
	var requests []*model.BloodRequestView
	err := r.db.SelectContext(ctx, &requests, query, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donor requests: %w", err)
	}
	return requests, nil
}

func (r *bloodRequestRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BloodRequest, error) {
	query := `
		SELECT id, patient_id, blood_type, location, status, donor_id,
			   requested_at, accepted_at, completed_at, created_at, updated_at
		FROM blood_requests
		WHERE patient_id = $1
		ORDER BY requested_at DESC
	`
	var requests []*model.BloodRequest
	err := r.db.SelectContext(ctx, &requests, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient requests: %w", err)
	}
	return requests, nil
}

// Claim is a single conditional update: it only succeeds while the
// request is still open, so two racing donors resolve to exactly one
// winner. Zero rows affected means someone else got there first (or
// the id is unknown; a re-read tells the two apart).
func (r *bloodRequestRepository) Claim(ctx context.Context, id, donorID uuid.UUID, at time.Time) error {
	query := `
		UPDATE blood_requests
		SET status = $1, donor_id = $2, accepted_at = $3, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		model.BloodRequestStatusAccepted,
		donorID,
		at,
		id,
		model.BloodRequestStatusRequested,
	)
	if err != nil {
		return fmt.Errorf("failed to claim blood request: %w", err)
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

// Complete only succeeds for the donor recorded at claim time while
// the request is in the accepted state.
func (r *bloodRequestRepository) Complete(ctx context.Context, id, donorID uuid.UUID, at time.Time) error {
	query := `
		UPDATE blood_requests
		SET status = $1, completed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4 AND donor_id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		model.BloodRequestStatusCompleted,
		at,
		id,
		model.BloodRequestStatusAccepted,
		donorID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete blood request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		req, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.DonorID == nil || *req.DonorID != donorID {
			return repository.ErrNotClaimant
		}
		return repository.ErrInvalidState
	}
	return nil
}
