package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
)

// Create relies on the partial unique index over active reservations
// (one non-checked-out reservation per bed) so that two concurrent
// bookings for the same bed cannot both commit; the loser maps to
// ErrBedOccupied.
func (r *reservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, bed_id, patient_id, type, check_in_date, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	res.ID = uuid.New()
	res.Status = model.ReservationStatusBooked
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.BedID,
		res.PatientID,
		res.Type,
		res.CheckInDate,
		res.Status,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrBedOccupied
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	query := `
		SELECT id, bed_id, patient_id, type, check_in_date, check_out_date,
			   status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`
	var res model.Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return &res, nil
}

func (r *reservationRepository) ActiveForBed(ctx context.Context, bedID uuid.UUID) (*model.Reservation, error) {
	query := `
		SELECT id, bed_id, patient_id, type, check_in_date, check_out_date,
			   status, created_at, updated_at
		FROM reservations
		WHERE bed_id = $1
		  AND status IN ($2, $3)
		  AND check_out_date IS NULL
	`
	var res model.Reservation
	err := r.db.GetContext(ctx, &res, query, bedID,
		model.ReservationStatusBooked, model.ReservationStatusCheckedIn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active reservation: %w", err)
	}
	return &res, nil
}

func (r *reservationRepository) ActiveForBeds(ctx context.Context, bedIDs []uuid.UUID) (map[uuid.UUID]*model.CurrentReservation, error) {
	if len(bedIDs) == 0 {
		return map[uuid.UUID]*model.CurrentReservation{}, nil
	}

	query := `
		SELECT res.id, res.bed_id, res.patient_id, res.check_in_date, res.status,
			   u.name AS patient_name, u.email AS patient_email
		FROM reservations res
		JOIN users u ON u.id = res.patient_id
		WHERE res.bed_id = ANY($1)
		  AND res.status IN ($2, $3)
		  AND res.check_out_date IS NULL
	`
	rows, err := r.db.QueryxContext(ctx, query, pq.Array(bedIDs),
		model.ReservationStatusBooked, model.ReservationStatusCheckedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}
	defer rows.Close()

	active := make(map[uuid.UUID]*model.CurrentReservation)
	for rows.Next() {
		var (
			cur   model.CurrentReservation
			bedID uuid.UUID
		)
		if err := rows.Scan(&cur.ID, &bedID, &cur.PatientID, &cur.CheckInDate,
			&cur.Status, &cur.PatientName, &cur.PatientEmail); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		active[bedID] = &cur
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}
	return active, nil
}

// Checkout is conditional on the reservation still being open; a
// second checkout affects zero rows and maps to ErrAlreadyCheckedOut.
func (r *reservationRepository) Checkout(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE reservations
		SET status = $1, check_out_date = $2, updated_at = $2
		WHERE id = $3 AND check_out_date IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		model.ReservationStatusCheckedOut, at, id)
	if err != nil {
		return fmt.Errorf("failed to checkout reservation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return repository.ErrAlreadyCheckedOut
	}
	return nil
}
