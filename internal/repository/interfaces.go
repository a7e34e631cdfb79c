package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/model"
)

// Sentinel errors. Conditional updates on claim transitions return
// these so services can distinguish the race loser from a missing or
// mis-owned resource.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyClaimed    = errors.New("already claimed")
	ErrNotClaimant       = errors.New("caller is not the claimant")
	ErrInvalidState      = errors.New("resource is not in the required state")
	ErrBedOccupied       = errors.New("bed already has an active reservation")
	ErrAlreadyCheckedOut = errors.New("reservation already checked out")
	ErrDuplicateEmail    = errors.New("email already registered")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		ListByRole(ctx context.Context, role model.Role) ([]*model.User, error)
		SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	BloodRequestRepository interface {
		Create(ctx context.Context, req *model.BloodRequest) error
		Get(ctx context.Context, id uuid.UUID) (*model.BloodRequest, error)
		ListByStatus(ctx context.Context, status model.BloodRequestStatus) ([]*model.BloodRequestView, error)
		ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*model.BloodRequestView, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BloodRequest, error)
		// Claim atomically moves requested -> accepted and records the
		// donor. Exactly one of two racing claims succeeds; the loser
		// gets ErrAlreadyClaimed.
		Claim(ctx context.Context, id, donorID uuid.UUID, at time.Time) error
		// Complete moves accepted -> completed, only for the recorded
		// donor.
		Complete(ctx context.Context, id, donorID uuid.UUID, at time.Time) error
	}

	DonorRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DonorProfile, error)
		// EnsureProfile creates the profile on first donor-side access.
		EnsureProfile(ctx context.Context, userID uuid.UUID, bloodType, location string) (*model.DonorProfile, error)
		SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error
		IncrementCompleted(ctx context.Context, userID uuid.UUID) error
	}

	AmbulanceCallRepository interface {
		Create(ctx context.Context, call *model.AmbulanceCall) error
		Get(ctx context.Context, id uuid.UUID) (*model.AmbulanceCall, error)
		ListByStatus(ctx context.Context, status model.AmbulanceCallStatus) ([]*model.AmbulanceCallView, error)
		ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*model.AmbulanceCallView, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AmbulanceCall, error)
		Claim(ctx context.Context, id, driverID uuid.UUID, at time.Time) error
		Complete(ctx context.Context, id, driverID uuid.UUID, at time.Time) error
	}

	DriverRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DriverProfile, error)
		EnsureProfile(ctx context.Context, userID uuid.UUID) (*model.DriverProfile, error)
		IncrementCompleted(ctx context.Context, userID uuid.UUID) error
	}

	BedRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Bed, error)
		ListByType(ctx context.Context, bedType model.BedType) ([]*model.Bed, error)
	}

	ReservationRepository interface {
		// Create persists the reservation; the partial unique index on
		// active reservations makes double-booking a bed fail with
		// ErrBedOccupied even under concurrent requests.
		Create(ctx context.Context, res *model.Reservation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
		ActiveForBed(ctx context.Context, bedID uuid.UUID) (*model.Reservation, error)
		ActiveForBeds(ctx context.Context, bedIDs []uuid.UUID) (map[uuid.UUID]*model.CurrentReservation, error)
		Checkout(ctx context.Context, id uuid.UUID, at time.Time) error
	}

	ScheduleRepository interface {
		Create(ctx context.Context, entry *model.StaffSchedule) error
		Get(ctx context.Context, id uuid.UUID) (*model.StaffScheduleView, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListAll(ctx context.Context) ([]*model.StaffScheduleView, error)
		ListByStaff(ctx context.Context, staffID uuid.UUID) ([]*model.StaffScheduleView, error)
	}
)
