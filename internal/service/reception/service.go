package reception

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	apperrors "github.com/nirban/hms-api/pkg/errors"
	"github.com/nirban/hms-api/pkg/messaging"
	"github.com/nirban/hms-api/pkg/metrics"
)

const resourceKind = "reservation"

type Service struct {
	bedRepo repository.BedRepository
	resRepo repository.ReservationRepository
	users   repository.UserRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
}

func NewService(bedRepo repository.BedRepository, resRepo repository.ReservationRepository,
	users repository.UserRepository, broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		bedRepo: bedRepo,
		resRepo: resRepo,
		users:   users,
		broker:  broker,
		metrics: m,
	}
}

// ListBedsWithStatus returns active beds of the given type annotated
// with their current active reservation, if any.
func (s *Service) ListBedsWithStatus(ctx context.Context, bedType model.BedType) ([]*model.BedWithReservation, error) {
	if !bedType.Valid() {
		return nil, apperrors.BadRequest("Invalid type", nil)
	}

	beds, err := s.bedRepo.ListByType(ctx, bedType)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list beds: %w", err))
	}

	bedIDs := make([]uuid.UUID, 0, len(beds))
	for _, bed := range beds {
		bedIDs = append(bedIDs, bed.ID)
	}

	active, err := s.resRepo.ActiveForBeds(ctx, bedIDs)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load reservations: %w", err))
	}

	result := make([]*model.BedWithReservation, 0, len(beds))
	for _, bed := range beds {
		result = append(result, &model.BedWithReservation{
			ID:                 bed.ID,
			Code:               bed.Code,
			Type:               bed.Type,
			Category:           bed.Category,
			CurrentReservation: active[bed.ID],
		})
	}
	return result, nil
}

// LookupPatient resolves a patient by id or email for the booking UI.
func (s *Service) LookupPatient(ctx context.Context, query string) (*model.PatientSummary, error) {
	if query == "" {
		return nil, apperrors.BadRequest("Query is required", nil)
	}

	var user *model.User
	if id, err := uuid.Parse(query); err == nil {
		user, _ = s.users.Get(ctx, id)
	}
	if user == nil {
		var err error
		user, err = s.users.GetByEmail(ctx, query)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NotFound("Patient", err)
			}
			return nil, apperrors.Internal(fmt.Errorf("failed to look up patient: %w", err))
		}
	}

	if user.Role != model.RolePatient {
		return nil, apperrors.BadRequest("Selected user is not a patient", nil)
	}

	return &model.PatientSummary{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		Location: user.Location,
	}, nil
}

// CreateReservation books a bed for a patient. The bed must be active,
// of the requested type, and free of any active reservation; the
// storage-level unique index keeps two concurrent bookings from both
// succeeding.
func (s *Service) CreateReservation(ctx context.Context, req *model.CreateReservationRequest) (*model.Reservation, error) {
	if !req.Type.Valid() {
		return nil, apperrors.BadRequest("Invalid type", nil)
	}

	bedID, err := uuid.Parse(req.BedID)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid bed ID", err)
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid patient ID", err)
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid check-in date", err)
	}

	bed, err := s.bedRepo.Get(ctx, bedID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Bed for this type", err)
	} else if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to get bed: %w", err))
	}
	if !bed.IsActive || bed.Type != req.Type {
		return nil, apperrors.NotFound("Bed for this type", nil)
	}

	patient, err := s.users.Get(ctx, patientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.BadRequest("Invalid patient", err)
	} else if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to get patient: %w", err))
	}
	if patient.Role != model.RolePatient {
		return nil, apperrors.BadRequest("Invalid patient", nil)
	}

	if _, err := s.resRepo.ActiveForBed(ctx, bedID); err == nil {
		s.metrics.ClaimConflicts.WithLabelValues(resourceKind).Inc()
		return nil, apperrors.Conflict("Bed is already occupied", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(fmt.Errorf("failed to check bed occupancy: %w", err))
	}

	reservation := &model.Reservation{
		BedID:       bedID,
		PatientID:   patientID,
		Type:        req.Type,
		CheckInDate: checkIn,
	}
	if err := s.resRepo.Create(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrBedOccupied) {
			s.metrics.ClaimConflicts.WithLabelValues(resourceKind).Inc()
			return nil, apperrors.Conflict("Bed is already occupied", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create reservation: %w", err))
	}

	s.metrics.ClaimsTotal.WithLabelValues(resourceKind).Inc()
	s.publish(ctx, "reservation.booked", reservation.ID, patientID)
	return reservation, nil
}

// Checkout closes an active reservation; a second checkout conflicts.
func (s *Service) Checkout(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	err := s.resRepo.Checkout(ctx, id, time.Now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NotFound("Reservation", err)
	case errors.Is(err, repository.ErrAlreadyCheckedOut):
		return nil, apperrors.Conflict("Already checked out", err)
	case err != nil:
		return nil, apperrors.Internal(fmt.Errorf("failed to checkout reservation: %w", err))
	}

	reservation, err := s.resRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to reload reservation: %w", err))
	}

	s.metrics.Completions.WithLabelValues(resourceKind).Inc()
	s.publish(ctx, "reservation.checked_out", id, reservation.PatientID)
	return reservation, nil
}

func (s *Service) publish(ctx context.Context, eventType string, resourceID, actorID uuid.UUID) {
	event := messaging.Event{
		Type:       eventType,
		ResourceID: resourceID.String(),
		ActorID:    actorID.String(),
	}
	if err := s.broker.Publish(ctx, eventType, event); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
