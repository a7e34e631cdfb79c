package ambulance

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

const resourceKind = "ambulance_call"

type Service struct {
	repo       repository.AmbulanceCallRepository
	driverRepo repository.DriverRepository
	broker     messaging.Broker
	metrics    *metrics.Metrics
}

func NewService(repo repository.AmbulanceCallRepository, driverRepo repository.DriverRepository,
	broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		driverRepo: driverRepo,
		broker:     broker,
		metrics:    m,
	}
}

// RequestAmbulance files a call for the calling patient.
func (s *Service) RequestAmbulance(ctx context.Context, patientID uuid.UUID, req *model.RequestAmbulanceRequest) (*model.AmbulanceCall, error) {
	call := &model.AmbulanceCall{
		PatientID:      patientID,
		PickupLocation: req.PickupLocation,
	}

	if err := s.repo.Create(ctx, call); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create ambulance call: %w", err))
	}

	s.publish(ctx, "ambulance_call.created", call.ID, patientID)
	return call, nil
}

// MyRequests lists the caller's own calls, newest first.
func (s *Service) MyRequests(ctx context.Context, patientID uuid.UUID) ([]*model.AmbulanceCall, error) {
	calls, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list own calls: %w", err))
	}
	return calls, nil
}

// Accept claims an open call for the driver, first come first served.
func (s *Service) Accept(ctx context.Context, id, driverID uuid.UUID) error {
	if _, err := s.driverRepo.EnsureProfile(ctx, driverID); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to ensure driver profile: %w", err))
	}

	err := s.repo.Claim(ctx, id, driverID, time.Now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("ambulance request", err)
	case errors.Is(err, repository.ErrAlreadyClaimed):
		s.metrics.ClaimConflicts.WithLabelValues(resourceKind).Inc()
		return apperrors.Conflict("This request has already been accepted", err)
	case err != nil:
		return apperrors.Internal(fmt.Errorf("failed to accept ambulance call: %w", err))
	}

	s.metrics.ClaimsTotal.WithLabelValues(resourceKind).Inc()
	s.publish(ctx, "ambulance_call.accepted", id, driverID)
	return nil
}

// Complete closes an accepted call and advances the driver's counter.
func (s *Service) Complete(ctx context.Context, id, driverID uuid.UUID) error {
	err := s.repo.Complete(ctx, id, driverID, time.Now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("ambulance request", err)
	case errors.Is(err, repository.ErrNotClaimant):
		return apperrors.Forbidden("You are not assigned to this request", err)
	case errors.Is(err, repository.ErrInvalidState):
		return apperrors.Conflict("Request is not in an accepted state", err)
	case err != nil:
		return apperrors.Internal(fmt.Errorf("failed to complete ambulance call: %w", err))
	}

	if err := s.driverRepo.IncrementCompleted(ctx, driverID); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to increment driver count: %w", err))
	}

	s.metrics.Completions.WithLabelValues(resourceKind).Inc()
	s.publish(ctx, "ambulance_call.completed", id, driverID)
	return nil
}

// Dashboard assembles the driver's role-scoped view.
func (s *Service) Dashboard(ctx context.Context, driver *model.User) (*model.DriverDashboard, error) {
	profile, err := s.driverRepo.EnsureProfile(ctx, driver.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load driver profile: %w", err))
	}

	pending, err := s.repo.ListByStatus(ctx, model.AmbulanceCallStatusRequested)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list pending calls: %w", err))
	}

	assigned, err := s.repo.ListByDriver(ctx, driver.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list assigned calls: %w", err))
	}

	return &model.DriverDashboard{
		Message:           fmt.Sprintf("Welcome, %s", driver.Name),
		CompletedRequests: profile.CompletedRequests,
		PendingRequests:   pending,
		AssignedRequests:  assigned,
	}, nil
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
