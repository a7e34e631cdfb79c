package blood

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

const resourceKind = "blood_request"

type Service struct {
	repo      repository.BloodRequestRepository
	donorRepo repository.DonorRepository
	broker    messaging.Broker
	metrics   *metrics.Metrics
}

func NewService(repo repository.BloodRequestRepository, donorRepo repository.DonorRepository,
	broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		donorRepo: donorRepo,
		broker:    broker,
		metrics:   m,
	}
}

// CreateRequest files a new blood request for the calling patient. Any
// authenticated user may file one.
func (s *Service) CreateRequest(ctx context.Context, patientID uuid.UUID, req *model.CreateBloodRequestRequest) (*model.BloodRequest, error) {
	request := &model.BloodRequest{
		PatientID: patientID,
		BloodType: req.BloodType,
		Location:  req.Location,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create blood request: %w", err))
	}

	s.publish(ctx, "blood_request.created", request.ID, patientID)
	return request, nil
}

// ListOpen returns every request still in the requested state. No
// compatibility filtering happens server-side; matching is strictly
// first-come-first-served.
func (s *Service) ListOpen(ctx context.Context) ([]*model.BloodRequestView, error) {
	requests, err := s.repo.ListByStatus(ctx, model.BloodRequestStatusRequested)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list open requests: %w", err))
	}
	return requests, nil
}

// Accept claims an open request for the donor. The first donor to
// reach the conditional update wins; everyone else gets a conflict.
func (s *Service) Accept(ctx context.Context, id uuid.UUID, donor *model.User) error {
	if _, err := s.donorRepo.EnsureProfile(ctx, donor.ID, donor.BloodType, donor.Location); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to ensure donor profile: %w", err))
	}

	donorID := donor.ID
	err := s.repo.Claim(ctx, id, donorID, time.Now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("blood request", err)
	case errors.Is(err, repository.ErrAlreadyClaimed):
		s.metrics.ClaimConflicts.WithLabelValues(resourceKind).Inc()
		return apperrors.Conflict("This request has already been accepted", err)
	case err != nil:
		return apperrors.Internal(fmt.Errorf("failed to accept blood request: %w", err))
	}

	s.metrics.ClaimsTotal.WithLabelValues(resourceKind).Inc()
	s.publish(ctx, "blood_request.accepted", id, donorID)
	return nil
}

// Complete closes an accepted request. Only the donor who claimed it
// may complete it; the donor's completed count advances once.
func (s *Service) Complete(ctx context.Context, id, donorID uuid.UUID) error {
	err := s.repo.Complete(ctx, id, donorID, time.Now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("blood request", err)
	case errors.Is(err, repository.ErrNotClaimant):
		return apperrors.Forbidden("You are not assigned to this request", err)
	case errors.Is(err, repository.ErrInvalidState):
		return apperrors.Conflict("Request is not in an accepted state", err)
	case err != nil:
		return apperrors.Internal(fmt.Errorf("failed to complete blood request: %w", err))
	}

	if err := s.donorRepo.IncrementCompleted(ctx, donorID); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to increment donor count: %w", err))
	}

	s.metrics.Completions.WithLabelValues(resourceKind).Inc()
	s.publish(ctx, "blood_request.completed", id, donorID)
	return nil
}

// MyRequests lists the caller's own requests, donor info included once
// accepted.
func (s *Service) MyRequests(ctx context.Context, patientID uuid.UUID) ([]*model.BloodRequest, error) {
	requests, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list own requests: %w", err))
	}
	return requests, nil
}

// Dashboard assembles the donor's role-scoped view.
func (s *Service) Dashboard(ctx context.Context, donor *model.User) (*model.DonorDashboard, error) {
	profile, err := s.donorRepo.EnsureProfile(ctx, donor.ID, donor.BloodType, donor.Location)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load donor profile: %w", err))
	}

	pending, err := s.repo.ListByStatus(ctx, model.BloodRequestStatusRequested)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list pending requests: %w", err))
	}

	assigned, err := s.repo.ListByDonor(ctx, donor.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list assigned requests: %w", err))
	}

	return &model.DonorDashboard{
		Message:          fmt.Sprintf("Welcome, %s", donor.Name),
		CompletedCount:   profile.CompletedCount,
		Available:        profile.Available,
		PendingRequests:  pending,
		AssignedRequests: assigned,
	}, nil
}

// ToggleAvailability flips the donor's availability flag.
func (s *Service) ToggleAvailability(ctx context.Context, donor *model.User, available bool) error {
	if _, err := s.donorRepo.EnsureProfile(ctx, donor.ID, donor.BloodType, donor.Location); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to ensure donor profile: %w", err))
	}
	if err := s.donorRepo.SetAvailability(ctx, donor.ID, available); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to set availability: %w", err))
	}
	return nil
}

// publish is fire-and-forget: broker failures never fail the request.
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
