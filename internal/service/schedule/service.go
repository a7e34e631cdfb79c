package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	apperrors "github.com/nirban/hms-api/pkg/errors"
)

type Service struct {
	repo  repository.ScheduleRepository
	users repository.UserRepository
}

func NewService(repo repository.ScheduleRepository, users repository.UserRepository) *Service {
	return &Service{
		repo:  repo,
		users: users,
	}
}

// Assign creates a shift entry for a staff member. Duplicate or
// overlapping shifts on the same date are not rejected; admins may
// stack assignments deliberately.
func (s *Service) Assign(ctx context.Context, req *model.CreateStaffScheduleRequest) (*model.StaffScheduleView, error) {
	if !req.ShiftType.Valid() {
		return nil, apperrors.BadRequest("Invalid shift type", nil)
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid staff ID", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid date", err)
	}

	staff, err := s.users.Get(ctx, staffID)
	if err != nil || staff.Role != model.RoleStaff {
		return nil, apperrors.BadRequest("Invalid staff member", err)
	}

	entry := &model.StaffSchedule{
		StaffID:   staffID,
		Date:      date,
		ShiftType: req.ShiftType,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create schedule entry: %w", err))
	}

	view, err := s.repo.Get(ctx, entry.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load schedule entry: %w", err))
	}
	return view, nil
}

// Remove deletes a shift entry unconditionally if found.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Schedule", err)
	}
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete schedule entry: %w", err))
	}
	return nil
}

// ListAll is the admin view, newest date first, annotated with staff
// identity.
func (s *Service) ListAll(ctx context.Context) ([]*model.StaffScheduleView, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list schedules: %w", err))
	}
	return entries, nil
}

// ListMine is the staff member's own view.
func (s *Service) ListMine(ctx context.Context, staffID uuid.UUID) ([]*model.StaffScheduleView, error) {
	entries, err := s.repo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list own schedule: %w", err))
	}
	return entries, nil
}
