package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nirban/hms-api/internal/email"
	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	apperrors "github.com/nirban/hms-api/pkg/errors"
)

type Service struct {
	users    repository.UserRepository
	emailSvc email.Service
}

func NewService(users repository.UserRepository, emailSvc email.Service) *Service {
	return &Service{
		users:    users,
		emailSvc: emailSvc,
	}
}

// ListUsersByRole returns every account with the given role. Admins
// themselves are not listable.
func (s *Service) ListUsersByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	if !role.Valid() || role == model.RoleAdmin {
		return nil, apperrors.BadRequest("Invalid role specified", nil)
	}

	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list users: %w", err))
	}
	return users, nil
}

// VerifyUser grants the verification flag that gates fulfiller-side
// operations. The notification email is best-effort.
func (s *Service) VerifyUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	if err := s.users.SetVerified(ctx, id, true); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to verify user: %w", err))
	}
	user.IsVerified = true

	if err := s.emailSvc.SendVerificationApproved(ctx, user.Email, user.Name, string(user.Role)); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	return user, nil
}

// DeleteUser removes an account permanently.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to delete user: %w", err))
	}
	return user, nil
}
