package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	"github.com/nirban/hms-api/pkg/auth"
	apperrors "github.com/nirban/hms-api/pkg/errors"
)

const bcryptCost = 12

type Service struct {
	users  repository.UserRepository
	jwtSvc auth.JWTService
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService) *Service {
	return &Service{
		users:  users,
		jwtSvc: jwtSvc,
	}
}

// Register creates a role-tagged account. Fulfiller roles start
// unverified; patients need no verification.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if !req.Role.Valid() || req.Role == model.RoleAdmin {
		return nil, apperrors.BadRequest("Invalid role specified", nil)
	}

	if req.Role == model.RoleStaff {
		if req.StaffCategory == nil || !req.StaffCategory.Valid() {
			return nil, apperrors.BadRequest("staff_category is required for staff accounts", nil)
		}
	} else {
		req.StaffCategory = nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hashed),
		Phone:         req.Phone,
		Location:      req.Location,
		BloodType:     req.BloodType,
		Role:          req.Role,
		StaffCategory: req.StaffCategory,
		IsVerified:    !req.Role.RequiresVerification(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.BadRequest("Email already registered", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create user: %w", err))
	}
	return user, nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate refresh token: %w", err))
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// UserFromToken resolves the bearer token to the current user record.
func (s *Service) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("unknown user", err)
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	userID, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Unauthorized("unknown user", err)
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	newRefresh, err := s.jwtSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate refresh token: %w", err))
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		User:         user,
	}, nil
}
