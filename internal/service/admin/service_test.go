package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	apperrors "github.com/nirban/hms-api/pkg/errors"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationApproved(ctx context.Context, to, name, role string) error {
	args := m.Called(ctx, to, name, role)
	return args.Error(0)
}

func (m *MockEmailService) SendCustom(ctx context.Context, to, subject, content string) error {
	args := m.Called(ctx, to, subject, content)
	return args.Error(0)
}

func setupTestService() (*Service, *MockUserRepository, *MockEmailService) {
	mockUserRepo := &MockUserRepository{}
	mockEmail := &MockEmailService{}
	svc := NewService(mockUserRepo, mockEmail)
	return svc, mockUserRepo, mockEmail
}

func TestListUsersByRole_RejectsAdminRole(t *testing.T) {
	svc, _, _ := setupTestService()

	_, err := svc.ListUsersByRole(context.Background(), model.RoleAdmin)

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestListUsersByRole_RejectsUnknownRole(t *testing.T) {
	svc, _, _ := setupTestService()

	_, err := svc.ListUsersByRole(context.Background(), "janitor")

	assert.Error(t, err)
}

func TestListUsersByRole_Success(t *testing.T) {
	svc, mockUserRepo, _ := setupTestService()

	mockUserRepo.On("ListByRole", mock.Anything, model.RoleDonor).
		Return([]*model.User{{Name: "Rahim", Role: model.RoleDonor}}, nil)

	users, err := svc.ListUsersByRole(context.Background(), model.RoleDonor)

	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestVerifyUser_SendsEmail(t *testing.T) {
	svc, mockUserRepo, mockEmail := setupTestService()
	id := uuid.New()

	mockUserRepo.On("Get", mock.Anything, id).
		Return(&model.User{Base: model.Base{ID: id}, Name: "Rahim", Email: "rahim@hms.local", Role: model.RoleDonor}, nil)
	mockUserRepo.On("SetVerified", mock.Anything, id, true).Return(nil)
	mockEmail.On("SendVerificationApproved", mock.Anything, "rahim@hms.local", "Rahim", "donor").
		Return(nil)

	user, err := svc.VerifyUser(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, user.IsVerified)
	mockEmail.AssertExpectations(t)
}

func TestVerifyUser_EmailFailureIsNotFatal(t *testing.T) {
	svc, mockUserRepo, mockEmail := setupTestService()
	id := uuid.New()

	mockUserRepo.On("Get", mock.Anything, id).
		Return(&model.User{Base: model.Base{ID: id}, Email: "x@hms.local", Role: model.RoleStaff}, nil)
	mockUserRepo.On("SetVerified", mock.Anything, id, true).Return(nil)
	mockEmail.On("SendVerificationApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	user, err := svc.VerifyUser(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestVerifyUser_NotFound(t *testing.T) {
	svc, mockUserRepo, _ := setupTestService()
	id := uuid.New()

	mockUserRepo.On("Get", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.VerifyUser(context.Background(), id)

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestDeleteUser_Success(t *testing.T) {
	svc, mockUserRepo, _ := setupTestService()
	id := uuid.New()

	mockUserRepo.On("Get", mock.Anything, id).
		Return(&model.User{Base: model.Base{ID: id}, Role: model.RolePatient}, nil)
	mockUserRepo.On("Delete", mock.Anything, id).Return(nil)

	user, err := svc.DeleteUser(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)
	mockUserRepo.AssertExpectations(t)
}
