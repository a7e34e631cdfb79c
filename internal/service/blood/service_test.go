package blood

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	apperrors "github.com/nirban/hms-api/pkg/errors"
	"github.com/nirban/hms-api/pkg/messaging"
	"github.com/nirban/hms-api/pkg/metrics"
)

type MockBloodRequestRepository struct {
	mock.Mock
}

func (m *MockBloodRequestRepository) Create(ctx context.Context, req *model.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBloodRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BloodRequest), args.Error(1)
}

func (m *MockBloodRequestRepository) ListByStatus(ctx context.Context, status model.BloodRequestStatus) ([]*model.BloodRequestView, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*model.BloodRequestView), args.Error(1)
}

func (m *MockBloodRequestRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*model.BloodRequestView, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).([]*model.BloodRequestView), args.Error(1)
}

func (m *MockBloodRequestRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.BloodRequest, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]*model.BloodRequest), args.Error(1)
}

func (m *MockBloodRequestRepository) Claim(ctx context.Context, id, donorID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, donorID, at)
	return args.Error(0)
}

func (m *MockBloodRequestRepository) Complete(ctx context.Context, id, donorID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, donorID, at)
	return args.Error(0)
}

type MockDonorRepository struct {
	mock.Mock
}

func (m *MockDonorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DonorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DonorProfile), args.Error(1)
}

func (m *MockDonorRepository) EnsureProfile(ctx context.Context, userID uuid.UUID, bloodType, location string) (*model.DonorProfile, error) {
	args := m.Called(ctx, userID, bloodType, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DonorProfile), args.Error(1)
}

func (m *MockDonorRepository) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error {
	args := m.Called(ctx, userID, available)
	return args.Error(0)
}

func (m *MockDonorRepository) IncrementCompleted(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var testMetrics = metrics.NewMetrics("blood_test")

func newTestDonor() *model.User {
	return &model.User{
		Base:      model.Base{ID: uuid.New()},
		Name:      "Karim",
		BloodType: "B+",
		Location:  "Sylhet",
		Role:      model.RoleDonor,
	}
}

func setupTestService() (*Service, *MockBloodRequestRepository, *MockDonorRepository) {
	mockRepo := &MockBloodRequestRepository{}
	mockDonorRepo := &MockDonorRepository{}
	svc := NewService(mockRepo, mockDonorRepo, messaging.NopBroker{}, testMetrics)
	return svc, mockRepo, mockDonorRepo
}

func TestCreateRequest_Success(t *testing.T) {
	svc, mockRepo, _ := setupTestService()
	patientID := uuid.New()

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BloodRequest")).Return(nil)

	request, err := svc.CreateRequest(context.Background(), patientID, &model.CreateBloodRequestRequest{
		BloodType: "O-",
		Location:  "Dhaka",
	})

	assert.NoError(t, err)
	assert.Equal(t, patientID, request.PatientID)
	assert.Equal(t, "O-", request.BloodType)
	mockRepo.AssertExpectations(t)
}

func TestAccept_Success(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	requestID := uuid.New()
	donor := newTestDonor()

	mockDonorRepo.On("EnsureProfile", mock.Anything, donor.ID, "B+", "Sylhet").
		Return(&model.DonorProfile{UserID: donor.ID}, nil)
	mockRepo.On("Claim", mock.Anything, requestID, donor.ID, mock.AnythingOfType("time.Time")).
		Return(nil)

	err := svc.Accept(context.Background(), requestID, donor)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockDonorRepo.AssertExpectations(t)
}

// A donor whose first action is an accept gets a profile seeded from
// the user record, not an empty one.
func TestAccept_SeedsProfileFromUser(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	requestID := uuid.New()
	donor := newTestDonor()

	mockDonorRepo.On("EnsureProfile", mock.Anything, donor.ID, donor.BloodType, donor.Location).
		Return(&model.DonorProfile{UserID: donor.ID, BloodType: donor.BloodType, Location: donor.Location}, nil)
	mockRepo.On("Claim", mock.Anything, requestID, donor.ID, mock.AnythingOfType("time.Time")).
		Return(nil)

	err := svc.Accept(context.Background(), requestID, donor)

	assert.NoError(t, err)
	mockDonorRepo.AssertNotCalled(t, "EnsureProfile", mock.Anything, donor.ID, "", "")
}

func TestAccept_AlreadyClaimed(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	requestID := uuid.New()
	donor := newTestDonor()

	before := testutil.ToFloat64(testMetrics.ClaimConflicts.WithLabelValues("blood_request"))

	mockDonorRepo.On("EnsureProfile", mock.Anything, donor.ID, "B+", "Sylhet").
		Return(&model.DonorProfile{UserID: donor.ID}, nil)
	mockRepo.On("Claim", mock.Anything, requestID, donor.ID, mock.AnythingOfType("time.Time")).
		Return(repository.ErrAlreadyClaimed)

	err := svc.Accept(context.Background(), requestID, donor)

	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, "This request has already been accepted", appErr.Message)
	assert.Equal(t, 400, appErr.StatusCode())

	after := testutil.ToFloat64(testMetrics.ClaimConflicts.WithLabelValues("blood_request"))
	assert.Equal(t, before+1, after)
}

func TestAccept_NotFound(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	requestID := uuid.New()
	donor := newTestDonor()

	mockDonorRepo.On("EnsureProfile", mock.Anything, donor.ID, "B+", "Sylhet").
		Return(&model.DonorProfile{UserID: donor.ID}, nil)
	mockRepo.On("Claim", mock.Anything, requestID, donor.ID, mock.AnythingOfType("time.Time")).
		Return(repository.ErrNotFound)

	err := svc.Accept(context.Background(), requestID, donor)

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestComplete_Success(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	requestID := uuid.New()
	donorID := uuid.New()

	mockRepo.On("Complete", mock.Anything, requestID, donorID, mock.AnythingOfType("time.Time")).
		Return(nil)
	mockDonorRepo.On("IncrementCompleted", mock.Anything, donorID).Return(nil)

	err := svc.Complete(context.Background(), requestID, donorID)

	assert.NoError(t, err)
	mockDonorRepo.AssertExpectations(t)
}

func TestComplete_NotClaimant(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	requestID := uuid.New()
	otherDonor := uuid.New()

	mockRepo.On("Complete", mock.Anything, requestID, otherDonor, mock.AnythingOfType("time.Time")).
		Return(repository.ErrNotClaimant)

	err := svc.Complete(context.Background(), requestID, otherDonor)

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Equal(t, 403, appErr.StatusCode())
	mockDonorRepo.AssertNotCalled(t, "IncrementCompleted", mock.Anything, mock.Anything)
}

func TestComplete_NotAccepted(t *testing.T) {
	svc, mockRepo, _ := setupTestService()
	requestID := uuid.New()
	donorID := uuid.New()

	mockRepo.On("Complete", mock.Anything, requestID, donorID, mock.AnythingOfType("time.Time")).
		Return(repository.ErrInvalidState)

	err := svc.Complete(context.Background(), requestID, donorID)

	assert.True(t, apperrors.IsConflict(err))
}

func TestDashboard(t *testing.T) {
	svc, mockRepo, mockDonorRepo := setupTestService()
	donor := &model.User{
		Base:      model.Base{ID: uuid.New()},
		Name:      "Rahim",
		BloodType: "A+",
		Location:  "Chittagong",
		Role:      model.RoleDonor,
	}

	mockDonorRepo.On("EnsureProfile", mock.Anything, donor.ID, "A+", "Chittagong").
		Return(&model.DonorProfile{UserID: donor.ID, Available: true, CompletedCount: 3}, nil)
	mockRepo.On("ListByStatus", mock.Anything, model.BloodRequestStatusRequested).
		Return([]*model.BloodRequestView{}, nil)
	mockRepo.On("ListByDonor", mock.Anything, donor.ID).
		Return([]*model.BloodRequestView{}, nil)

	dashboard, err := svc.Dashboard(context.Background(), donor)

	assert.NoError(t, err)
	assert.Equal(t, 3, dashboard.CompletedCount)
	assert.True(t, dashboard.Available)
	assert.Contains(t, dashboard.Message, "Rahim")
}

func TestToggleAvailability(t *testing.T) {
	svc, _, mockDonorRepo := setupTestService()
	donor := newTestDonor()

	mockDonorRepo.On("EnsureProfile", mock.Anything, donor.ID, "B+", "Sylhet").
		Return(&model.DonorProfile{UserID: donor.ID}, nil)
	mockDonorRepo.On("SetAvailability", mock.Anything, donor.ID, false).Return(nil)

	err := svc.ToggleAvailability(context.Background(), donor, false)

	assert.NoError(t, err)
	mockDonorRepo.AssertExpectations(t)
}
