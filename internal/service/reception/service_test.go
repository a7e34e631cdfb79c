package reception

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nirban/hms-api/internal/model"
	"github.com/nirban/hms-api/internal/repository"
	apperrors "github.com/nirban/hms-api/pkg/errors"
	"github.com/nirban/hms-api/pkg/messaging"
	"github.com/nirban/hms-api/pkg/metrics"
)

type MockBedRepository struct {
	mock.Mock
}

func (m *MockBedRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bed), args.Error(1)
}

func (m *MockBedRepository) ListByType(ctx context.Context, bedType model.BedType) ([]*model.Bed, error) {
	args := m.Called(ctx, bedType)
	return args.Get(0).([]*model.Bed), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ActiveForBed(ctx context.Context, bedID uuid.UUID) (*model.Reservation, error) {
	args := m.Called(ctx, bedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ActiveForBeds(ctx context.Context, bedIDs []uuid.UUID) (map[uuid.UUID]*model.CurrentReservation, error) {
	args := m.Called(ctx, bedIDs)
	return args.Get(0).(map[uuid.UUID]*model.CurrentReservation), args.Error(1)
}

func (m *MockReservationRepository) Checkout(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

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

var testMetrics = metrics.NewMetrics("reception_test")

func setupTestService() (*Service, *MockBedRepository, *MockReservationRepository, *MockUserRepository) {
	mockBedRepo := &MockBedRepository{}
	mockResRepo := &MockReservationRepository{}
	mockUserRepo := &MockUserRepository{}
	svc := NewService(mockBedRepo, mockResRepo, mockUserRepo, messaging.NopBroker{}, testMetrics)
	return svc, mockBedRepo, mockResRepo, mockUserRepo
}

func newBookingRequest(bedID, patientID uuid.UUID) *model.CreateReservationRequest {
	return &model.CreateReservationRequest{
		BedID:       bedID.String(),
		PatientID:   patientID.String(),
		Type:        model.BedTypeCabin,
		CheckInDate: "2026-09-01",
	}
}

func TestListBedsWithStatus_InvalidType(t *testing.T) {
	svc, _, _, _ := setupTestService()

	_, err := svc.ListBedsWithStatus(context.Background(), "penthouse")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestListBedsWithStatus_AnnotatesOccupancy(t *testing.T) {
	svc, mockBedRepo, mockResRepo, _ := setupTestService()
	occupiedBed := &model.Bed{Base: model.Base{ID: uuid.New()}, Code: "C-101", Type: model.BedTypeCabin}
	freeBed := &model.Bed{Base: model.Base{ID: uuid.New()}, Code: "C-102", Type: model.BedTypeCabin}

	mockBedRepo.On("ListByType", mock.Anything, model.BedTypeCabin).
		Return([]*model.Bed{occupiedBed, freeBed}, nil)
	mockResRepo.On("ActiveForBeds", mock.Anything, []uuid.UUID{occupiedBed.ID, freeBed.ID}).
		Return(map[uuid.UUID]*model.CurrentReservation{
			occupiedBed.ID: {ID: uuid.New(), PatientName: "Asha"},
		}, nil)

	beds, err := svc.ListBedsWithStatus(context.Background(), model.BedTypeCabin)

	assert.NoError(t, err)
	assert.Len(t, beds, 2)
	assert.NotNil(t, beds[0].CurrentReservation)
	assert.Equal(t, "Asha", beds[0].CurrentReservation.PatientName)
	assert.Nil(t, beds[1].CurrentReservation)
}

func TestLookupPatient_RejectsNonPatient(t *testing.T) {
	svc, _, _, mockUserRepo := setupTestService()

	mockUserRepo.On("GetByEmail", mock.Anything, "doc@hms.local").
		Return(&model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleDoctor}, nil)

	_, err := svc.LookupPatient(context.Background(), "doc@hms.local")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateReservation_Success(t *testing.T) {
	svc, mockBedRepo, mockResRepo, mockUserRepo := setupTestService()
	bedID := uuid.New()
	patientID := uuid.New()

	mockBedRepo.On("Get", mock.Anything, bedID).
		Return(&model.Bed{Base: model.Base{ID: bedID}, Type: model.BedTypeCabin, IsActive: true}, nil)
	mockUserRepo.On("Get", mock.Anything, patientID).
		Return(&model.User{Base: model.Base{ID: patientID}, Role: model.RolePatient}, nil)
	mockResRepo.On("ActiveForBed", mock.Anything, bedID).
		Return(nil, repository.ErrNotFound)
	mockResRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).
		Return(nil)

	reservation, err := svc.CreateReservation(context.Background(), newBookingRequest(bedID, patientID))

	assert.NoError(t, err)
	assert.Equal(t, bedID, reservation.BedID)
	assert.Equal(t, patientID, reservation.PatientID)
	mockResRepo.AssertExpectations(t)
}

func TestCreateReservation_BedOccupied(t *testing.T) {
	svc, mockBedRepo, mockResRepo, mockUserRepo := setupTestService()
	bedID := uuid.New()
	patientID := uuid.New()

	mockBedRepo.On("Get", mock.Anything, bedID).
		Return(&model.Bed{Base: model.Base{ID: bedID}, Type: model.BedTypeCabin, IsActive: true}, nil)
	mockUserRepo.On("Get", mock.Anything, patientID).
		Return(&model.User{Base: model.Base{ID: patientID}, Role: model.RolePatient}, nil)
	mockResRepo.On("ActiveForBed", mock.Anything, bedID).
		Return(&model.Reservation{Base: model.Base{ID: uuid.New()}, BedID: bedID}, nil)

	_, err := svc.CreateReservation(context.Background(), newBookingRequest(bedID, patientID))

	assert.True(t, apperrors.IsConflict(err))
	appErr, _ := apperrors.As(err)
	assert.Equal(t, "Bed is already occupied", appErr.Message)
	mockResRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservation_RaceLoserGetsConflict(t *testing.T) {
	svc, mockBedRepo, mockResRepo, mockUserRepo := setupTestService()
	bedID := uuid.New()
	patientID := uuid.New()

	mockBedRepo.On("Get", mock.Anything, bedID).
		Return(&model.Bed{Base: model.Base{ID: bedID}, Type: model.BedTypeCabin, IsActive: true}, nil)
	mockUserRepo.On("Get", mock.Anything, patientID).
		Return(&model.User{Base: model.Base{ID: patientID}, Role: model.RolePatient}, nil)
	mockResRepo.On("ActiveForBed", mock.Anything, bedID).
		Return(nil, repository.ErrNotFound)
	// Another booking slipped in between the occupancy check and the
	// insert; the unique index rejects this one.
	mockResRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).
		Return(repository.ErrBedOccupied)

	_, err := svc.CreateReservation(context.Background(), newBookingRequest(bedID, patientID))

	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateReservation_BedLookupFailure(t *testing.T) {
	svc, mockBedRepo, _, _ := setupTestService()
	bedID := uuid.New()
	patientID := uuid.New()

	mockBedRepo.On("Get", mock.Anything, bedID).
		Return(nil, errors.New("connection reset"))

	_, err := svc.CreateReservation(context.Background(), newBookingRequest(bedID, patientID))

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
}

func TestCreateReservation_PatientLookupFailure(t *testing.T) {
	svc, mockBedRepo, _, mockUserRepo := setupTestService()
	bedID := uuid.New()
	patientID := uuid.New()

	mockBedRepo.On("Get", mock.Anything, bedID).
		Return(&model.Bed{Base: model.Base{ID: bedID}, Type: model.BedTypeCabin, IsActive: true}, nil)
	mockUserRepo.On("Get", mock.Anything, patientID).
		Return(nil, errors.New("connection reset"))

	_, err := svc.CreateReservation(context.Background(), newBookingRequest(bedID, patientID))

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
}

func TestCreateReservation_TypeMismatch(t *testing.T) {
	svc, mockBedRepo, _, _ := setupTestService()
	bedID := uuid.New()
	patientID := uuid.New()

	mockBedRepo.On("Get", mock.Anything, bedID).
		Return(&model.Bed{Base: model.Base{ID: bedID}, Type: model.BedTypeICU, IsActive: true}, nil)

	_, err := svc.CreateReservation(context.Background(), newBookingRequest(bedID, patientID))

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestCheckout_Success(t *testing.T) {
	svc, _, mockResRepo, _ := setupTestService()
	resID := uuid.New()
	patientID := uuid.New()
	now := time.Now()

	mockResRepo.On("Checkout", mock.Anything, resID, mock.AnythingOfType("time.Time")).
		Return(nil)
	mockResRepo.On("Get", mock.Anything, resID).
		Return(&model.Reservation{
			Base:         model.Base{ID: resID},
			PatientID:    patientID,
			CheckOutDate: &now,
			Status:       model.ReservationStatusCheckedOut,
		}, nil)

	reservation, err := svc.Checkout(context.Background(), resID)

	assert.NoError(t, err)
	assert.False(t, reservation.Active())
}

func TestCheckout_Twice(t *testing.T) {
	svc, _, mockResRepo, _ := setupTestService()
	resID := uuid.New()

	mockResRepo.On("Checkout", mock.Anything, resID, mock.AnythingOfType("time.Time")).
		Return(repository.ErrAlreadyCheckedOut)

	_, err := svc.Checkout(context.Background(), resID)

	assert.True(t, apperrors.IsConflict(err))
	appErr, _ := apperrors.As(err)
	assert.Equal(t, "Already checked out", appErr.Message)
}
