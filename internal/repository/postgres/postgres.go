package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/nirban/hms-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type bloodRequestRepository struct {
	db *sqlx.DB
}

type donorRepository struct {
	db *sqlx.DB
}

type ambulanceCallRepository struct {
	db *sqlx.DB
}

type driverRepository struct {
	db *sqlx.DB
}

type bedRepository struct {
	db *sqlx.DB
}

type reservationRepository struct {
	db *sqlx.DB
}

type scheduleRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewBloodRequestRepository(db *sqlx.DB) repository.BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func NewDonorRepository(db *sqlx.DB) repository.DonorRepository {
	return &donorRepository{db: db}
}

func NewAmbulanceCallRepository(db *sqlx.DB) repository.AmbulanceCallRepository {
	return &ambulanceCallRepository{db: db}
}

func NewDriverRepository(db *sqlx.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func NewBedRepository(db *sqlx.DB) repository.BedRepository {
	return &bedRepository{db: db}
}

func NewReservationRepository(db *sqlx.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}
