package model

import (
	"time"

	"github.com/google/uuid"
)

type BedType string

const (
	BedTypeCabin BedType = "cabin"
	BedTypeICU   BedType = "icu"
	BedTypeOT    BedType = "ot"
)

func (t BedType) Valid() bool {
	switch t {
	case BedTypeCabin, BedTypeICU, BedTypeOT:
		return true
	}
	return false
}

type Bed struct {
	Base
	Code     string  `json:"code" db:"code"`
	Type     BedType `json:"type" db:"type"`
	Category string  `json:"category,omitempty" db:"category"`
	IsActive bool    `json:"is_active" db:"is_active"`
}

type ReservationStatus string

const (
	ReservationStatusBooked     ReservationStatus = "booked"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// Reservation binds a bed to a patient. A bed has at most one active
// (booked or checked_in, not yet checked out) reservation at a time.
type Reservation struct {
	Base
	BedID        uuid.UUID         `json:"bed_id" db:"bed_id"`
	PatientID    uuid.UUID         `json:"patient_id" db:"patient_id"`
	Type         BedType           `json:"type" db:"type"`
	CheckInDate  time.Time         `json:"check_in_date" db:"check_in_date"`
	CheckOutDate *time.Time        `json:"check_out_date,omitempty" db:"check_out_date"`
	Status       ReservationStatus `json:"status" db:"status"`
}

// Active reports whether the reservation still occupies its bed.
func (r *Reservation) Active() bool {
	return r.CheckOutDate == nil &&
		(r.Status == ReservationStatusBooked || r.Status == ReservationStatusCheckedIn)
}

// CurrentReservation is the occupancy slice shown in the bed list.
type CurrentReservation struct {
	ID           uuid.UUID         `json:"id"`
	PatientID    uuid.UUID         `json:"patient_id"`
	PatientName  string            `json:"patient_name"`
	PatientEmail string            `json:"patient_email"`
	CheckInDate  time.Time         `json:"check_in_date"`
	Status       ReservationStatus `json:"status"`
}

type BedWithReservation struct {
	ID                 uuid.UUID           `json:"id"`
	Code               string              `json:"code"`
	Type               BedType             `json:"type"`
	Category           string              `json:"category,omitempty"`
	CurrentReservation *CurrentReservation `json:"current_reservation"`
}

type CreateReservationRequest struct {
	BedID       string  `json:"bed_id" binding:"required,uuid"`
	PatientID   string  `json:"patient_id" binding:"required,uuid"`
	Type        BedType `json:"type" binding:"required"`
	CheckInDate string  `json:"check_in_date" binding:"required"`
}
