package model

import (
	"time"

	"github.com/google/uuid"
)

type AmbulanceCallStatus string

const (
	AmbulanceCallStatusRequested AmbulanceCallStatus = "requested"
	AmbulanceCallStatusAccepted  AmbulanceCallStatus = "accepted"
	AmbulanceCallStatusCompleted AmbulanceCallStatus = "completed"
	AmbulanceCallStatusCancelled AmbulanceCallStatus = "cancelled"
)

// AmbulanceCall follows the same claim lifecycle as BloodRequest with a
// driver as the fulfiller.
type AmbulanceCall struct {
	Base
	PatientID      uuid.UUID           `json:"patient_id" db:"patient_id"`
	DriverID       *uuid.UUID          `json:"driver_id,omitempty" db:"driver_id"`
	PickupLocation string              `json:"pickup_location" db:"pickup_location"`
	Status         AmbulanceCallStatus `json:"status" db:"status"`
	RequestedAt    time.Time           `json:"requested_at" db:"requested_at"`
	AcceptedAt     *time.Time          `json:"accepted_at,omitempty" db:"accepted_at"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty" db:"completed_at"`
}

type AmbulanceCallView struct {
	AmbulanceCall
	PatientName     string `json:"patient_name" db:"patient_name"`
	PatientLocation string `json:"patient_location,omitempty" db:"patient_location"`
}

type DriverProfile struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	CompletedRequests int       `json:"completed_requests" db:"completed_requests"`
}

type RequestAmbulanceRequest struct {
	PickupLocation string `json:"pickup_location" binding:"required"`
}

type DriverDashboard struct {
	Message           string               `json:"message"`
	CompletedRequests int                  `json:"completed_requests"`
	PendingRequests   []*AmbulanceCallView `json:"pending_requests"`
	AssignedRequests  []*AmbulanceCallView `json:"assigned_requests"`
}
