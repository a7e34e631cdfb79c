package model

import (
	"time"

	"github.com/google/uuid"
)

type BloodRequestStatus string

const (
	BloodRequestStatusRequested BloodRequestStatus = "requested"
	BloodRequestStatusAccepted  BloodRequestStatus = "accepted"
	BloodRequestStatusCompleted BloodRequestStatus = "completed"
)

// BloodRequest is a claimable resource: at most one donor ever claims
// it, and status only moves forward.
type BloodRequest struct {
	Base
	PatientID   uuid.UUID          `json:"patient_id" db:"patient_id"`
	BloodType   string             `json:"blood_type" db:"blood_type"`
	Location    string             `json:"location" db:"location"`
	Status      BloodRequestStatus `json:"status" db:"status"`
	DonorID     *uuid.UUID         `json:"donor_id,omitempty" db:"donor_id"`
	RequestedAt time.Time          `json:"requested_at" db:"requested_at"`
	AcceptedAt  *time.Time         `json:"accepted_at,omitempty" db:"accepted_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty" db:"completed_at"`
}

// BloodRequestView joins the request with the patient's display
// identity for donor-facing lists.
type BloodRequestView struct {
	BloodRequest
	PatientName     string `json:"patient_name" db:"patient_name"`
	PatientLocation string `json:"patient_location,omitempty" db:"patient_location"`
}

// DonorProfile tracks donor-side state outside the user record.
type DonorProfile struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	BloodType      string    `json:"blood_type" db:"blood_type"`
	Location       string    `json:"location,omitempty" db:"location"`
	Available      bool      `json:"available" db:"available"`
	CompletedCount int       `json:"completed_count" db:"completed_count"`
}

type CreateBloodRequestRequest struct {
	BloodType string `json:"blood_type" binding:"required,bloodgroup"`
	Location  string `json:"location" binding:"required"`
}

// UpdateAvailabilityRequest uses a pointer so that an explicit false
// still passes the required check.
type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// DonorDashboard is the donor's role-scoped view: profile counters,
// open requests, and the requests this donor has claimed.
type DonorDashboard struct {
	Message          string              `json:"message"`
	CompletedCount   int                 `json:"completed_count"`
	Available        bool                `json:"available"`
	PendingRequests  []*BloodRequestView `json:"pending_requests"`
	AssignedRequests []*BloodRequestView `json:"assigned_requests"`
}
