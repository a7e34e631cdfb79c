package model

import (
	"time"

	"github.com/google/uuid"
)

type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
)

func (s ShiftType) Valid() bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftNight:
		return true
	}
	return false
}

// StaffSchedule is one shift assignment. There is deliberately no
// uniqueness constraint on (staff, date, shift); admins may stack
// assignments.
type StaffSchedule struct {
	Base
	StaffID   uuid.UUID `json:"staff_id" db:"staff_id"`
	Date      time.Time `json:"date" db:"date"`
	ShiftType ShiftType `json:"shift_type" db:"shift_type"`
}

// StaffScheduleView annotates the entry with the staff member's
// display identity.
type StaffScheduleView struct {
	StaffSchedule
	StaffName     string         `json:"staff_name" db:"staff_name"`
	StaffCategory *StaffCategory `json:"staff_category,omitempty" db:"staff_category"`
	StaffPhone    string         `json:"staff_phone,omitempty" db:"staff_phone"`
	StaffEmail    string         `json:"staff_email,omitempty" db:"staff_email"`
}

type CreateStaffScheduleRequest struct {
	StaffID   string    `json:"staff_id" binding:"required,uuid"`
	Date      string    `json:"date" binding:"required"`
	ShiftType ShiftType `json:"shift_type" binding:"required"`
}
