package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBedTypeValid(t *testing.T) {
	assert.True(t, BedTypeCabin.Valid())
	assert.True(t, BedTypeICU.Valid())
	assert.True(t, BedTypeOT.Valid())
	assert.False(t, BedType("ward").Valid())
}

func TestReservationActive(t *testing.T) {
	now := time.Now()

	booked := Reservation{Status: ReservationStatusBooked}
	assert.True(t, booked.Active())

	checkedIn := Reservation{Status: ReservationStatusCheckedIn}
	assert.True(t, checkedIn.Active())

	checkedOut := Reservation{Status: ReservationStatusCheckedOut, CheckOutDate: &now}
	assert.False(t, checkedOut.Active())

	cancelled := Reservation{Status: ReservationStatusCancelled}
	assert.False(t, cancelled.Active())
}

func TestShiftTypeValid(t *testing.T) {
	assert.True(t, ShiftMorning.Valid())
	assert.True(t, ShiftEvening.Valid())
	assert.True(t, ShiftNight.Valid())
	assert.False(t, ShiftType("graveyard").Valid())
}
