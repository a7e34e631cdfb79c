package model

// Role is the closed set of account roles. Capability checks live here
// so handlers never compare role strings directly.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleDoctor          Role = "doctor"
	RolePatient         Role = "patient"
	RoleDonor           Role = "donor"
	RoleAmbulanceDriver Role = "ambulance_driver"
	RoleStaff           Role = "staff"
)

var validRoles = map[Role]bool{
	RoleAdmin:           true,
	RoleDoctor:          true,
	RolePatient:         true,
	RoleDonor:           true,
	RoleAmbulanceDriver: true,
	RoleStaff:           true,
}

func (r Role) Valid() bool {
	return validRoles[r]
}

// CanClaimBlood reports whether the role may act as a blood-request
// fulfiller. Verification is checked separately.
func (r Role) CanClaimBlood() bool {
	return r == RoleDonor
}

func (r Role) CanDriveAmbulance() bool {
	return r == RoleAmbulanceDriver
}

func (r Role) CanManageBeds() bool {
	return r == RoleStaff
}

func (r Role) CanAssignShifts() bool {
	return r == RoleAdmin
}

func (r Role) CanVerifyUsers() bool {
	return r == RoleAdmin
}

// RequiresVerification reports whether the role must be admin-verified
// before performing fulfiller-side operations.
func (r Role) RequiresVerification() bool {
	switch r {
	case RoleDoctor, RoleDonor, RoleAmbulanceDriver, RoleStaff:
		return true
	}
	return false
}

// StaffCategory applies only to the staff role.
type StaffCategory string

const (
	StaffReceptionist StaffCategory = "receptionist"
	StaffNurse        StaffCategory = "nurse"
	StaffWardBoy      StaffCategory = "ward_boy"
)

func (c StaffCategory) Valid() bool {
	switch c {
	case StaffReceptionist, StaffNurse, StaffWardBoy:
		return true
	}
	return false
}

type User struct {
	Base
	Name          string         `json:"name" db:"name"`
	Email         string         `json:"email" db:"email"`
	PasswordHash  string         `json:"-" db:"password_hash"`
	Phone         string         `json:"phone,omitempty" db:"phone"`
	Location      string         `json:"location,omitempty" db:"location"`
	BloodType     string         `json:"blood_type,omitempty" db:"blood_type"`
	Role          Role           `json:"role" db:"role"`
	StaffCategory *StaffCategory `json:"staff_category,omitempty" db:"staff_category"`
	IsVerified    bool           `json:"is_verified" db:"is_verified"`
}

// PatientSummary is the identity slice embedded in role-scoped views.
type PatientSummary struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Location string `json:"location,omitempty" db:"location"`
}
