package model

type RegisterRequest struct {
	Name          string         `json:"name" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Password      string         `json:"password" binding:"required,min=8"`
	Phone         string         `json:"phone"`
	Location      string         `json:"location"`
	BloodType     string         `json:"blood_type" binding:"omitempty,bloodgroup"`
	Role          Role           `json:"role" binding:"required"`
	StaffCategory *StaffCategory `json:"staff_category"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
