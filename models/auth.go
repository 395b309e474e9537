package models

// LoginRequest fields are not required at binding time: a missing field is
// reported as invalid credentials, not as a malformed request.
type LoginRequest struct {
	Username string `json:"username" validate:"max=128"`
	Password string `json:"password" validate:"max=256"`
}

type AdminProfile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    AdminProfile `json:"user"`
}
