package models

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"` // JWT token
}

// ProfileResponse represents the response for the authenticated profile endpoint
type ProfileResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}
