package models

// Role represents the dashboard role carried in access tokens
type Role int

// Role constants
const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// LoginRequest represents a login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response body
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        Role   `json:"role"`
}
