package models

import "time"

// User represents a user in the system
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never serialize password hash
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned after a successful signup
type SignupResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
