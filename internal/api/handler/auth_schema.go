package handler

import "time"

type signupRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

type signupResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type loginResponse struct {
	User      userResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type sessionUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type sessionResponse struct {
	Status          string       `json:"status"`
	User            *sessionUser `json:"user,omitempty"`
	ExpiresAt       *time.Time   `json:"expires_at,omitempty"`
	HasRequiredRole *bool        `json:"has_required_role,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
