package model

import "github.com/golang-jwt/jwt/v5"

// EmployeeClaims are JWT claims for portal users. Role is "employee"
// or "admin"; the engine only uses UserID for session ownership.
type EmployeeClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// LoginRequest is the request body for portal login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
