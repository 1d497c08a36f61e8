package dto

import "time"

// RegisterRequest payload for account creation.
type RegisterRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	CompanyID  *int64 `json:"companyId"`
	UserRoleID int64  `json:"userRoleId"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public user shape.
type UserResponse struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	CompanyID  *int64 `json:"companyId"`
	UserRoleID int64  `json:"userRoleId"`
	Role       string `json:"role"`
}

// AuthResponse carries the issued token alongside the user.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
