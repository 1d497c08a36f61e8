package domain

import "time"

// User is any account acting on the system, from admins to restricted viewers.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	CompanyID    *int64
	UserRoleID   int64
	IsActive     bool
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role resolves the legacy numeric role code.
func (u *User) Role() Role {
	return RoleFromLegacyCode(u.UserRoleID)
}
