package domain

import "time"

// Contract binds a company to a maintenance agreement.
type Contract struct {
	ID        int64
	Reference string
	Title     string
	CompanyID int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
