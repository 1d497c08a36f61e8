package domain

import "time"

// Branch is a company site that owns zones.
type Branch struct {
	ID        int64
	Title     string
	CompanyID int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Zone is a maintenance area inside exactly one branch.
type Zone struct {
	ID        int64
	Title     string
	BranchID  int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
