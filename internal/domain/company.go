package domain

import (
	"strings"
	"time"
)

// Company is a tenant contracting facility-maintenance services.
type Company struct {
	ID        int64
	Title     string
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CodePrefix derives the short ticket-code prefix from the company title:
// the first whitespace-delimited token, uppercased.
func (c *Company) CodePrefix() string {
	fields := strings.Fields(c.Title)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
