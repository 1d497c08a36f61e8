package domain

import "time"

// LookupCategory partitions the reference-data table.
type LookupCategory string

const (
	LookupTicketType   LookupCategory = "TicketType"
	LookupTicketStatus LookupCategory = "TicketStatus"
	LookupMainService  LookupCategory = "MainService"
	LookupSubService   LookupCategory = "SubService"
	LookupTool         LookupCategory = "Tool"
)

// Well-known ticket type codes used for list bucketing.
const (
	TicketTypeCodeCorrective = "CORRECTIVE"
	TicketTypeCodePreventive = "PREVENTIVE"
	TicketTypeCodeEmergency  = "EMERGENCY"
)

// Lookup is a generic reference-data row keyed by category + id.
type Lookup struct {
	ID             int64
	Category       LookupCategory
	Name           string
	NameArabic     string
	Code           string
	IsActive       bool
	IsDefault      bool
	ParentLookupID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
