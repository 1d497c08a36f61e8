package domain

import "time"

// TicketSource records which client raised the ticket.
type TicketSource string

const (
	TicketSourceWeb    TicketSource = "Web"
	TicketSourceMobile TicketSource = "Mobile"
)

// Ticket is the aggregate for maintenance requests.
type Ticket struct {
	ID                     int64
	Code                   string
	CompanyID              int64
	ContractID             int64
	BranchID               int64
	ZoneID                 int64
	TicketTypeID           int64
	TicketStatusID         int64
	MainServiceID          int64
	AssignToTeamLeaderID   int64
	AssignToTechnicianID   int64
	TicketTitle            string
	ProblemDescription     string
	ServiceDescription     string
	TicketDate             time.Time
	TicketTimeFrom         *time.Time
	TicketTimeTo           *time.Time
	Tools                  []int64
	Source                 TicketSource
	CreatedBy              int64
	UpdatedBy              *int64
	IsDeleted              bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
