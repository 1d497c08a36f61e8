package events

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketUpdated         EventType = "ticket_updated"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketFilesReconciled EventType = "ticket_files_reconciled"
)

// Actor identifies the user behind an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	CompanyID int64       `json:"company_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Code                 string `json:"code"`
	TicketTypeID         int64  `json:"ticket_type_id"`
	AssignToTeamLeaderID int64  `json:"assign_to_team_leader_id"`
	AssignToTechnicianID int64  `json:"assign_to_technician_id"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	UpdatedFields []string `json:"updated_fields"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatusID int64 `json:"old_status_id"`
	NewStatusID int64 `json:"new_status_id"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignToTeamLeaderID int64 `json:"assign_to_team_leader_id"`
	AssignToTechnicianID int64 `json:"assign_to_technician_id"`
}

// TicketFilesReconciledPayload payload.
type TicketFilesReconciledPayload struct {
	Relocated int `json:"relocated"`
	Skipped   int `json:"skipped"`
}
