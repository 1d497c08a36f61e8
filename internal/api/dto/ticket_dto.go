package dto

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CreateTicketRequest payload. Relationship ids are pointers so the handler
// can report every missing field by name.
type CreateTicketRequest struct {
	ContractID           *int64              `json:"contractId"`
	BranchID             *int64              `json:"branchId"`
	ZoneID               *int64              `json:"zoneId"`
	TicketTypeID         *int64              `json:"ticketTypeId"`
	MainServiceID        *int64              `json:"mainServiceId"`
	AssignToTeamLeaderID *int64              `json:"assignToTeamLeaderId"`
	AssignToTechnicianID *int64              `json:"assignToTechnicianId"`
	TicketTitle          string              `json:"ticketTitle"`
	ProblemDescription   string              `json:"problemDescription"`
	TicketDate           *time.Time          `json:"ticketDate"`
	TicketTimeFrom       *time.Time          `json:"ticketTimeFrom"`
	TicketTimeTo         *time.Time          `json:"ticketTimeTo"`
	Tools                []int64             `json:"tools"`
	Source               domain.TicketSource `json:"source"`
	FileIDs              []int64             `json:"fileIds"`
}

// UpdateTicketRequest is a partial update; nil means the field was absent.
type UpdateTicketRequest struct {
	ContractID           *int64     `json:"contractId"`
	BranchID             *int64     `json:"branchId"`
	ZoneID               *int64     `json:"zoneId"`
	TicketTypeID         *int64     `json:"ticketTypeId"`
	TicketStatusID       *int64     `json:"ticketStatusId"`
	MainServiceID        *int64     `json:"mainServiceId"`
	AssignToTeamLeaderID *int64     `json:"assignToTeamLeaderId"`
	AssignToTechnicianID *int64     `json:"assignToTechnicianId"`
	TicketTitle          *string    `json:"ticketTitle"`
	ProblemDescription   *string    `json:"problemDescription"`
	ServiceDescription   *string    `json:"serviceDescription"`
	TicketDate           *time.Time `json:"ticketDate"`
	TicketTimeFrom       *time.Time `json:"ticketTimeFrom"`
	TicketTimeTo         *time.Time `json:"ticketTimeTo"`
	Tools                []int64    `json:"tools"`
	FileIDs              []int64    `json:"fileIds"`
}

// TicketSummary response.
type TicketSummary struct {
	ID                   int64               `json:"id"`
	Code                 string              `json:"code"`
	CompanyID            int64               `json:"companyId"`
	ContractID           int64               `json:"contractId"`
	BranchID             int64               `json:"branchId"`
	ZoneID               int64               `json:"zoneId"`
	TicketTypeID         int64               `json:"ticketTypeId"`
	TicketStatusID       int64               `json:"ticketStatusId"`
	MainServiceID        int64               `json:"mainServiceId"`
	AssignToTeamLeaderID int64               `json:"assignToTeamLeaderId"`
	AssignToTechnicianID int64               `json:"assignToTechnicianId"`
	TicketTitle          string              `json:"ticketTitle"`
	TicketDate           time.Time           `json:"ticketDate"`
	Source               domain.TicketSource `json:"source"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// RelatedUser is a trimmed user reference on ticket detail.
type RelatedUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// RelatedLookup is a trimmed lookup reference on ticket detail.
type RelatedLookup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// TicketFileResponse describes an attached file with its public path.
type TicketFileResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"fileName"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}

// TicketDetailResponse provides full ticket info with nested relations.
type TicketDetailResponse struct {
	TicketSummary
	ProblemDescription string               `json:"problemDescription"`
	ServiceDescription string               `json:"serviceDescription"`
	TicketTimeFrom     *time.Time           `json:"ticketTimeFrom"`
	TicketTimeTo       *time.Time           `json:"ticketTimeTo"`
	Contract           *RelatedLookup       `json:"contract"`
	Branch             *RelatedLookup       `json:"branch"`
	Zone               *RelatedLookup       `json:"zone"`
	TicketType         *RelatedLookup       `json:"ticketType"`
	TicketStatus       *RelatedLookup       `json:"ticketStatus"`
	MainService        *RelatedLookup       `json:"mainService"`
	TeamLeader         *RelatedUser         `json:"teamLeader"`
	Technician         *RelatedUser         `json:"technician"`
	CreatedByUser      *RelatedUser         `json:"createdByUser"`
	UpdatedByUser      *RelatedUser         `json:"updatedByUser"`
	Tools              []string             `json:"tools"`
	Files              []TicketFileResponse `json:"files"`
}

// Pagination reports paging state on list responses.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// TicketListResponse buckets tickets by type plus an all bucket.
type TicketListResponse struct {
	All        []TicketSummary `json:"all"`
	Corrective []TicketSummary `json:"corrective"`
	Preventive []TicketSummary `json:"preventive"`
	Emergency  []TicketSummary `json:"emergency"`
	Pagination Pagination      `json:"pagination"`
}

// RelocationReportEntry mirrors service.RelocationResult on the wire.
type RelocationReportEntry struct {
	FileID  int64  `json:"fileId"`
	Outcome string `json:"outcome"`
	Path    string `json:"path,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
