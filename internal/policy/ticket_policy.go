// Package policy holds the pure role-policy rules for ticket actions.
// Everything here is a function of the acting user's role and id; persistence
// and transport concerns stay outside.
package policy

import (
	"sort"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Ticket payload field names as they appear on the wire. Policy decisions
// reference these names so denial messages match what clients sent.
const (
	FieldContractID           = "contractId"
	FieldBranchID             = "branchId"
	FieldZoneID               = "zoneId"
	FieldTicketTypeID         = "ticketTypeId"
	FieldTicketStatusID       = "ticketStatusId"
	FieldMainServiceID        = "mainServiceId"
	FieldAssignToTeamLeaderID = "assignToTeamLeaderId"
	FieldAssignToTechnicianID = "assignToTechnicianId"
	FieldTicketTitle          = "ticketTitle"
	FieldProblemDescription   = "problemDescription"
	FieldServiceDescription   = "serviceDescription"
	FieldTicketDate           = "ticketDate"
	FieldTicketTimeFrom       = "ticketTimeFrom"
	FieldTicketTimeTo         = "ticketTimeTo"
	FieldTools                = "tools"
)

// CanCreateTicket reports whether the role may create tickets.
// Only Admin and TeamLeader can.
func CanCreateTicket(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleTeamLeader
}

// CanUpdateTicket reports whether the role may update tickets at all.
// Restricted users are read-only; unknown roles are denied.
func CanUpdateTicket(role domain.Role) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleTeamLeader, domain.RoleTechnician,
		domain.RoleSubTechnician, domain.RoleSuperUser:
		return true
	default:
		return false
	}
}

// technicianUpdatableFields is the whitelist for technician-level roles.
var technicianUpdatableFields = map[string]struct{}{
	FieldTicketStatusID:     {},
	FieldServiceDescription: {},
}

// AllowedUpdateFields returns the permitted update fields for a role.
// A nil map means every field is permitted.
func AllowedUpdateFields(role domain.Role) map[string]struct{} {
	if role.IsTechnicianLevel() {
		return technicianUpdatableFields
	}
	return nil
}

// DisallowedUpdateFields filters the provided payload field names down to
// those the role may not touch, sorted for stable error messages.
func DisallowedUpdateFields(role domain.Role, provided []string) []string {
	allowed := AllowedUpdateFields(role)
	if allowed == nil {
		return nil
	}
	var denied []string
	for _, name := range provided {
		if _, ok := allowed[name]; !ok {
			denied = append(denied, name)
		}
	}
	sort.Strings(denied)
	return denied
}

// Scope narrows ticket visibility for a caller. CompanyID is always set;
// AssignedTechnicianID is set for technician-level roles, which only see
// tickets assigned to them.
type Scope struct {
	CompanyID            int64
	AssignedTechnicianID *int64
}

// VisibilityScope computes the ticket visibility scope for a user.
func VisibilityScope(role domain.Role, companyID, userID int64) Scope {
	scope := Scope{CompanyID: companyID}
	if role.IsTechnicianLevel() {
		uid := userID
		scope.AssignedTechnicianID = &uid
	}
	return scope
}

// TeamLeaderSelfAssignOnly validates the team-leader assignment on a
// payload: a TeamLeader may only assign tickets to themself. Other roles
// are unrestricted here (their assignment targets are validated against
// the company elsewhere).
func TeamLeaderSelfAssignOnly(role domain.Role, userID, requestedTeamLeaderID int64) bool {
	if role != domain.RoleTeamLeader {
		return true
	}
	return requestedTeamLeaderID == userID
}

// CanViewAllCompanyTickets reports whether the role sees every company
// ticket rather than only its own assignments.
func CanViewAllCompanyTickets(role domain.Role) bool {
	return !role.IsTechnicianLevel() && role != domain.RoleUnknown
}
