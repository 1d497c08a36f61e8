package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

func TestCanCreateTicket(t *testing.T) {
	assert.True(t, CanCreateTicket(domain.RoleAdmin))
	assert.True(t, CanCreateTicket(domain.RoleTeamLeader))

	assert.False(t, CanCreateTicket(domain.RoleTechnician))
	assert.False(t, CanCreateTicket(domain.RoleSubTechnician))
	assert.False(t, CanCreateTicket(domain.RoleRestricted))
	assert.False(t, CanCreateTicket(domain.RoleSuperUser))
	assert.False(t, CanCreateTicket(domain.RoleUnknown))
}

func TestCanUpdateTicket(t *testing.T) {
	assert.True(t, CanUpdateTicket(domain.RoleAdmin))
	assert.True(t, CanUpdateTicket(domain.RoleTeamLeader))
	assert.True(t, CanUpdateTicket(domain.RoleTechnician))
	assert.True(t, CanUpdateTicket(domain.RoleSubTechnician))
	assert.True(t, CanUpdateTicket(domain.RoleSuperUser))

	assert.False(t, CanUpdateTicket(domain.RoleRestricted))
	assert.False(t, CanUpdateTicket(domain.RoleUnknown))
}

func TestDisallowedUpdateFields(t *testing.T) {
	provided := []string{FieldTicketStatusID, FieldServiceDescription, FieldBranchID, FieldAssignToTechnicianID}

	assert.Nil(t, DisallowedUpdateFields(domain.RoleAdmin, provided))
	assert.Nil(t, DisallowedUpdateFields(domain.RoleTeamLeader, provided))

	denied := DisallowedUpdateFields(domain.RoleTechnician, provided)
	assert.Equal(t, []string{FieldAssignToTechnicianID, FieldBranchID}, denied, "denied fields are sorted")

	assert.Empty(t, DisallowedUpdateFields(domain.RoleSubTechnician,
		[]string{FieldTicketStatusID, FieldServiceDescription}))
}

func TestVisibilityScope(t *testing.T) {
	scope := VisibilityScope(domain.RoleAdmin, 7, 100)
	assert.Equal(t, int64(7), scope.CompanyID)
	assert.Nil(t, scope.AssignedTechnicianID)

	scope = VisibilityScope(domain.RoleTechnician, 7, 300)
	if assert.NotNil(t, scope.AssignedTechnicianID) {
		assert.Equal(t, int64(300), *scope.AssignedTechnicianID)
	}

	scope = VisibilityScope(domain.RoleSubTechnician, 7, 301)
	if assert.NotNil(t, scope.AssignedTechnicianID) {
		assert.Equal(t, int64(301), *scope.AssignedTechnicianID)
	}
}

func TestTeamLeaderSelfAssignOnly(t *testing.T) {
	assert.True(t, TeamLeaderSelfAssignOnly(domain.RoleTeamLeader, 200, 200))
	assert.False(t, TeamLeaderSelfAssignOnly(domain.RoleTeamLeader, 200, 201))

	// Other roles assign freely.
	assert.True(t, TeamLeaderSelfAssignOnly(domain.RoleAdmin, 100, 201))
}

func TestCanViewAllCompanyTickets(t *testing.T) {
	assert.True(t, CanViewAllCompanyTickets(domain.RoleAdmin))
	assert.True(t, CanViewAllCompanyTickets(domain.RoleRestricted))
	assert.False(t, CanViewAllCompanyTickets(domain.RoleTechnician))
	assert.False(t, CanViewAllCompanyTickets(domain.RoleUnknown))
}
