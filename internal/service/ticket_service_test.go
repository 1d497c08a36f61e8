package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/policy"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	return de
}

func TestCreateTicketStampsCompanyCode(t *testing.T) {
	f := newTicketFixture()
	f.tickets.nextID = 42

	ticket, _, err := f.svc.CreateTicket(context.Background(), f.admin, f.validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "GAMMA-TKT-42", ticket.Code)
	assert.Equal(t, int64(fixtureStatusID), ticket.TicketStatusID, "new tickets start on the default status")
	assert.Equal(t, f.admin.ID, ticket.CreatedBy)

	created := f.dispatcher.byType(events.EventTicketCreated)
	require.Len(t, created, 1)
	assert.Equal(t, ticket.ID, created[0].TicketID)
}

func TestCreateTicketReportsAllMissingFields(t *testing.T) {
	f := newTicketFixture()

	_, _, err := f.svc.CreateTicket(context.Background(), f.admin, TicketCreateInput{})
	de := domainErr(t, err)

	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, "required fields are missing", de.Message)

	missing, ok := de.Details["missingFields"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		policy.FieldContractID,
		policy.FieldBranchID,
		policy.FieldZoneID,
		policy.FieldTicketTypeID,
		policy.FieldMainServiceID,
		policy.FieldAssignToTeamLeaderID,
		policy.FieldAssignToTechnicianID,
		policy.FieldTicketTitle,
		policy.FieldTicketDate,
	}, missing)
}

func TestCreateTicketDeniedRoles(t *testing.T) {
	f := newTicketFixture()

	cases := []struct {
		name  string
		actor *domain.User
	}{
		{"technician", f.technician},
		{"restricted", f.restricted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.svc.CreateTicket(context.Background(), tc.actor, f.validCreateInput())
			de := domainErr(t, err)
			assert.Equal(t, "FORBIDDEN", de.Code)
			assert.Equal(t, "role is not allowed to create tickets", de.Message)
		})
	}
}

func TestCreateTicketTeamLeaderSelfAssignOnly(t *testing.T) {
	f := newTicketFixture()

	input := f.validCreateInput()
	_, _, err := f.svc.CreateTicket(context.Background(), f.teamLeader, input)
	require.NoError(t, err, "self-assignment is allowed")

	otherLeader := seedUser(f.users, 201, "Omar Leader", fixtureCompanyID, domain.LegacyRoleTeamLeader)
	input = f.validCreateInput()
	input.AssignToTeamLeaderID = int64Ptr(otherLeader.ID)

	_, _, err = f.svc.CreateTicket(context.Background(), f.teamLeader, input)
	de := domainErr(t, err)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, "team leaders can only assign tickets to themselves", de.Message)
}

func TestCreateTicketZoneMustBelongToBranch(t *testing.T) {
	f := newTicketFixture()

	input := f.validCreateInput()
	input.ZoneID = int64Ptr(fixtureForeignZone)

	_, _, err := f.svc.CreateTicket(context.Background(), f.admin, input)
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, "Invalid zone or zone does not belong to the selected branch", de.Message)
}

func TestCreateTicketRejectsForeignContract(t *testing.T) {
	f := newTicketFixture()

	input := f.validCreateInput()
	input.ContractID = int64Ptr(999)

	_, _, err := f.svc.CreateTicket(context.Background(), f.admin, input)
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, "Invalid contract or contract does not belong to your company", de.Message)
}

func TestCreateTicketRejectsInactiveTicketType(t *testing.T) {
	f := newTicketFixture()
	f.lookups.lookups[fixtureTypeID].IsActive = false

	_, _, err := f.svc.CreateTicket(context.Background(), f.admin, f.validCreateInput())
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, "Invalid or inactive ticket type", de.Message)
}

func TestCreateTicketMissingDefaultStatusIsInternal(t *testing.T) {
	f := newTicketFixture()
	f.lookups.lookups[fixtureStatusID].IsDefault = false

	_, _, err := f.svc.CreateTicket(context.Background(), f.admin, f.validCreateInput())
	de := domainErr(t, err)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "default ticket status lookup is missing", de.Message)
}

func mustCreateTicket(t *testing.T, f *ticketFixture) int64 {
	t.Helper()
	ticket, _, err := f.svc.CreateTicket(context.Background(), f.admin, f.validCreateInput())
	require.NoError(t, err)
	return ticket.ID
}

func TestUpdateTicketRestrictedDenied(t *testing.T) {
	f := newTicketFixture()
	ticketID := mustCreateTicket(t, f)

	_, _, err := f.svc.UpdateTicket(context.Background(), f.restricted, ticketID, TicketUpdateInput{
		TicketStatusID: int64Ptr(fixtureOtherStatus),
	})
	de := domainErr(t, err)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, "role is not allowed to update tickets", de.Message)
}

func TestUpdateTicketTechnicianFieldAllowlist(t *testing.T) {
	f := newTicketFixture()
	ticketID := mustCreateTicket(t, f)

	_, _, err := f.svc.UpdateTicket(context.Background(), f.technician, ticketID, TicketUpdateInput{
		BranchID:       int64Ptr(fixtureOtherBranch),
		TicketStatusID: int64Ptr(fixtureOtherStatus),
	})
	de := domainErr(t, err)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Contains(t, de.Message, "branchId")
	assert.NotContains(t, de.Message, "ticketStatusId")
}

func TestUpdateTicketTechnicianAllowedFields(t *testing.T) {
	f := newTicketFixture()
	ticketID := mustCreateTicket(t, f)

	ticket, _, err := f.svc.UpdateTicket(context.Background(), f.technician, ticketID, TicketUpdateInput{
		TicketStatusID:     int64Ptr(fixtureOtherStatus),
		ServiceDescription: strPtr("replaced the compressor relay"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(fixtureOtherStatus), ticket.TicketStatusID)
	assert.Equal(t, "replaced the compressor relay", ticket.ServiceDescription)
	require.NotNil(t, ticket.UpdatedBy)
	assert.Equal(t, f.technician.ID, *ticket.UpdatedBy)

	statusEvents := f.dispatcher.byType(events.EventTicketStatusChanged)
	require.Len(t, statusEvents, 1)
}

func TestUpdateTicketTechnicianMustBeAssigned(t *testing.T) {
	f := newTicketFixture()
	ticketID := mustCreateTicket(t, f)

	other := seedUser(f.users, 301, "Nour Tech", fixtureCompanyID, domain.LegacyRoleTechnician)
	_, _, err := f.svc.UpdateTicket(context.Background(), other, ticketID, TicketUpdateInput{
		TicketStatusID: int64Ptr(fixtureOtherStatus),
	})
	de := domainErr(t, err)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, "ticket is not assigned to you", de.Message)
}

func TestUpdateTicketZoneValidatedAgainstEffectiveBranch(t *testing.T) {
	f := newTicketFixture()
	ticketID := mustCreateTicket(t, f)

	// Moving only the branch leaves the old zone dangling.
	_, _, err := f.svc.UpdateTicket(context.Background(), f.admin, ticketID, TicketUpdateInput{
		BranchID: int64Ptr(fixtureOtherBranch),
	})
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, "Invalid zone or zone does not belong to the selected branch", de.Message)

	// Moving branch and zone together is fine.
	ticket, _, err := f.svc.UpdateTicket(context.Background(), f.admin, ticketID, TicketUpdateInput{
		BranchID: int64Ptr(fixtureOtherBranch),
		ZoneID:   int64Ptr(fixtureForeignZone),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(fixtureOtherBranch), ticket.BranchID)
	assert.Equal(t, int64(fixtureForeignZone), ticket.ZoneID)
}

func TestUpdateTicketUnknownIDIsNotFound(t *testing.T) {
	f := newTicketFixture()

	_, _, err := f.svc.UpdateTicket(context.Background(), f.admin, 9999, TicketUpdateInput{
		TicketStatusID: int64Ptr(fixtureOtherStatus),
	})
	de := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestListTicketsTechnicianSeesOnlyOwnAssignments(t *testing.T) {
	f := newTicketFixture()
	mustCreateTicket(t, f)

	other := seedUser(f.users, 301, "Nour Tech", fixtureCompanyID, domain.LegacyRoleTechnician)
	input := f.validCreateInput()
	input.AssignToTechnicianID = int64Ptr(other.ID)
	_, _, err := f.svc.CreateTicket(context.Background(), f.admin, input)
	require.NoError(t, err)

	adminList, err := f.svc.ListTickets(context.Background(), f.admin, 1, 20)
	require.NoError(t, err)
	assert.Len(t, adminList.All, 2)
	assert.Equal(t, int64(2), adminList.Total)
	assert.Len(t, adminList.Buckets["corrective"], 2)

	techList, err := f.svc.ListTickets(context.Background(), f.technician, 1, 20)
	require.NoError(t, err)
	require.Len(t, techList.All, 1)
	assert.Equal(t, f.technician.ID, techList.All[0].AssignToTechnicianID)
}

func TestListTicketsPagination(t *testing.T) {
	f := newTicketFixture()
	for i := 0; i < 5; i++ {
		mustCreateTicket(t, f)
	}

	page, err := f.svc.ListTickets(context.Background(), f.admin, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.All, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)

	last, err := f.svc.ListTickets(context.Background(), f.admin, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.All, 1)
	assert.False(t, last.HasMore)
}

func TestGetTicketTechnicianCannotSeeForeignTicket(t *testing.T) {
	f := newTicketFixture()
	ticketID := mustCreateTicket(t, f)

	other := seedUser(f.users, 301, "Nour Tech", fixtureCompanyID, domain.LegacyRoleTechnician)
	_, err := f.svc.GetTicket(context.Background(), other, ticketID)
	de := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code, "non-assigned technicians get not-found, not forbidden")

	detail, err := f.svc.GetTicket(context.Background(), f.technician, ticketID)
	require.NoError(t, err)
	assert.Equal(t, ticketID, detail.Ticket.ID)
	require.NotNil(t, detail.Branch)
	assert.Equal(t, "Main Site", detail.Branch.Title)
}

func TestStatisticsCountsByLookupName(t *testing.T) {
	f := newTicketFixture()
	mustCreateTicket(t, f)
	mustCreateTicket(t, f)

	stats, err := f.svc.Statistics(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.ByType["Corrective Maintenance"])
	assert.Equal(t, int64(2), stats.ByStatus["Pending"])
}
