package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
)

// In-memory repository fakes backing the service tests. Missing rows are
// reported as pgx.ErrNoRows, matching the Postgres implementations.

type fakeCompanyRepo struct {
	companies map[int64]*domain.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	if company, ok := f.companies[id]; ok && !company.IsDeleted {
		return company, nil
	}
	return nil, pgx.ErrNoRows
}

type fakeContractRepo struct {
	contracts map[int64]*domain.Contract
}

func (f *fakeContractRepo) GetCompanyContract(_ context.Context, companyID, contractID int64) (*domain.Contract, error) {
	if contract, ok := f.contracts[contractID]; ok && contract.CompanyID == companyID && !contract.IsDeleted {
		return contract, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeContractRepo) ListByCompany(_ context.Context, companyID int64) ([]domain.Contract, error) {
	var result []domain.Contract
	for _, contract := range f.contracts {
		if contract.CompanyID == companyID && !contract.IsDeleted {
			result = append(result, *contract)
		}
	}
	return result, nil
}

type fakeBranchRepo struct {
	branches map[int64]*domain.Branch
}

func (f *fakeBranchRepo) GetCompanyBranch(_ context.Context, companyID, branchID int64) (*domain.Branch, error) {
	if branch, ok := f.branches[branchID]; ok && branch.CompanyID == companyID && !branch.IsDeleted {
		return branch, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBranchRepo) ListByCompany(_ context.Context, companyID int64) ([]domain.Branch, error) {
	var result []domain.Branch
	for _, branch := range f.branches {
		if branch.CompanyID == companyID && !branch.IsDeleted {
			result = append(result, *branch)
		}
	}
	return result, nil
}

type fakeZoneRepo struct {
	zones map[int64]*domain.Zone
}

func (f *fakeZoneRepo) GetByID(_ context.Context, id int64) (*domain.Zone, error) {
	if zone, ok := f.zones[id]; ok && !zone.IsDeleted {
		return zone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeZoneRepo) ListByBranch(_ context.Context, branchID int64) ([]domain.Zone, error) {
	var result []domain.Zone
	for _, zone := range f.zones {
		if zone.BranchID == branchID && !zone.IsDeleted {
			result = append(result, *zone)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := f.users[id]; ok && !user.IsDeleted {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email && !user.IsDeleted {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetCompanyMember(_ context.Context, companyID, userID int64) (*domain.User, error) {
	user, ok := f.users[userID]
	if !ok || user.IsDeleted || !user.IsActive {
		return nil, pgx.ErrNoRows
	}
	if user.CompanyID == nil || *user.CompanyID != companyID {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeLookupRepo struct {
	lookups map[int64]*domain.Lookup
}

func (f *fakeLookupRepo) GetActive(_ context.Context, id int64, category domain.LookupCategory) (*domain.Lookup, error) {
	if lookup, ok := f.lookups[id]; ok && lookup.Category == category && lookup.IsActive {
		return lookup, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLookupRepo) GetDefault(_ context.Context, category domain.LookupCategory) (*domain.Lookup, error) {
	for _, lookup := range f.lookups {
		if lookup.Category == category && lookup.IsDefault && lookup.IsActive {
			return lookup, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLookupRepo) ListByCategory(_ context.Context, category domain.LookupCategory) ([]domain.Lookup, error) {
	var result []domain.Lookup
	for _, lookup := range f.lookups {
		if lookup.Category == category && lookup.IsActive {
			result = append(result, *lookup)
		}
	}
	return result, nil
}

func (f *fakeLookupRepo) ListChildren(_ context.Context, parentID int64) ([]domain.Lookup, error) {
	var result []domain.Lookup
	for _, lookup := range f.lookups {
		if lookup.ParentLookupID != nil && *lookup.ParentLookupID == parentID && lookup.IsActive {
			result = append(result, *lookup)
		}
	}
	return result, nil
}

func (f *fakeLookupRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Lookup, error) {
	var result []domain.Lookup
	for _, id := range ids {
		if lookup, ok := f.lookups[id]; ok {
			result = append(result, *lookup)
		}
	}
	return result, nil
}

type fakeTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket, codePrefix string) error {
	if f.nextID == 0 {
		f.nextID = 1
	}
	ticket.ID = f.nextID
	f.nextID++
	ticket.Code = fmt.Sprintf("%s-TKT-%d", codePrefix, ticket.ID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, companyID, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok || ticket.IsDeleted || ticket.CompanyID != companyID {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, int64, error) {
	var matched []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.IsDeleted || ticket.CompanyID != filter.CompanyID {
			continue
		}
		if filter.AssignedTechnicianID != nil && ticket.AssignToTechnicianID != *filter.AssignedTechnicianID {
			continue
		}
		matched = append(matched, *ticket)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (f *fakeTicketRepo) CountByType(_ context.Context, companyID int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, ticket := range f.tickets {
		if !ticket.IsDeleted && ticket.CompanyID == companyID {
			counts[ticket.TicketTypeID]++
		}
	}
	return counts, nil
}

func (f *fakeTicketRepo) CountByStatus(_ context.Context, companyID int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, ticket := range f.tickets {
		if !ticket.IsDeleted && ticket.CompanyID == companyID {
			counts[ticket.TicketStatusID]++
		}
	}
	return counts, nil
}

type fakeFileRepo struct {
	files  map[int64]*domain.StoredFile
	nextID int64
}

func (f *fakeFileRepo) Create(_ context.Context, file *domain.StoredFile) error {
	if f.nextID == 0 {
		f.nextID = 1
	}
	file.ID = f.nextID
	f.nextID++
	file.CreatedAt = time.Now()
	file.UpdatedAt = file.CreatedAt
	stored := *file
	f.files[file.ID] = &stored
	return nil
}

func (f *fakeFileRepo) GetByID(_ context.Context, id int64) (*domain.StoredFile, error) {
	if file, ok := f.files[id]; ok && !file.IsDeleted {
		copied := *file
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeFileRepo) UpdateLocation(_ context.Context, id int64, path string, ticketID int64) error {
	file, ok := f.files[id]
	if !ok || file.IsDeleted {
		return pgx.ErrNoRows
	}
	file.Path = path
	tid := ticketID
	file.TicketID = &tid
	return nil
}

func (f *fakeFileRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.StoredFile, error) {
	var result []domain.StoredFile
	for _, file := range f.files {
		if !file.IsDeleted && file.TicketID != nil && *file.TicketID == ticketID {
			result = append(result, *file)
		}
	}
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	var matched []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// ticketFixture wires a TicketService over in-memory repositories seeded
// with one company, its org structure, and one user per role.
type ticketFixture struct {
	svc        *TicketService
	companies  *fakeCompanyRepo
	contracts  *fakeContractRepo
	branches   *fakeBranchRepo
	zones      *fakeZoneRepo
	users      *fakeUserRepo
	lookups    *fakeLookupRepo
	tickets    *fakeTicketRepo
	files      *fakeFileRepo
	dispatcher *recordingDispatcher

	admin      *domain.User
	teamLeader *domain.User
	technician *domain.User
	restricted *domain.User
}

const (
	fixtureCompanyID    = 7
	fixtureContractID   = 1
	fixtureBranchID     = 3
	fixtureZoneID       = 9
	fixtureOtherBranch  = 4
	fixtureForeignZone  = 5
	fixtureTypeID       = 10
	fixtureMainService  = 30
	fixtureStatusID     = 40
	fixtureOtherStatus  = 41
	fixtureAdminID      = 100
	fixtureTeamLeadID   = 200
	fixtureTechnicianID = 300
	fixtureRestrictedID = 400
)

func newTicketFixture() *ticketFixture {
	companyID := int64(fixtureCompanyID)

	f := &ticketFixture{
		companies:  &fakeCompanyRepo{companies: map[int64]*domain.Company{}},
		contracts:  &fakeContractRepo{contracts: map[int64]*domain.Contract{}},
		branches:   &fakeBranchRepo{branches: map[int64]*domain.Branch{}},
		zones:      &fakeZoneRepo{zones: map[int64]*domain.Zone{}},
		users:      &fakeUserRepo{users: map[int64]*domain.User{}},
		lookups:    &fakeLookupRepo{lookups: map[int64]*domain.Lookup{}},
		tickets:    &fakeTicketRepo{tickets: map[int64]*domain.Ticket{}},
		files:      &fakeFileRepo{files: map[int64]*domain.StoredFile{}},
		dispatcher: &recordingDispatcher{},
	}

	f.companies.companies[companyID] = &domain.Company{ID: companyID, Title: "Gamma Solutions", IsActive: true}
	f.contracts.contracts[fixtureContractID] = &domain.Contract{ID: fixtureContractID, Title: "Annual Maintenance", CompanyID: companyID}
	f.branches.branches[fixtureBranchID] = &domain.Branch{ID: fixtureBranchID, Title: "Main Site", CompanyID: companyID}
	f.branches.branches[fixtureOtherBranch] = &domain.Branch{ID: fixtureOtherBranch, Title: "North Site", CompanyID: companyID}
	f.zones.zones[fixtureZoneID] = &domain.Zone{ID: fixtureZoneID, Title: "Basement", BranchID: fixtureBranchID}
	f.zones.zones[fixtureForeignZone] = &domain.Zone{ID: fixtureForeignZone, Title: "Rooftop", BranchID: fixtureOtherBranch}

	f.lookups.lookups[fixtureTypeID] = &domain.Lookup{
		ID: fixtureTypeID, Category: domain.LookupTicketType,
		Name: "Corrective Maintenance", Code: domain.TicketTypeCodeCorrective, IsActive: true,
	}
	f.lookups.lookups[fixtureMainService] = &domain.Lookup{
		ID: fixtureMainService, Category: domain.LookupMainService, Name: "HVAC", IsActive: true,
	}
	f.lookups.lookups[fixtureStatusID] = &domain.Lookup{
		ID: fixtureStatusID, Category: domain.LookupTicketStatus,
		Name: "Pending", Code: "PENDING", IsActive: true, IsDefault: true,
	}
	f.lookups.lookups[fixtureOtherStatus] = &domain.Lookup{
		ID: fixtureOtherStatus, Category: domain.LookupTicketStatus,
		Name: "In Progress", Code: "IN_PROGRESS", IsActive: true,
	}

	f.admin = seedUser(f.users, fixtureAdminID, "Amal Admin", companyID, domain.LegacyRoleAdmin)
	f.teamLeader = seedUser(f.users, fixtureTeamLeadID, "Lina Leader", companyID, domain.LegacyRoleTeamLeader)
	f.technician = seedUser(f.users, fixtureTechnicianID, "Tarek Tech", companyID, domain.LegacyRoleTechnician)
	f.restricted = seedUser(f.users, fixtureRestrictedID, "Rami Readonly", companyID, domain.LegacyRoleRestricted)

	f.svc = NewTicketService(TicketDependencies{
		CompanyRepo:  f.companies,
		ContractRepo: f.contracts,
		BranchRepo:   f.branches,
		ZoneRepo:     f.zones,
		UserRepo:     f.users,
		LookupRepo:   f.lookups,
		TicketRepo:   f.tickets,
		FileRepo:     f.files,
		Dispatcher:   f.dispatcher,
	})
	return f
}

func seedUser(repo *fakeUserRepo, id int64, name string, companyID, roleCode int64) *domain.User {
	cid := companyID
	user := &domain.User{
		ID:         id,
		FullName:   name,
		Email:      fmt.Sprintf("user%d@example.com", id),
		CompanyID:  &cid,
		UserRoleID: roleCode,
		IsActive:   true,
	}
	repo.users[id] = user
	return user
}

func (f *ticketFixture) validCreateInput() TicketCreateInput {
	date := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	return TicketCreateInput{
		ContractID:           int64Ptr(fixtureContractID),
		BranchID:             int64Ptr(fixtureBranchID),
		ZoneID:               int64Ptr(fixtureZoneID),
		TicketTypeID:         int64Ptr(fixtureTypeID),
		MainServiceID:        int64Ptr(fixtureMainService),
		AssignToTeamLeaderID: int64Ptr(fixtureTeamLeadID),
		AssignToTechnicianID: int64Ptr(fixtureTechnicianID),
		TicketTitle:          "AC not cooling",
		ProblemDescription:   "Unit on floor 2 blows warm air",
		TicketDate:           &date,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}
