package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/policy"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// FileReconciler moves uploaded files into a ticket's folder, best effort.
type FileReconciler interface {
	ReconcileTicketFiles(ctx context.Context, ticketID int64, fileIDs []int64) []RelocationResult
}

// TicketService coordinates the ticket lifecycle: creation, updates,
// listing, and statistics.
type TicketService struct {
	companies  repository.CompanyRepository
	contracts  repository.ContractRepository
	branches   repository.BranchRepository
	zones      repository.ZoneRepository
	users      repository.UserRepository
	lookups    repository.LookupRepository
	tickets    repository.TicketRepository
	files      repository.FileRepository
	reconciler FileReconciler
	dispatcher events.Dispatcher
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	CompanyRepo  repository.CompanyRepository
	ContractRepo repository.ContractRepository
	BranchRepo   repository.BranchRepository
	ZoneRepo     repository.ZoneRepository
	UserRepo     repository.UserRepository
	LookupRepo   repository.LookupRepository
	TicketRepo   repository.TicketRepository
	FileRepo     repository.FileRepository
	Reconciler   FileReconciler
	Dispatcher   events.Dispatcher
	Cache        *redis.Client
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		companies:  deps.CompanyRepo,
		contracts:  deps.ContractRepo,
		branches:   deps.BranchRepo,
		zones:      deps.ZoneRepo,
		users:      deps.UserRepo,
		lookups:    deps.LookupRepo,
		tickets:    deps.TicketRepo,
		files:      deps.FileRepo,
		reconciler: deps.Reconciler,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		logger:     logger,
	}
}

// TicketCreateInput describes ticket creation payload. Relationship ids are
// pointers so missing fields can be reported by name.
type TicketCreateInput struct {
	ContractID           *int64
	BranchID             *int64
	ZoneID               *int64
	TicketTypeID         *int64
	MainServiceID        *int64
	AssignToTeamLeaderID *int64
	AssignToTechnicianID *int64
	TicketTitle          string
	ProblemDescription   string
	TicketDate           *time.Time
	TicketTimeFrom       *time.Time
	TicketTimeTo         *time.Time
	Tools                []int64
	Source               domain.TicketSource
	FileIDs              []int64
}

// TicketUpdateInput describes a partial update. Nil pointers mean the field
// was not provided.
type TicketUpdateInput struct {
	ContractID           *int64
	BranchID             *int64
	ZoneID               *int64
	TicketTypeID         *int64
	TicketStatusID       *int64
	MainServiceID        *int64
	AssignToTeamLeaderID *int64
	AssignToTechnicianID *int64
	TicketTitle          *string
	ProblemDescription   *string
	ServiceDescription   *string
	TicketDate           *time.Time
	TicketTimeFrom       *time.Time
	TicketTimeTo         *time.Time
	Tools                []int64
	FileIDs              []int64
}

// ProvidedFields lists the payload field names present on the update,
// excluding fileIds (file reconciliation is not gated per role).
func (in *TicketUpdateInput) ProvidedFields() []string {
	var fields []string
	add := func(name string, present bool) {
		if present {
			fields = append(fields, name)
		}
	}
	add(policy.FieldContractID, in.ContractID != nil)
	add(policy.FieldBranchID, in.BranchID != nil)
	add(policy.FieldZoneID, in.ZoneID != nil)
	add(policy.FieldTicketTypeID, in.TicketTypeID != nil)
	add(policy.FieldTicketStatusID, in.TicketStatusID != nil)
	add(policy.FieldMainServiceID, in.MainServiceID != nil)
	add(policy.FieldAssignToTeamLeaderID, in.AssignToTeamLeaderID != nil)
	add(policy.FieldAssignToTechnicianID, in.AssignToTechnicianID != nil)
	add(policy.FieldTicketTitle, in.TicketTitle != nil)
	add(policy.FieldProblemDescription, in.ProblemDescription != nil)
	add(policy.FieldServiceDescription, in.ServiceDescription != nil)
	add(policy.FieldTicketDate, in.TicketDate != nil)
	add(policy.FieldTicketTimeFrom, in.TicketTimeFrom != nil)
	add(policy.FieldTicketTimeTo, in.TicketTimeTo != nil)
	add(policy.FieldTools, in.Tools != nil)
	return fields
}

// CreateTicket validates and persists a new ticket for the acting user.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, []RelocationResult, error) {
	if actor.CompanyID == nil {
		return nil, nil, apperrors.NewForbidden("user is not attached to a company")
	}
	companyID := *actor.CompanyID
	role := actor.Role()

	// Every missing required field is reported at once, not just the first.
	if missing := missingCreateFields(input); len(missing) > 0 {
		return nil, nil, apperrors.NewValidationError("required fields are missing",
			map[string]any{"missingFields": missing})
	}

	if !policy.CanCreateTicket(role) {
		return nil, nil, apperrors.NewForbidden("role is not allowed to create tickets")
	}
	if !policy.TeamLeaderSelfAssignOnly(role, actor.ID, *input.AssignToTeamLeaderID) {
		return nil, nil, apperrors.NewForbidden("team leaders can only assign tickets to themselves")
	}

	if err := s.validateContract(ctx, companyID, *input.ContractID); err != nil {
		return nil, nil, err
	}
	if err := s.validateBranch(ctx, companyID, *input.BranchID); err != nil {
		return nil, nil, err
	}
	if err := s.validateZone(ctx, *input.BranchID, *input.ZoneID); err != nil {
		return nil, nil, err
	}
	if err := s.validateTeamLeader(ctx, companyID, *input.AssignToTeamLeaderID); err != nil {
		return nil, nil, err
	}
	if err := s.validateTechnician(ctx, companyID, *input.AssignToTechnicianID); err != nil {
		return nil, nil, err
	}
	if err := s.validateLookup(ctx, *input.TicketTypeID, domain.LookupTicketType, "Invalid or inactive ticket type"); err != nil {
		return nil, nil, err
	}
	if err := s.validateLookup(ctx, *input.MainServiceID, domain.LookupMainService, "Invalid or inactive main service"); err != nil {
		return nil, nil, err
	}

	defaultStatus, err := s.lookups.GetDefault(ctx, domain.LookupTicketStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Seed-data defect, not a client error.
			return nil, nil, apperrors.NewInternalError("default ticket status lookup is missing", err)
		}
		return nil, nil, apperrors.MapError(err)
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	source := input.Source
	if source == "" {
		source = domain.TicketSourceWeb
	}

	ticket := &domain.Ticket{
		CompanyID:            companyID,
		ContractID:           *input.ContractID,
		BranchID:             *input.BranchID,
		ZoneID:               *input.ZoneID,
		TicketTypeID:         *input.TicketTypeID,
		TicketStatusID:       defaultStatus.ID,
		MainServiceID:        *input.MainServiceID,
		AssignToTeamLeaderID: *input.AssignToTeamLeaderID,
		AssignToTechnicianID: *input.AssignToTechnicianID,
		TicketTitle:          strings.TrimSpace(input.TicketTitle),
		ProblemDescription:   strings.TrimSpace(input.ProblemDescription),
		TicketDate:           *input.TicketDate,
		TicketTimeFrom:       input.TicketTimeFrom,
		TicketTimeTo:         input.TicketTimeTo,
		Tools:                input.Tools,
		Source:               source,
		CreatedBy:            actor.ID,
	}

	if err := s.tickets.Create(ctx, ticket, company.CodePrefix()); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	report := s.reconcileFiles(ctx, actor, ticket, input.FileIDs)
	s.invalidateStatsCache(ctx, companyID)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		CompanyID: companyID,
		Actor:     events.Actor{UserID: actor.ID, Role: role},
		Payload: events.TicketCreatedPayload{
			Code:                 ticket.Code,
			TicketTypeID:         ticket.TicketTypeID,
			AssignToTeamLeaderID: ticket.AssignToTeamLeaderID,
			AssignToTechnicianID: ticket.AssignToTechnicianID,
		},
	})
	return ticket, report, nil
}

// UpdateTicket applies a partial update subject to the acting role's policy.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *domain.User, ticketID int64, input TicketUpdateInput) (*domain.Ticket, []RelocationResult, error) {
	if actor.CompanyID == nil {
		return nil, nil, apperrors.NewForbidden("user is not attached to a company")
	}
	companyID := *actor.CompanyID
	role := actor.Role()

	if role == domain.RoleRestricted {
		return nil, nil, apperrors.NewForbidden("role is not allowed to update tickets")
	}
	if !policy.CanUpdateTicket(role) {
		return nil, nil, apperrors.NewForbidden("role is not allowed to update tickets")
	}

	ticket, err := s.tickets.GetByID(ctx, companyID, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
		}
		return nil, nil, apperrors.MapError(err)
	}

	if role.IsTechnicianLevel() {
		if ticket.AssignToTechnicianID != actor.ID {
			return nil, nil, apperrors.NewForbidden("ticket is not assigned to you")
		}
		if denied := policy.DisallowedUpdateFields(role, input.ProvidedFields()); len(denied) > 0 {
			return nil, nil, apperrors.NewForbidden(
				"role is not allowed to update fields: " + strings.Join(denied, ", "))
		}
	}

	if input.ContractID != nil {
		if err := s.validateContract(ctx, companyID, *input.ContractID); err != nil {
			return nil, nil, err
		}
	}
	if input.BranchID != nil {
		if err := s.validateBranch(ctx, companyID, *input.BranchID); err != nil {
			return nil, nil, err
		}
	}
	// The zone must belong to the effective branch even when only one of the
	// two fields changes.
	if input.BranchID != nil || input.ZoneID != nil {
		branchID := ticket.BranchID
		if input.BranchID != nil {
			branchID = *input.BranchID
		}
		zoneID := ticket.ZoneID
		if input.ZoneID != nil {
			zoneID = *input.ZoneID
		}
		if err := s.validateZone(ctx, branchID, zoneID); err != nil {
			return nil, nil, err
		}
	}
	if input.TicketTypeID != nil {
		if err := s.validateLookup(ctx, *input.TicketTypeID, domain.LookupTicketType, "Invalid or inactive ticket type"); err != nil {
			return nil, nil, err
		}
	}
	if input.TicketStatusID != nil {
		if err := s.validateLookup(ctx, *input.TicketStatusID, domain.LookupTicketStatus, "Invalid or inactive ticket status"); err != nil {
			return nil, nil, err
		}
	}
	if input.MainServiceID != nil {
		if err := s.validateLookup(ctx, *input.MainServiceID, domain.LookupMainService, "Invalid or inactive main service"); err != nil {
			return nil, nil, err
		}
	}
	if input.AssignToTeamLeaderID != nil {
		if !policy.TeamLeaderSelfAssignOnly(role, actor.ID, *input.AssignToTeamLeaderID) {
			return nil, nil, apperrors.NewForbidden("team leaders can only assign tickets to themselves")
		}
		if err := s.validateTeamLeader(ctx, companyID, *input.AssignToTeamLeaderID); err != nil {
			return nil, nil, err
		}
	}
	if input.AssignToTechnicianID != nil {
		if err := s.validateTechnician(ctx, companyID, *input.AssignToTechnicianID); err != nil {
			return nil, nil, err
		}
	}

	oldStatusID := ticket.TicketStatusID
	oldTeamLeaderID := ticket.AssignToTeamLeaderID
	oldTechnicianID := ticket.AssignToTechnicianID

	applyTicketUpdate(ticket, input)
	actorID := actor.ID
	ticket.UpdatedBy = &actorID

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
		}
		return nil, nil, apperrors.MapError(err)
	}

	report := s.reconcileFiles(ctx, actor, ticket, input.FileIDs)
	s.invalidateStatsCache(ctx, companyID)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketUpdated,
		TicketID:  ticket.ID,
		CompanyID: companyID,
		Actor:     events.Actor{UserID: actor.ID, Role: role},
		Payload:   events.TicketUpdatedPayload{UpdatedFields: input.ProvidedFields()},
	})
	if ticket.TicketStatusID != oldStatusID {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventTicketStatusChanged,
			TicketID:  ticket.ID,
			CompanyID: companyID,
			Actor:     events.Actor{UserID: actor.ID, Role: role},
			Payload: events.TicketStatusChangedPayload{
				OldStatusID: oldStatusID,
				NewStatusID: ticket.TicketStatusID,
			},
		})
	}
	if ticket.AssignToTeamLeaderID != oldTeamLeaderID || ticket.AssignToTechnicianID != oldTechnicianID {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventTicketAssigned,
			TicketID:  ticket.ID,
			CompanyID: companyID,
			Actor:     events.Actor{UserID: actor.ID, Role: role},
			Payload: events.TicketAssignedPayload{
				AssignToTeamLeaderID: ticket.AssignToTeamLeaderID,
				AssignToTechnicianID: ticket.AssignToTechnicianID,
			},
		})
	}
	return ticket, report, nil
}

// TicketListResult groups a page of tickets by ticket-type bucket.
type TicketListResult struct {
	All     []domain.Ticket
	Buckets map[string][]domain.Ticket
	Total   int64
	HasMore bool
	Page    int
	Limit   int
}

// ListTickets returns a paginated, bucketed ticket page honoring the
// caller's visibility scope.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, page, limit int) (*TicketListResult, error) {
	if actor.CompanyID == nil {
		return nil, apperrors.NewForbidden("user is not attached to a company")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	scope := policy.VisibilityScope(actor.Role(), *actor.CompanyID, actor.ID)
	filter := repository.TicketFilter{
		CompanyID:            scope.CompanyID,
		AssignedTechnicianID: scope.AssignedTechnicianID,
		Limit:                limit,
		Offset:               (page - 1) * limit,
	}
	tickets, total, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	typeCodes, err := s.ticketTypeCodes(ctx)
	if err != nil {
		return nil, err
	}

	buckets := map[string][]domain.Ticket{
		"corrective": {},
		"preventive": {},
		"emergency":  {},
	}
	for _, ticket := range tickets {
		switch typeCodes[ticket.TicketTypeID] {
		case domain.TicketTypeCodeCorrective:
			buckets["corrective"] = append(buckets["corrective"], ticket)
		case domain.TicketTypeCodePreventive:
			buckets["preventive"] = append(buckets["preventive"], ticket)
		case domain.TicketTypeCodeEmergency:
			buckets["emergency"] = append(buckets["emergency"], ticket)
		}
	}

	return &TicketListResult{
		All:     tickets,
		Buckets: buckets,
		Total:   total,
		HasMore: int64(page*limit) < total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// TicketDetail is a ticket with its resolved relations.
type TicketDetail struct {
	Ticket     *domain.Ticket
	Contract   *domain.Contract
	Branch     *domain.Branch
	Zone       *domain.Zone
	TeamLeader *domain.User
	Technician *domain.User
	Creator    *domain.User
	Updater    *domain.User
	Status     *domain.Lookup
	Type       *domain.Lookup
	Service    *domain.Lookup
	ToolNames  []string
	Files      []domain.StoredFile
}

// GetTicket loads a single ticket with nested relations, enforcing the
// caller's visibility scope.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID int64) (*TicketDetail, error) {
	if actor.CompanyID == nil {
		return nil, apperrors.NewForbidden("user is not attached to a company")
	}
	ticket, err := s.tickets.GetByID(ctx, *actor.CompanyID, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	role := actor.Role()
	if role.IsTechnicianLevel() && ticket.AssignToTechnicianID != actor.ID {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
	}

	detail := &TicketDetail{Ticket: ticket}
	detail.Contract, _ = s.contracts.GetCompanyContract(ctx, ticket.CompanyID, ticket.ContractID)
	detail.Branch, _ = s.branches.GetCompanyBranch(ctx, ticket.CompanyID, ticket.BranchID)
	detail.Zone, _ = s.zones.GetByID(ctx, ticket.ZoneID)
	detail.TeamLeader, _ = s.users.GetByID(ctx, ticket.AssignToTeamLeaderID)
	detail.Technician, _ = s.users.GetByID(ctx, ticket.AssignToTechnicianID)
	detail.Creator, _ = s.users.GetByID(ctx, ticket.CreatedBy)
	if ticket.UpdatedBy != nil {
		detail.Updater, _ = s.users.GetByID(ctx, *ticket.UpdatedBy)
	}
	detail.Status, _ = s.lookups.GetActive(ctx, ticket.TicketStatusID, domain.LookupTicketStatus)
	detail.Type, _ = s.lookups.GetActive(ctx, ticket.TicketTypeID, domain.LookupTicketType)
	detail.Service, _ = s.lookups.GetActive(ctx, ticket.MainServiceID, domain.LookupMainService)

	if len(ticket.Tools) > 0 {
		tools, err := s.lookups.GetByIDs(ctx, ticket.Tools)
		if err == nil {
			for _, tool := range tools {
				detail.ToolNames = append(detail.ToolNames, tool.Name)
			}
		}
	}
	files, err := s.files.ListByTicket(ctx, ticket.ID)
	if err == nil {
		detail.Files = files
	}
	return detail, nil
}

// TicketStatistics carries per-type and per-status counts, keyed by lookup name.
type TicketStatistics struct {
	ByType   map[string]int64 `json:"byType"`
	ByStatus map[string]int64 `json:"byStatus"`
	Total    int64            `json:"total"`
}

// Statistics returns per-type and per-status ticket counts for the caller's
// company, served from the Redis cache when fresh.
func (s *TicketService) Statistics(ctx context.Context, actor *domain.User) (*TicketStatistics, error) {
	if actor.CompanyID == nil {
		return nil, apperrors.NewForbidden("user is not attached to a company")
	}
	companyID := *actor.CompanyID

	if cached := s.cachedStats(ctx, companyID); cached != nil {
		return cached, nil
	}

	byTypeID, err := s.tickets.CountByType(ctx, companyID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byStatusID, err := s.tickets.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &TicketStatistics{
		ByType:   map[string]int64{},
		ByStatus: map[string]int64{},
	}
	typeNames, err := s.lookupNames(ctx, domain.LookupTicketType)
	if err != nil {
		return nil, err
	}
	statusNames, err := s.lookupNames(ctx, domain.LookupTicketStatus)
	if err != nil {
		return nil, err
	}
	for id, count := range byTypeID {
		stats.ByType[nameOrID(typeNames, id)] = count
		stats.Total += count
	}
	for id, count := range byStatusID {
		stats.ByStatus[nameOrID(statusNames, id)] = count
	}

	s.storeStatsCache(ctx, companyID, stats)
	return stats, nil
}

func missingCreateFields(input TicketCreateInput) []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check(policy.FieldContractID, input.ContractID != nil)
	check(policy.FieldBranchID, input.BranchID != nil)
	check(policy.FieldZoneID, input.ZoneID != nil)
	check(policy.FieldTicketTypeID, input.TicketTypeID != nil)
	check(policy.FieldMainServiceID, input.MainServiceID != nil)
	check(policy.FieldAssignToTeamLeaderID, input.AssignToTeamLeaderID != nil)
	check(policy.FieldAssignToTechnicianID, input.AssignToTechnicianID != nil)
	check(policy.FieldTicketTitle, strings.TrimSpace(input.TicketTitle) != "")
	check(policy.FieldTicketDate, input.TicketDate != nil)
	return missing
}

func applyTicketUpdate(ticket *domain.Ticket, input TicketUpdateInput) {
	if input.ContractID != nil {
		ticket.ContractID = *input.ContractID
	}
	if input.BranchID != nil {
		ticket.BranchID = *input.BranchID
	}
	if input.ZoneID != nil {
		ticket.ZoneID = *input.ZoneID
	}
	if input.TicketTypeID != nil {
		ticket.TicketTypeID = *input.TicketTypeID
	}
	if input.TicketStatusID != nil {
		ticket.TicketStatusID = *input.TicketStatusID
	}
	if input.MainServiceID != nil {
		ticket.MainServiceID = *input.MainServiceID
	}
	if input.AssignToTeamLeaderID != nil {
		ticket.AssignToTeamLeaderID = *input.AssignToTeamLeaderID
	}
	if input.AssignToTechnicianID != nil {
		ticket.AssignToTechnicianID = *input.AssignToTechnicianID
	}
	if input.TicketTitle != nil {
		ticket.TicketTitle = strings.TrimSpace(*input.TicketTitle)
	}
	if input.ProblemDescription != nil {
		ticket.ProblemDescription = strings.TrimSpace(*input.ProblemDescription)
	}
	if input.ServiceDescription != nil {
		ticket.ServiceDescription = strings.TrimSpace(*input.ServiceDescription)
	}
	if input.TicketDate != nil {
		ticket.TicketDate = *input.TicketDate
	}
	if input.TicketTimeFrom != nil {
		ticket.TicketTimeFrom = input.TicketTimeFrom
	}
	if input.TicketTimeTo != nil {
		ticket.TicketTimeTo = input.TicketTimeTo
	}
	if input.Tools != nil {
		ticket.Tools = input.Tools
	}
}

func (s *TicketService) validateContract(ctx context.Context, companyID, contractID int64) error {
	if _, err := s.contracts.GetCompanyContract(ctx, companyID, contractID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Invalid contract or contract does not belong to your company", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) validateBranch(ctx context.Context, companyID, branchID int64) error {
	if _, err := s.branches.GetCompanyBranch(ctx, companyID, branchID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Invalid branch or branch does not belong to your company", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) validateZone(ctx context.Context, branchID, zoneID int64) error {
	zone, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Invalid zone or zone does not belong to the selected branch", nil)
		}
		return apperrors.MapError(err)
	}
	if zone.BranchID != branchID {
		return apperrors.NewValidationError("Invalid zone or zone does not belong to the selected branch", nil)
	}
	return nil
}

func (s *TicketService) validateTeamLeader(ctx context.Context, companyID, teamLeaderID int64) error {
	member, err := s.users.GetCompanyMember(ctx, companyID, teamLeaderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Invalid team leader or team leader does not belong to your company", nil)
		}
		return apperrors.MapError(err)
	}
	if member.Role() != domain.RoleTeamLeader {
		return apperrors.NewValidationError("Invalid team leader or team leader does not belong to your company", nil)
	}
	return nil
}

func (s *TicketService) validateTechnician(ctx context.Context, companyID, technicianID int64) error {
	member, err := s.users.GetCompanyMember(ctx, companyID, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Invalid technician or technician does not belong to your company", nil)
		}
		return apperrors.MapError(err)
	}
	role := member.Role()
	if role == domain.RoleAdmin || role == domain.RoleTeamLeader {
		return apperrors.NewValidationError("Invalid technician or technician does not belong to your company", nil)
	}
	return nil
}

func (s *TicketService) validateLookup(ctx context.Context, id int64, category domain.LookupCategory, message string) error {
	if _, err := s.lookups.GetActive(ctx, id, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError(message, nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) ticketTypeCodes(ctx context.Context) (map[int64]string, error) {
	types, err := s.lookups.ListByCategory(ctx, domain.LookupTicketType)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	codes := make(map[int64]string, len(types))
	for _, t := range types {
		codes[t.ID] = t.Code
	}
	return codes, nil
}

func (s *TicketService) lookupNames(ctx context.Context, category domain.LookupCategory) (map[int64]string, error) {
	lookups, err := s.lookups.ListByCategory(ctx, category)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	names := make(map[int64]string, len(lookups))
	for _, l := range lookups {
		names[l.ID] = l.Name
	}
	return names, nil
}

func nameOrID(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("lookup_%d", id)
}

func (s *TicketService) reconcileFiles(ctx context.Context, actor *domain.User, ticket *domain.Ticket, fileIDs []int64) []RelocationResult {
	if s.reconciler == nil || len(fileIDs) == 0 {
		return nil
	}
	report := s.reconciler.ReconcileTicketFiles(ctx, ticket.ID, fileIDs)

	relocated, skipped := 0, 0
	for _, result := range report {
		switch result.Outcome {
		case RelocationSkipped:
			skipped++
		case RelocationMoved:
			relocated++
		}
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketFilesReconciled,
		TicketID:  ticket.ID,
		CompanyID: ticket.CompanyID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role()},
		Payload:   events.TicketFilesReconciledPayload{Relocated: relocated, Skipped: skipped},
	})
	return report
}

const statsCachePrefix = "ticket_stats:"

func (s *TicketService) cachedStats(ctx context.Context, companyID int64) *TicketStatistics {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, fmt.Sprintf("%s%d", statsCachePrefix, companyID)).Bytes()
	if err != nil {
		return nil
	}
	var stats TicketStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *TicketService) storeStatsCache(ctx context.Context, companyID int64, stats *TicketStatistics) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	ttl := s.cacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.cache.Set(ctx, fmt.Sprintf("%s%d", statsCachePrefix, companyID), raw, ttl).Err(); err != nil {
		s.logger.Debug("stats cache store failed", zap.Error(err))
	}
}

func (s *TicketService) invalidateStatsCache(ctx context.Context, companyID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, fmt.Sprintf("%s%d", statsCachePrefix, companyID)).Err(); err != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
