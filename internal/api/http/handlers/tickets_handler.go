package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	httpapi "github.com/spec-kit/maintenance-service/internal/api/http/respond"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketsHandler serves the ticket lifecycle endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	files   *service.FileService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *service.TicketService, files *service.FileService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, files: files}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	ticket, report, err := h.tickets.CreateTicket(c.Context(), principal.User, service.TicketCreateInput{
		ContractID:           req.ContractID,
		BranchID:             req.BranchID,
		ZoneID:               req.ZoneID,
		TicketTypeID:         req.TicketTypeID,
		MainServiceID:        req.MainServiceID,
		AssignToTeamLeaderID: req.AssignToTeamLeaderID,
		AssignToTechnicianID: req.AssignToTechnicianID,
		TicketTitle:          req.TicketTitle,
		ProblemDescription:   req.ProblemDescription,
		TicketDate:           req.TicketDate,
		TicketTimeFrom:       req.TicketTimeFrom,
		TicketTimeTo:         req.TicketTimeTo,
		Tools:                req.Tools,
		Source:               req.Source,
		FileIDs:              req.FileIDs,
	})
	if err != nil {
		return err
	}

	return httpapi.Success(c, fiber.StatusCreated, "ticket created", fiber.Map{
		"ticket": toTicketSummary(ticket),
		"files":  toRelocationReport(report),
	})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID <= 0 {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	ticket, report, err := h.tickets.UpdateTicket(c.Context(), principal.User, int64(ticketID), service.TicketUpdateInput{
		ContractID:           req.ContractID,
		BranchID:             req.BranchID,
		ZoneID:               req.ZoneID,
		TicketTypeID:         req.TicketTypeID,
		TicketStatusID:       req.TicketStatusID,
		MainServiceID:        req.MainServiceID,
		AssignToTeamLeaderID: req.AssignToTeamLeaderID,
		AssignToTechnicianID: req.AssignToTechnicianID,
		TicketTitle:          req.TicketTitle,
		ProblemDescription:   req.ProblemDescription,
		ServiceDescription:   req.ServiceDescription,
		TicketDate:           req.TicketDate,
		TicketTimeFrom:       req.TicketTimeFrom,
		TicketTimeTo:         req.TicketTimeTo,
		Tools:                req.Tools,
		FileIDs:              req.FileIDs,
	})
	if err != nil {
		return err
	}

	return httpapi.Success(c, fiber.StatusOK, "ticket updated", fiber.Map{
		"ticket": toTicketSummary(ticket),
		"files":  toRelocationReport(report),
	})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := h.tickets.ListTickets(c.Context(), principal.User, page, limit)
	if err != nil {
		return err
	}

	resp := dto.TicketListResponse{
		All:        toTicketSummaries(result.All),
		Corrective: toTicketSummaries(result.Buckets["corrective"]),
		Preventive: toTicketSummaries(result.Buckets["preventive"]),
		Emergency:  toTicketSummaries(result.Buckets["emergency"]),
		Pagination: dto.Pagination{
			Page:    result.Page,
			Limit:   result.Limit,
			Total:   result.Total,
			HasMore: result.HasMore,
		},
	}
	return httpapi.Success(c, fiber.StatusOK, "tickets retrieved", resp)
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID <= 0 {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	detail, err := h.tickets.GetTicket(c.Context(), principal.User, int64(ticketID))
	if err != nil {
		return err
	}
	return httpapi.Success(c, fiber.StatusOK, "ticket retrieved", h.toTicketDetail(detail))
}

// Statistics handles GET /tickets/statistics.
func (h *TicketsHandler) Statistics(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.tickets.Statistics(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return httpapi.Success(c, fiber.StatusOK, "statistics retrieved", stats)
}

func toTicketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:                   ticket.ID,
		Code:                 ticket.Code,
		CompanyID:            ticket.CompanyID,
		ContractID:           ticket.ContractID,
		BranchID:             ticket.BranchID,
		ZoneID:               ticket.ZoneID,
		TicketTypeID:         ticket.TicketTypeID,
		TicketStatusID:       ticket.TicketStatusID,
		MainServiceID:        ticket.MainServiceID,
		AssignToTeamLeaderID: ticket.AssignToTeamLeaderID,
		AssignToTechnicianID: ticket.AssignToTechnicianID,
		TicketTitle:          ticket.TicketTitle,
		TicketDate:           ticket.TicketDate,
		Source:               ticket.Source,
		CreatedAt:            ticket.CreatedAt,
		UpdatedAt:            ticket.UpdatedAt,
	}
}

func toTicketSummaries(tickets []domain.Ticket) []dto.TicketSummary {
	summaries := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		summaries = append(summaries, toTicketSummary(&tickets[i]))
	}
	return summaries
}

func toRelocationReport(report []service.RelocationResult) []dto.RelocationReportEntry {
	entries := make([]dto.RelocationReportEntry, 0, len(report))
	for _, result := range report {
		entries = append(entries, dto.RelocationReportEntry{
			FileID:  result.FileID,
			Outcome: string(result.Outcome),
			Path:    result.Path,
			Reason:  result.Reason,
		})
	}
	return entries
}

func (h *TicketsHandler) toTicketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	resp := dto.TicketDetailResponse{
		TicketSummary:      toTicketSummary(detail.Ticket),
		ProblemDescription: detail.Ticket.ProblemDescription,
		ServiceDescription: detail.Ticket.ServiceDescription,
		TicketTimeFrom:     detail.Ticket.TicketTimeFrom,
		TicketTimeTo:       detail.Ticket.TicketTimeTo,
		Tools:              detail.ToolNames,
	}
	if detail.Contract != nil {
		resp.Contract = &dto.RelatedLookup{ID: detail.Contract.ID, Name: detail.Contract.Title, Code: detail.Contract.Reference}
	}
	if detail.Branch != nil {
		resp.Branch = &dto.RelatedLookup{ID: detail.Branch.ID, Name: detail.Branch.Title}
	}
	if detail.Zone != nil {
		resp.Zone = &dto.RelatedLookup{ID: detail.Zone.ID, Name: detail.Zone.Title}
	}
	if detail.Type != nil {
		resp.TicketType = &dto.RelatedLookup{ID: detail.Type.ID, Name: detail.Type.Name, Code: detail.Type.Code}
	}
	if detail.Status != nil {
		resp.TicketStatus = &dto.RelatedLookup{ID: detail.Status.ID, Name: detail.Status.Name, Code: detail.Status.Code}
	}
	if detail.Service != nil {
		resp.MainService = &dto.RelatedLookup{ID: detail.Service.ID, Name: detail.Service.Name, Code: detail.Service.Code}
	}
	if detail.TeamLeader != nil {
		resp.TeamLeader = &dto.RelatedUser{ID: detail.TeamLeader.ID, FullName: detail.TeamLeader.FullName}
	}
	if detail.Technician != nil {
		resp.Technician = &dto.RelatedUser{ID: detail.Technician.ID, FullName: detail.Technician.FullName}
	}
	if detail.Creator != nil {
		resp.CreatedByUser = &dto.RelatedUser{ID: detail.Creator.ID, FullName: detail.Creator.FullName}
	}
	if detail.Updater != nil {
		resp.UpdatedByUser = &dto.RelatedUser{ID: detail.Updater.ID, FullName: detail.Updater.FullName}
	}
	resp.Files = make([]dto.TicketFileResponse, 0, len(detail.Files))
	for _, file := range detail.Files {
		resp.Files = append(resp.Files, dto.TicketFileResponse{
			ID:        file.ID,
			FileName:  file.FileName,
			Path:      h.files.PublicPath(&file),
			SizeBytes: file.SizeBytes,
			MimeType:  file.MimeType,
		})
	}
	return resp
}
