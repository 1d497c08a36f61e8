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

// CompanyDataHandler serves company-scoped reference reads used by ticket forms.
type CompanyDataHandler struct {
	companyData *service.CompanyDataService
}

// NewCompanyDataHandler constructs the handler.
func NewCompanyDataHandler(companyData *service.CompanyDataService) *CompanyDataHandler {
	return &CompanyDataHandler{companyData: companyData}
}

// Contracts handles GET /company-data/contracts.
func (h *CompanyDataHandler) Contracts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contracts, err := h.companyData.ListContracts(c.Context(), principal.User)
	if err != nil {
		return err
	}

	resp := make([]dto.ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		resp = append(resp, dto.ContractResponse{
			ID:        contract.ID,
			Reference: contract.Reference,
			Title:     contract.Title,
		})
	}
	return httpapi.Success(c, fiber.StatusOK, "contracts retrieved", resp)
}

// Branches handles GET /company-data/branches.
func (h *CompanyDataHandler) Branches(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	branches, err := h.companyData.ListBranches(c.Context(), principal.User)
	if err != nil {
		return err
	}

	resp := make([]dto.BranchResponse, 0, len(branches))
	for _, branch := range branches {
		resp = append(resp, dto.BranchResponse{ID: branch.ID, Title: branch.Title})
	}
	return httpapi.Success(c, fiber.StatusOK, "branches retrieved", resp)
}

// Zones handles GET /company-data/branches/:branchId/zones.
func (h *CompanyDataHandler) Zones(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	branchID, err := c.ParamsInt("branchId")
	if err != nil || branchID <= 0 {
		return apperrors.NewValidationError("invalid branch id", nil)
	}

	zones, err := h.companyData.ListZones(c.Context(), principal.User, int64(branchID))
	if err != nil {
		return err
	}

	resp := make([]dto.ZoneResponse, 0, len(zones))
	for _, zone := range zones {
		resp = append(resp, dto.ZoneResponse{ID: zone.ID, BranchID: zone.BranchID, Title: zone.Title})
	}
	return httpapi.Success(c, fiber.StatusOK, "zones retrieved", resp)
}

// MainServices handles GET /company-data/main-services.
func (h *CompanyDataHandler) MainServices(c *fiber.Ctx) error {
	services, err := h.companyData.ListMainServices(c.Context())
	if err != nil {
		return err
	}
	return httpapi.Success(c, fiber.StatusOK, "main services retrieved", toLookupResponses(services))
}

// SubServices handles GET /company-data/main-services/:mainServiceId/sub-services.
func (h *CompanyDataHandler) SubServices(c *fiber.Ctx) error {
	mainServiceID, err := c.ParamsInt("mainServiceId")
	if err != nil || mainServiceID <= 0 {
		return apperrors.NewValidationError("invalid main service id", nil)
	}

	subServices, err := h.companyData.ListSubServices(c.Context(), int64(mainServiceID))
	if err != nil {
		return err
	}
	return httpapi.Success(c, fiber.StatusOK, "sub services retrieved", toLookupResponses(subServices))
}

func toLookupResponses(lookups []domain.Lookup) []dto.LookupResponse {
	resp := make([]dto.LookupResponse, 0, len(lookups))
	for _, lookup := range lookups {
		resp = append(resp, dto.LookupResponse{
			ID:         lookup.ID,
			Name:       lookup.Name,
			NameArabic: lookup.NameArabic,
			Code:       lookup.Code,
			ParentID:   lookup.ParentLookupID,
		})
	}
	return resp
}
