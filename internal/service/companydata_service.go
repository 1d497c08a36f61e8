package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// CompanyDataService serves company-scoped reference reads.
type CompanyDataService struct {
	contracts repository.ContractRepository
	branches  repository.BranchRepository
	zones     repository.ZoneRepository
	lookups   repository.LookupRepository
}

// NewCompanyDataService constructs the service.
func NewCompanyDataService(
	contracts repository.ContractRepository,
	branches repository.BranchRepository,
	zones repository.ZoneRepository,
	lookups repository.LookupRepository,
) *CompanyDataService {
	return &CompanyDataService{
		contracts: contracts,
		branches:  branches,
		zones:     zones,
		lookups:   lookups,
	}
}

// ListContracts returns the company's contracts.
func (s *CompanyDataService) ListContracts(ctx context.Context, actor *domain.User) ([]domain.Contract, error) {
	companyID, err := requireCompany(actor)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return contracts, nil
}

// ListBranches returns the company's branches.
func (s *CompanyDataService) ListBranches(ctx context.Context, actor *domain.User) ([]domain.Branch, error) {
	companyID, err := requireCompany(actor)
	if err != nil {
		return nil, err
	}
	branches, err := s.branches.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return branches, nil
}

// ListZones returns the zones of a branch after checking the branch belongs
// to the caller's company.
func (s *CompanyDataService) ListZones(ctx context.Context, actor *domain.User, branchID int64) ([]domain.Zone, error) {
	companyID, err := requireCompany(actor)
	if err != nil {
		return nil, err
	}
	if _, err := s.branches.GetCompanyBranch(ctx, companyID, branchID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("branch", map[string]any{"branchId": branchID})
		}
		return nil, apperrors.MapError(err)
	}
	zones, err := s.zones.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return zones, nil
}

// ListMainServices returns the active main-service lookups.
func (s *CompanyDataService) ListMainServices(ctx context.Context) ([]domain.Lookup, error) {
	services, err := s.lookups.ListByCategory(ctx, domain.LookupMainService)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// ListSubServices returns the active children of a main service.
func (s *CompanyDataService) ListSubServices(ctx context.Context, mainServiceID int64) ([]domain.Lookup, error) {
	if _, err := s.lookups.GetActive(ctx, mainServiceID, domain.LookupMainService); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("main service", map[string]any{"mainServiceId": mainServiceID})
		}
		return nil, apperrors.MapError(err)
	}
	subServices, err := s.lookups.ListChildren(ctx, mainServiceID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subServices, nil
}

func requireCompany(actor *domain.User) (int64, error) {
	if actor.CompanyID == nil {
		return 0, apperrors.NewForbidden("user is not attached to a company")
	}
	return *actor.CompanyID, nil
}
