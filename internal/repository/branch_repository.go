package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// BranchRepository manages branch persistence.
type BranchRepository interface {
	GetCompanyBranch(ctx context.Context, companyID, branchID int64) (*domain.Branch, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Branch, error)
}

type branchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository builds the repository.
func NewBranchRepository(pool *pgxpool.Pool) BranchRepository {
	return &branchRepository{pool: pool}
}

func (r *branchRepository) GetCompanyBranch(ctx context.Context, companyID, branchID int64) (*domain.Branch, error) {
	const query = `
        SELECT id, title, company_id, is_deleted, created_at, updated_at
        FROM branches WHERE id=$1 AND company_id=$2 AND is_deleted=FALSE`

	var branch domain.Branch
	if err := r.pool.QueryRow(ctx, query, branchID, companyID).Scan(
		&branch.ID,
		&branch.Title,
		&branch.CompanyID,
		&branch.IsDeleted,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Branch, error) {
	const query = `
        SELECT id, title, company_id, is_deleted, created_at, updated_at
        FROM branches WHERE company_id=$1 AND is_deleted=FALSE ORDER BY title ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBranches(rows)
}

func scanBranches(rows pgx.Rows) ([]domain.Branch, error) {
	var result []domain.Branch
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(
			&branch.ID,
			&branch.Title,
			&branch.CompanyID,
			&branch.IsDeleted,
			&branch.CreatedAt,
			&branch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, branch)
	}
	return result, rows.Err()
}
