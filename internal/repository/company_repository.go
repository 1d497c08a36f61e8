package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CompanyRepository defines persistence access for tenant companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	const query = `
        SELECT id, title, is_active, is_deleted, created_at, updated_at
        FROM companies WHERE id=$1 AND is_deleted=FALSE`

	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Title,
		&company.IsActive,
		&company.IsDeleted,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}
