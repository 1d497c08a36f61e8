package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// ContractRepository manages contract persistence.
type ContractRepository interface {
	GetCompanyContract(ctx context.Context, companyID, contractID int64) (*domain.Contract, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Contract, error)
}

type contractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository builds the repository.
func NewContractRepository(pool *pgxpool.Pool) ContractRepository {
	return &contractRepository{pool: pool}
}

func (r *contractRepository) GetCompanyContract(ctx context.Context, companyID, contractID int64) (*domain.Contract, error) {
	const query = `
        SELECT id, reference, title, company_id, is_deleted, created_at, updated_at
        FROM contracts WHERE id=$1 AND company_id=$2 AND is_deleted=FALSE`

	var contract domain.Contract
	if err := r.pool.QueryRow(ctx, query, contractID, companyID).Scan(
		&contract.ID,
		&contract.Reference,
		&contract.Title,
		&contract.CompanyID,
		&contract.IsDeleted,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Contract, error) {
	const query = `
        SELECT id, reference, title, company_id, is_deleted, created_at, updated_at
        FROM contracts WHERE company_id=$1 AND is_deleted=FALSE ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contract
	for rows.Next() {
		var contract domain.Contract
		if err := rows.Scan(
			&contract.ID,
			&contract.Reference,
			&contract.Title,
			&contract.CompanyID,
			&contract.IsDeleted,
			&contract.CreatedAt,
			&contract.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contract)
	}
	return result, rows.Err()
}
