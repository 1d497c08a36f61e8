package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

const lookupColumns = `id, category, name, name_arabic, code, is_active, is_default, parent_lookup_id, created_at, updated_at`

// LookupRepository reads the generic reference-data table.
type LookupRepository interface {
	GetActive(ctx context.Context, id int64, category domain.LookupCategory) (*domain.Lookup, error)
	GetDefault(ctx context.Context, category domain.LookupCategory) (*domain.Lookup, error)
	ListByCategory(ctx context.Context, category domain.LookupCategory) ([]domain.Lookup, error)
	ListChildren(ctx context.Context, parentID int64) ([]domain.Lookup, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Lookup, error)
}

type lookupRepository struct {
	pool *pgxpool.Pool
}

// NewLookupRepository builds the repository.
func NewLookupRepository(pool *pgxpool.Pool) LookupRepository {
	return &lookupRepository{pool: pool}
}

func (r *lookupRepository) GetActive(ctx context.Context, id int64, category domain.LookupCategory) (*domain.Lookup, error) {
	const query = `SELECT ` + lookupColumns + `
        FROM lookups WHERE id=$1 AND category=$2 AND is_active=TRUE`
	return r.fetchSingle(ctx, query, id, category)
}

func (r *lookupRepository) GetDefault(ctx context.Context, category domain.LookupCategory) (*domain.Lookup, error) {
	const query = `SELECT ` + lookupColumns + `
        FROM lookups WHERE category=$1 AND is_default=TRUE AND is_active=TRUE`
	return r.fetchSingle(ctx, query, category)
}

func (r *lookupRepository) ListByCategory(ctx context.Context, category domain.LookupCategory) ([]domain.Lookup, error) {
	const query = `SELECT ` + lookupColumns + `
        FROM lookups WHERE category=$1 AND is_active=TRUE ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLookups(rows)
}

func (r *lookupRepository) ListChildren(ctx context.Context, parentID int64) ([]domain.Lookup, error) {
	const query = `SELECT ` + lookupColumns + `
        FROM lookups WHERE parent_lookup_id=$1 AND is_active=TRUE ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLookups(rows)
}

func (r *lookupRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Lookup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + lookupColumns + ` FROM lookups WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLookups(rows)
}

func (r *lookupRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Lookup, error) {
	var lookup domain.Lookup
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&lookup.ID,
		&lookup.Category,
		&lookup.Name,
		&lookup.NameArabic,
		&lookup.Code,
		&lookup.IsActive,
		&lookup.IsDefault,
		&lookup.ParentLookupID,
		&lookup.CreatedAt,
		&lookup.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lookup, nil
}

func scanLookups(rows pgx.Rows) ([]domain.Lookup, error) {
	var result []domain.Lookup
	for rows.Next() {
		var lookup domain.Lookup
		if err := rows.Scan(
			&lookup.ID,
			&lookup.Category,
			&lookup.Name,
			&lookup.NameArabic,
			&lookup.Code,
			&lookup.IsActive,
			&lookup.IsDefault,
			&lookup.ParentLookupID,
			&lookup.CreatedAt,
			&lookup.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lookup)
	}
	return result, rows.Err()
}
