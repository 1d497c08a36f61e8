package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// ZoneRepository manages zone persistence.
type ZoneRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
	ListByBranch(ctx context.Context, branchID int64) ([]domain.Zone, error)
}

type zoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository builds the repository.
func NewZoneRepository(pool *pgxpool.Pool) ZoneRepository {
	return &zoneRepository{pool: pool}
}

func (r *zoneRepository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	const query = `
        SELECT id, title, branch_id, is_deleted, created_at, updated_at
        FROM zones WHERE id=$1 AND is_deleted=FALSE`

	var zone domain.Zone
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&zone.ID,
		&zone.Title,
		&zone.BranchID,
		&zone.IsDeleted,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) ListByBranch(ctx context.Context, branchID int64) ([]domain.Zone, error) {
	const query = `
        SELECT id, title, branch_id, is_deleted, created_at, updated_at
        FROM zones WHERE branch_id=$1 AND is_deleted=FALSE ORDER BY title ASC`

	rows, err := r.pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Zone
	for rows.Next() {
		var zone domain.Zone
		if err := rows.Scan(
			&zone.ID,
			&zone.Title,
			&zone.BranchID,
			&zone.IsDeleted,
			&zone.CreatedAt,
			&zone.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, zone)
	}
	return result, rows.Err()
}
