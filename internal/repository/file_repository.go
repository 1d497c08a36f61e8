package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

const fileColumns = `id, file_name, path, size_bytes, mime_type, ticket_id, is_deleted, created_at, updated_at`

// FileRepository persists uploaded file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *domain.StoredFile) error
	GetByID(ctx context.Context, id int64) (*domain.StoredFile, error)
	UpdateLocation(ctx context.Context, id int64, path string, ticketID int64) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.StoredFile, error)
}

type fileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository constructs repository.
func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepository{pool: pool}
}

func (r *fileRepository) Create(ctx context.Context, file *domain.StoredFile) error {
	const query = `
        INSERT INTO files (file_name, path, size_bytes, mime_type, ticket_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		file.FileName,
		file.Path,
		file.SizeBytes,
		file.MimeType,
		file.TicketID,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
}

func (r *fileRepository) GetByID(ctx context.Context, id int64) (*domain.StoredFile, error) {
	const query = `SELECT ` + fileColumns + ` FROM files WHERE id=$1 AND is_deleted=FALSE`
	var file domain.StoredFile
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FileName,
		&file.Path,
		&file.SizeBytes,
		&file.MimeType,
		&file.TicketID,
		&file.IsDeleted,
		&file.CreatedAt,
		&file.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) UpdateLocation(ctx context.Context, id int64, path string, ticketID int64) error {
	const query = `
        UPDATE files SET path=$1, ticket_id=$2, updated_at=NOW()
        WHERE id=$3 AND is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query, path, ticketID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fileRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.StoredFile, error) {
	const query = `SELECT ` + fileColumns + `
        FROM files WHERE ticket_id=$1 AND is_deleted=FALSE ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StoredFile
	for rows.Next() {
		var file domain.StoredFile
		if err := rows.Scan(
			&file.ID,
			&file.FileName,
			&file.Path,
			&file.SizeBytes,
			&file.MimeType,
			&file.TicketID,
			&file.IsDeleted,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, file)
	}
	return result, rows.Err()
}
