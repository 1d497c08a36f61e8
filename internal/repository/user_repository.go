package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

const userColumns = `id, full_name, email, password_hash, company_id, user_role_id, is_active, is_deleted, created_at, updated_at`

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetCompanyMember(ctx context.Context, companyID, userID int64) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (full_name, email, password_hash, company_id, user_role_id, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.CompanyID,
		user.UserRoleID,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET full_name=$1, email=$2, password_hash=$3, company_id=$4,
            user_role_id=$5, is_active=$6, is_deleted=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.CompanyID,
		user.UserRoleID,
		user.IsActive,
		user.IsDeleted,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, email)
}

// GetCompanyMember loads an active user belonging to the given company.
func (r *userRepository) GetCompanyMember(ctx context.Context, companyID, userID int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + `
        FROM users WHERE id=$1 AND company_id=$2 AND is_active=TRUE AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, userID, companyID)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.CompanyID,
		&user.UserRoleID,
		&user.IsActive,
		&user.IsDeleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
