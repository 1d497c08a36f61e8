package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

const ticketColumns = `id, code, company_id, contract_id, branch_id, zone_id, ticket_type_id,
               ticket_status_id, main_service_id, assign_to_team_leader_id, assign_to_technician_id,
               ticket_title, problem_description, service_description, ticket_date,
               ticket_time_from, ticket_time_to, tools, source, created_by, updated_by,
               is_deleted, created_at, updated_at`

// TicketFilter captures listing parameters. CompanyID is mandatory; the
// technician pointer narrows visibility to own assignments.
type TicketFilter struct {
	CompanyID            int64
	AssignedTechnicianID *int64
	TicketTypeID         *int64
	TicketStatusID       *int64
	Limit                int
	Offset               int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	// Create inserts the ticket and stamps its human-readable code
	// "{prefix}-TKT-{id}" in the same transaction, so a ticket is never
	// visible with a placeholder code.
	Create(ctx context.Context, ticket *domain.Ticket, codePrefix string) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, companyID, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int64, error)
	CountByType(ctx context.Context, companyID int64) (map[int64]int64, error)
	CountByStatus(ctx context.Context, companyID int64) (map[int64]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket, codePrefix string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO tickets (code, company_id, contract_id, branch_id, zone_id, ticket_type_id,
            ticket_status_id, main_service_id, assign_to_team_leader_id, assign_to_technician_id,
            ticket_title, problem_description, service_description, ticket_date,
            ticket_time_from, ticket_time_to, tools, source, created_by)
        VALUES ('', $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		ticket.CompanyID,
		ticket.ContractID,
		ticket.BranchID,
		ticket.ZoneID,
		ticket.TicketTypeID,
		ticket.TicketStatusID,
		ticket.MainServiceID,
		ticket.AssignToTeamLeaderID,
		ticket.AssignToTechnicianID,
		ticket.TicketTitle,
		ticket.ProblemDescription,
		ticket.ServiceDescription,
		ticket.TicketDate,
		ticket.TicketTimeFrom,
		ticket.TicketTimeTo,
		ticket.Tools,
		ticket.Source,
		ticket.CreatedBy,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	ticket.Code = fmt.Sprintf("%s-TKT-%d", codePrefix, ticket.ID)
	if _, err := tx.Exec(ctx, `UPDATE tickets SET code=$1 WHERE id=$2`, ticket.Code, ticket.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET contract_id=$1, branch_id=$2, zone_id=$3, ticket_type_id=$4,
            ticket_status_id=$5, main_service_id=$6, assign_to_team_leader_id=$7,
            assign_to_technician_id=$8, ticket_title=$9, problem_description=$10,
            service_description=$11, ticket_date=$12, ticket_time_from=$13, ticket_time_to=$14,
            tools=$15, updated_by=$16, updated_at=NOW()
        WHERE id=$17 AND is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.ContractID,
		ticket.BranchID,
		ticket.ZoneID,
		ticket.TicketTypeID,
		ticket.TicketStatusID,
		ticket.MainServiceID,
		ticket.AssignToTeamLeaderID,
		ticket.AssignToTechnicianID,
		ticket.TicketTitle,
		ticket.ProblemDescription,
		ticket.ServiceDescription,
		ticket.TicketDate,
		ticket.TicketTimeFrom,
		ticket.TicketTimeTo,
		ticket.Tools,
		ticket.UpdatedBy,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, companyID, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE id=$1 AND company_id=$2 AND is_deleted=FALSE`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id, companyID).Scan(ticketScanTargets(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int64, error) {
	clauses := []string{"company_id=$1", "is_deleted=FALSE"}
	args := []any{filter.CompanyID}

	if filter.AssignedTechnicianID != nil {
		args = append(args, *filter.AssignedTechnicianID)
		clauses = append(clauses, fmt.Sprintf("assign_to_technician_id=$%d", len(args)))
	}
	if filter.TicketTypeID != nil {
		args = append(args, *filter.TicketTypeID)
		clauses = append(clauses, fmt.Sprintf("ticket_type_id=$%d", len(args)))
	}
	if filter.TicketStatusID != nil {
		args = append(args, *filter.TicketStatusID)
		clauses = append(clauses, fmt.Sprintf("ticket_status_id=$%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tickets WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *ticketRepository) CountByType(ctx context.Context, companyID int64) (map[int64]int64, error) {
	const query = `
        SELECT ticket_type_id, COUNT(*) FROM tickets
        WHERE company_id=$1 AND is_deleted=FALSE GROUP BY ticket_type_id`
	return r.countGrouped(ctx, query, companyID)
}

func (r *ticketRepository) CountByStatus(ctx context.Context, companyID int64) (map[int64]int64, error) {
	const query = `
        SELECT ticket_status_id, COUNT(*) FROM tickets
        WHERE company_id=$1 AND is_deleted=FALSE GROUP BY ticket_status_id`
	return r.countGrouped(ctx, query, companyID)
}

func (r *ticketRepository) countGrouped(ctx context.Context, query string, companyID int64) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]int64)
	for rows.Next() {
		var id, count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		result[id] = count
	}
	return result, rows.Err()
}

func ticketScanTargets(ticket *domain.Ticket) []any {
	return []any{
		&ticket.ID,
		&ticket.Code,
		&ticket.CompanyID,
		&ticket.ContractID,
		&ticket.BranchID,
		&ticket.ZoneID,
		&ticket.TicketTypeID,
		&ticket.TicketStatusID,
		&ticket.MainServiceID,
		&ticket.AssignToTeamLeaderID,
		&ticket.AssignToTechnicianID,
		&ticket.TicketTitle,
		&ticket.ProblemDescription,
		&ticket.ServiceDescription,
		&ticket.TicketDate,
		&ticket.TicketTimeFrom,
		&ticket.TicketTimeTo,
		&ticket.Tools,
		&ticket.Source,
		&ticket.CreatedBy,
		&ticket.UpdatedBy,
		&ticket.IsDeleted,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketScanTargets(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
