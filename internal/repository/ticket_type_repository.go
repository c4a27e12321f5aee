package repository

import (
	"context"
	"time"

	"event-ticketing/internal/model"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketTypeColumns = `
	id, ticket_type_id, event_id, name, price, capacity, sold,
	sales_start_date, sales_end_date,
	dynamic_pricing_type, dynamic_end_date, dynamic_original_price,
	created_at, updated_at`

type TicketTypeRepository interface {
	Create(ctx context.Context, params model.CreateTicketTypeParams) (*model.TicketType, error)
	FindByID(ctx context.Context, id int) (*model.TicketType, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.TicketType, error)

	// Transaction methods. FindByIDWithLock takes the exclusive row lock that
	// serializes all sold-counter mutations for one ticket type.
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.TicketType, error)
	IncrementSold(ctx context.Context, tx pgx.Tx, id int, quantity int) error
	DecrementSold(ctx context.Context, tx pgx.Tx, id int, quantity int) error
}

type TicketTypeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &TicketTypeRepositoryImpl{
		pool: pool,
	}
}

func scanTicketType(row pgx.Row) (*model.TicketType, error) {
	var t model.TicketType
	err := row.Scan(
		&t.ID,
		&t.TicketTypeID,
		&t.EventID,
		&t.Name,
		&t.Price,
		&t.Capacity,
		&t.Sold,
		&t.SalesStartDate,
		&t.SalesEndDate,
		&t.DynamicPricingType,
		&t.DynamicEndDate,
		&t.DynamicOriginalPrice,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketTypeRepositoryImpl) Create(ctx context.Context, params model.CreateTicketTypeParams) (*model.TicketType, error) {
	query := `
		INSERT INTO ticket_types (ticket_type_id, event_id, name, price, capacity, sold, sales_start_date, sales_end_date)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		RETURNING ` + ticketTypeColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.EventID, params.Name, params.Price,
		params.Capacity, params.SalesStartDate, params.SalesEndDate,
	)
	return scanTicketType(row)
}

func (r *TicketTypeRepositoryImpl) FindByID(ctx context.Context, id int) (*model.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = $1`
	return scanTicketType(r.pool.QueryRow(ctx, query, id))
}

func (r *TicketTypeRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = $1 FOR UPDATE`
	return scanTicketType(tx.QueryRow(ctx, query, id))
}

func (r *TicketTypeRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE event_id = $1 ORDER BY price ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ticketTypes := make([]*model.TicketType, 0)
	for rows.Next() {
		t, err := scanTicketType(rows)
		if err != nil {
			return nil, err
		}
		ticketTypes = append(ticketTypes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ticketTypes, nil
}

func (r *TicketTypeRepositoryImpl) IncrementSold(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	// The capacity guard is a backstop; the service already validated the
	// shortfall under the same row lock.
	query := `
		UPDATE ticket_types
		SET sold = sold + $1, updated_at = $2
		WHERE id = $3 AND sold + $1 <= capacity
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientCapacity
	}
	return nil
}

func (r *TicketTypeRepositoryImpl) DecrementSold(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	query := `
		UPDATE ticket_types
		SET sold = sold - $1, updated_at = $2
		WHERE id = $3 AND sold >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// The guard refused: sold would drop below zero, so the ledger no
		// longer matches the booking being cancelled.
		return apperrors.ErrSoldUnderflow
	}
	return nil
}
