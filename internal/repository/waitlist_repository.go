package repository

import (
	"context"

	"event-ticketing/internal/model"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const waitlistColumns = `
	id, user_id, event_id, ticket_type_id, position, status, created_at, updated_at`

type WaitlistRepository interface {
	ExistsForUser(ctx context.Context, userID int, eventID int, ticketTypeID *int) (bool, error)
	DeleteByUserEvent(ctx context.Context, userID int, eventID int) error
	ListByUserID(ctx context.Context, userID int) ([]*model.WaitlistEntry, error)

	// Transaction methods. MaxPosition and Create run inside the join
	// transaction so two concurrent joins cannot claim the same position.
	MaxPosition(ctx context.Context, tx pgx.Tx, eventID int, ticketTypeID *int) (int, error)
	Create(ctx context.Context, tx pgx.Tx, entry *model.WaitlistEntry) (*model.WaitlistEntry, error)
	// ListWaiting reads (never mutates) WAITING entries for a group, ordered
	// by ascending position. Used by cancellation for its notified count.
	ListWaiting(ctx context.Context, tx pgx.Tx, eventID int, ticketTypeID int, limit int) ([]*model.WaitlistEntry, error)
}

type WaitlistRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) WaitlistRepository {
	return &WaitlistRepositoryImpl{
		pool: pool,
	}
}

func scanWaitlistEntry(row pgx.Row) (*model.WaitlistEntry, error) {
	var e model.WaitlistEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.EventID,
		&e.TicketTypeID,
		&e.Position,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrWaitlistNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *WaitlistRepositoryImpl) ExistsForUser(ctx context.Context, userID int, eventID int, ticketTypeID *int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM waitlist_entries
			WHERE user_id = $1 AND event_id = $2 AND ticket_type_id IS NOT DISTINCT FROM $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, eventID, ticketTypeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *WaitlistRepositoryImpl) MaxPosition(ctx context.Context, tx pgx.Tx, eventID int, ticketTypeID *int) (int, error) {
	// Per (event, ticket type) group, not a global counter: positions are
	// dense within a group and start at 1.
	query := `
		SELECT COALESCE(MAX(position), 0)
		FROM waitlist_entries
		WHERE event_id = $1 AND ticket_type_id IS NOT DISTINCT FROM $2
	`

	var max int
	err := tx.QueryRow(ctx, query, eventID, ticketTypeID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (r *WaitlistRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	query := `
		INSERT INTO waitlist_entries (user_id, event_id, ticket_type_id, position, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + waitlistColumns

	created, err := scanWaitlistEntry(tx.QueryRow(ctx, query,
		entry.UserID, entry.EventID, entry.TicketTypeID, entry.Position, entry.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrWaitlistConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *WaitlistRepositoryImpl) DeleteByUserEvent(ctx context.Context, userID int, eventID int) error {
	query := `DELETE FROM waitlist_entries WHERE user_id = $1 AND event_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, eventID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrWaitlistNotFound
	}
	return nil
}

func (r *WaitlistRepositoryImpl) ListWaiting(ctx context.Context, tx pgx.Tx, eventID int, ticketTypeID int, limit int) ([]*model.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE event_id = $1 AND ticket_type_id = $2 AND status = $3
		ORDER BY position ASC
		LIMIT $4
	`

	rows, err := tx.Query(ctx, query, eventID, ticketTypeID, model.WaitlistStatusWaiting, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.WaitlistEntry, 0)
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *WaitlistRepositoryImpl) ListByUserID(ctx context.Context, userID int) ([]*model.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.WaitlistEntry, 0)
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
