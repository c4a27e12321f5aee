package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-ticketing/internal/model"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	// ListUpcomingPublished returns published events starting after now,
	// soonest first, with the cheapest ticket price attached.
	ListUpcomingPublished(ctx context.Context, now time.Time, limit int) ([]*model.Event, error)
	// SearchUpcomingByTitle filters upcoming published events by
	// case-insensitive substring.
	SearchUpcomingByTitle(ctx context.Context, query string, now time.Time, limit int) ([]*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (event_id, organizer_id, title, description, location, start_date_time, end_date_time, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, event_id, organizer_id, title, description, location,
			start_date_time, end_date_time, is_published, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		event.EventID, event.OrganizerID, event.Title, event.Description,
		event.Location, event.StartDateTime, event.EndDateTime, event.IsPublished,
	).Scan(
		&event.ID,
		&event.EventID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.StartDateTime,
		&event.EndDateTime,
		&event.IsPublished,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT id, event_id, organizer_id, title, description, location,
			start_date_time, end_date_time, is_published, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event model.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.EventID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.StartDateTime,
		&event.EndDateTime,
		&event.IsPublished,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		appendSet("title", *params.Title)
	}
	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.Location != nil {
		appendSet("location", *params.Location)
	}
	if params.StartDateTime != nil {
		appendSet("start_date_time", *params.StartDateTime)
	}
	if params.EndDateTime != nil {
		appendSet("end_date_time", *params.EndDateTime)
	}
	if params.IsPublished != nil {
		appendSet("is_published", *params.IsPublished)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	appendSet("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING id, event_id, organizer_id, title, description, location,
			start_date_time, end_date_time, is_published, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var event model.Event
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&event.ID,
		&event.EventID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.StartDateTime,
		&event.EndDateTime,
		&event.IsPublished,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) ListUpcomingPublished(ctx context.Context, now time.Time, limit int) ([]*model.Event, error) {
	query := `
		SELECT e.id, e.event_id, e.organizer_id, e.title, e.description, e.location,
			e.start_date_time, e.end_date_time, e.is_published, e.created_at, e.updated_at,
			MIN(t.price) AS min_price
		FROM events e
		LEFT JOIN ticket_types t ON t.event_id = e.id
		WHERE e.is_published = TRUE AND e.start_date_time > $1
		GROUP BY e.id
		ORDER BY e.start_date_time ASC
		LIMIT $2
	`
	return r.queryEventsWithMinPrice(ctx, query, now, limit)
}

func (r *EventRepositoryImpl) SearchUpcomingByTitle(ctx context.Context, q string, now time.Time, limit int) ([]*model.Event, error) {
	query := `
		SELECT e.id, e.event_id, e.organizer_id, e.title, e.description, e.location,
			e.start_date_time, e.end_date_time, e.is_published, e.created_at, e.updated_at,
			MIN(t.price) AS min_price
		FROM events e
		LEFT JOIN ticket_types t ON t.event_id = e.id
		WHERE e.is_published = TRUE AND e.start_date_time > $1 AND e.title ILIKE $2
		GROUP BY e.id
		ORDER BY e.start_date_time ASC
		LIMIT $3
	`
	return r.queryEventsWithMinPrice(ctx, query, now, "%"+q+"%", limit)
}

func (r *EventRepositoryImpl) queryEventsWithMinPrice(ctx context.Context, query string, args ...interface{}) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		var minPrice *decimal.Decimal
		err := rows.Scan(
			&event.ID,
			&event.EventID,
			&event.OrganizerID,
			&event.Title,
			&event.Description,
			&event.Location,
			&event.StartDateTime,
			&event.EndDateTime,
			&event.IsPublished,
			&event.CreatedAt,
			&event.UpdatedAt,
			&minPrice,
		)
		if err != nil {
			return nil, err
		}
		event.MinPrice = minPrice
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
