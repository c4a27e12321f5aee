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
)

const reviewColumns = `
	id, user_id, event_id, rating, comment, media_files, is_verified_attendee, created_at, updated_at`

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	ExistsForUserEvent(ctx context.Context, userID int, eventID int) (bool, error)
	FindByIDForUser(ctx context.Context, id int, userID int) (*model.Review, error)
	Update(ctx context.Context, id int, params model.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, id int, userID int) error
	ListByEventID(ctx context.Context, eventID int) ([]*model.Review, error)
}

type ReviewRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &ReviewRepositoryImpl{
		pool: pool,
	}
}

func scanReview(row pgx.Row) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID,
		&rv.UserID,
		&rv.EventID,
		&rv.Rating,
		&rv.Comment,
		&rv.MediaFiles,
		&rv.IsVerifiedAttendee,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	query := `
		INSERT INTO reviews (user_id, event_id, rating, comment, media_files, is_verified_attendee)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns

	created, err := scanReview(r.pool.QueryRow(ctx, query,
		review.UserID, review.EventID, review.Rating,
		review.Comment, review.MediaFiles, review.IsVerifiedAttendee,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrReviewConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *ReviewRepositoryImpl) ExistsForUserEvent(ctx context.Context, userID int, eventID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE user_id = $1 AND event_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, eventID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ReviewRepositoryImpl) FindByIDForUser(ctx context.Context, id int, userID int) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 AND user_id = $2`
	return scanReview(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *ReviewRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateReviewRequest) (*model.Review, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Rating != nil {
		sets = append(sets, fmt.Sprintf("rating = $%d", argPos))
		args = append(args, *params.Rating)
		argPos++
	}
	if params.Comment != nil {
		sets = append(sets, fmt.Sprintf("comment = $%d", argPos))
		args = append(args, *params.Comment)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE reviews
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, reviewColumns)

	return scanReview(r.pool.QueryRow(ctx, query, args...))
}

func (r *ReviewRepositoryImpl) Delete(ctx context.Context, id int, userID int) error {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE event_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
