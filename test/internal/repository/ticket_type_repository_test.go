package repository

import (
	"context"
	"testing"
	"time"

	"event-ticketing/internal/model"
	"event-ticketing/internal/repository"
	apperrors "event-ticketing/pkg/app_errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketTypeRepository_Create(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	repo := repository.NewTicketTypeRepository(getTestDB())
	ctx := context.Background()

	eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)

	created, err := repo.Create(ctx, model.CreateTicketTypeParams{
		EventID:  eventID,
		Name:     "General Admission",
		Price:    decimal.NewFromInt(50),
		Capacity: 100,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, eventID, created.EventID)
	assert.Equal(t, "General Admission", created.Name)
	assert.True(t, decimal.NewFromInt(50).Equal(created.Price))
	assert.Equal(t, 100, created.Capacity)
	assert.Equal(t, 0, created.Sold)
}

func TestTicketTypeRepository_FindByID(t *testing.T) {
	repo := repository.NewTicketTypeRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "VIP", 20, 5)

		found, err := repo.FindByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, found.ID)
		assert.Equal(t, 15, found.Available())
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := repo.FindByID(ctx, 99999)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrTicketTypeNotFound, err)
	})
}

func TestTicketTypeRepository_ListByEventID(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	repo := repository.NewTicketTypeRepository(getTestDB())
	ctx := context.Background()

	eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
	createTestTicketTypePriced(t, eventID, "VIP", decimal.NewFromInt(120), 20, 0)
	createTestTicketTypePriced(t, eventID, "General", decimal.NewFromInt(50), 100, 0)

	other := createTestEvent(t, "Rock Festival", time.Now().UTC().Add(72*time.Hour), true)
	createTestTicketType(t, other, "Standing", 500)

	ticketTypes, err := repo.ListByEventID(ctx, eventID)

	require.NoError(t, err)
	require.Len(t, ticketTypes, 2)
	assert.Equal(t, "General", ticketTypes[0].Name)
	assert.Equal(t, "VIP", ticketTypes[1].Name)
}

func TestTicketTypeRepository_FindByIDWithLock(t *testing.T) {
	repo := repository.NewTicketTypeRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "VIP", 20, 3)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		locked, err := repo.FindByIDWithLock(ctx, tx, id)

		require.NoError(t, err)
		assert.Equal(t, id, locked.ID)
		assert.Equal(t, 3, locked.Sold)
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		_, err := repo.FindByIDWithLock(ctx, tx, 99999)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrTicketTypeNotFound, err)
	})
}

func TestTicketTypeRepository_IncrementSold(t *testing.T) {
	repo := repository.NewTicketTypeRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketType(t, eventID, "General", 100)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.IncrementSold(ctx, tx, id, 30)
		require.NoError(t, err)

		ticketType, err := repo.FindByIDWithLock(ctx, tx, id)
		require.NoError(t, err)
		assert.Equal(t, 30, ticketType.Sold)
	})

	t.Run("ExactCapacity", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "General", 50, 40)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.IncrementSold(ctx, tx, id, 10)
		require.NoError(t, err)

		ticketType, err := repo.FindByIDWithLock(ctx, tx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, ticketType.Available())
	})

	t.Run("ExceedsCapacity", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "General", 50, 45)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.IncrementSold(ctx, tx, id, 10)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInsufficientCapacity, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.IncrementSold(ctx, tx, 99999, 1)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInsufficientCapacity, err)
	})
}

func TestTicketTypeRepository_DecrementSold(t *testing.T) {
	repo := repository.NewTicketTypeRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "General", 100, 30)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.DecrementSold(ctx, tx, id, 10)
		require.NoError(t, err)

		ticketType, err := repo.FindByIDWithLock(ctx, tx, id)
		require.NoError(t, err)
		assert.Equal(t, 20, ticketType.Sold)
	})

	t.Run("ExactToZero", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "General", 100, 25)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.DecrementSold(ctx, tx, id, 25)
		require.NoError(t, err)

		ticketType, err := repo.FindByIDWithLock(ctx, tx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, ticketType.Sold)
	})

	t.Run("Underflow", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		eventID := createTestEvent(t, "Jazz Night", time.Now().UTC().Add(48*time.Hour), true)
		id := createTestTicketTypeWithSold(t, eventID, "General", 100, 5)

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.DecrementSold(ctx, tx, id, 10)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrSoldUnderflow, err)

		ticketType, findErr := repo.FindByIDWithLock(ctx, tx, id)
		require.NoError(t, findErr)
		assert.Equal(t, 5, ticketType.Sold)
	})

	t.Run("NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		tx, txCleanup := setupTestWithTransaction(t)
		defer txCleanup()

		err := repo.DecrementSold(ctx, tx, 99999, 1)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrSoldUnderflow, err)
	})
}
