package service

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"event-ticketing/config"
	"event-ticketing/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running service tests...")

	code := m.Run()

	testDB.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, "TRUNCATE reviews, waitlist_entries, bookings, ticket_types, events RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return func() {}
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

func createTestEvent(t *testing.T, title string, start time.Time, published bool) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO events (event_id, organizer_id, title, location, start_date_time, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query, uuid.New(), 1, title, "Main Hall", start, published).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return id
}

func createTestTicketType(t *testing.T, eventID int, name string, capacity int) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO ticket_types (ticket_type_id, event_id, name, price, capacity, sold)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query, uuid.New(), eventID, name, decimal.NewFromInt(50), capacity).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test ticket type: %v", err)
	}

	return id
}
