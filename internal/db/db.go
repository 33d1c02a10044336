// Package db provides lead storage backed by PostgreSQL, SQLite or memory.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/portfolio-site/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// InsertLead stores a contact submission. Leads are append-only.
func (db *DB) InsertLead(ctx context.Context, lead *types.ContactSubmission) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO contact_submissions
		 (id, name, email, company, budget, message, preferred_start_date, cv_request, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lead.ID, lead.Name, lead.Email, lead.Company, string(lead.Budget), lead.Message,
		lead.PreferredStartDate, lead.CVRequest, lead.CreatedAt,
	)
	if err != nil {
		return &PersistenceError{Op: "insert lead " + lead.ID.String(), Cause: err}
	}
	return nil
}

// GetLead retrieves a lead by ID, or nil when it does not exist.
func (db *DB) GetLead(ctx context.Context, id uuid.UUID) (*types.ContactSubmission, error) {
	var lead types.ContactSubmission
	var budget string
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, company, budget, message, preferred_start_date, cv_request, created_at
		 FROM contact_submissions WHERE id = $1`,
		id,
	).Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Company, &budget, &lead.Message,
		&lead.PreferredStartDate, &lead.CVRequest, &lead.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get lead " + id.String(), Cause: err}
	}
	lead.Budget = types.BudgetBucket(budget)
	lead.CreatedAt = lead.CreatedAt.UTC()
	return &lead, nil
}
