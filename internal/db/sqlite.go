package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-site/internal/types"
	_ "modernc.org/sqlite"
)

// SQLite stores leads in a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and applies the embedded migrations.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := migrateSQL(ctx, sqlDB, dialectSQLite); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &SQLite{db: sqlDB}, nil
}

// Close closes the database.
func (s *SQLite) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// InsertLead stores a contact submission.
func (s *SQLite) InsertLead(ctx context.Context, lead *types.ContactSubmission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions
		 (id, name, email, company, budget, message, preferred_start_date, cv_request, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID.String(), lead.Name, lead.Email, lead.Company, string(lead.Budget), lead.Message,
		lead.PreferredStartDate, lead.CVRequest, lead.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return &PersistenceError{Op: "insert lead " + lead.ID.String(), Cause: err}
	}
	return nil
}

// GetLead retrieves a lead by ID, or nil when it does not exist.
func (s *SQLite) GetLead(ctx context.Context, id uuid.UUID) (*types.ContactSubmission, error) {
	var (
		lead      types.ContactSubmission
		rawID     string
		budget    string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, company, budget, message, preferred_start_date, cv_request, created_at
		 FROM contact_submissions WHERE id = ?`,
		id.String(),
	).Scan(&rawID, &lead.Name, &lead.Email, &lead.Company, &budget, &lead.Message,
		&lead.PreferredStartDate, &lead.CVRequest, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get lead " + id.String(), Cause: err}
	}

	if lead.ID, err = uuid.Parse(rawID); err != nil {
		return nil, &PersistenceError{Op: "get lead " + id.String(), Cause: err}
	}
	if lead.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, &PersistenceError{Op: "get lead " + id.String(), Cause: err}
	}
	lead.Budget = types.BudgetBucket(budget)
	return &lead, nil
}
