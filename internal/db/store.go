package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-site/internal/types"
)

// Store persists contact leads. Leads are insert-only.
type Store interface {
	InsertLead(ctx context.Context, lead *types.ContactSubmission) error
	// GetLead returns nil, nil when no lead has the given ID.
	GetLead(ctx context.Context, id uuid.UUID) (*types.ContactSubmission, error)
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLite)(nil)
	_ Store = (*Memory)(nil)
)

// Open selects a store from a database URL:
//
//	postgres://, postgresql://   PostgreSQL via pgxpool
//	sqlite://path, file:path     SQLite
//	"" or memory://              in-process memory
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch dialectOf(databaseURL) {
	case dialectPostgres:
		return Connect(ctx, databaseURL)
	case dialectSQLite:
		return OpenSQLite(ctx, sqlitePath(databaseURL))
	case dialectMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", schemeOf(databaseURL))
	}
}

type dialect int

const (
	dialectUnknown dialect = iota
	dialectPostgres
	dialectSQLite
	dialectMemory
)

func dialectOf(databaseURL string) dialect {
	if strings.TrimSpace(databaseURL) == "" {
		return dialectMemory
	}
	switch schemeOf(databaseURL) {
	case "postgres", "postgresql":
		return dialectPostgres
	case "sqlite", "file":
		return dialectSQLite
	case "memory":
		return dialectMemory
	default:
		return dialectUnknown
	}
}

func schemeOf(databaseURL string) string {
	scheme, _, ok := strings.Cut(databaseURL, ":")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

// sqlitePath turns sqlite://data/leads.db into data/leads.db. file: URLs are
// passed through since the driver understands them.
func sqlitePath(databaseURL string) string {
	if rest, ok := strings.CutPrefix(databaseURL, "sqlite://"); ok {
		return rest
	}
	return databaseURL
}
