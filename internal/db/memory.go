package db

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-site/internal/types"
)

// Memory keeps leads in process memory. Leads are lost on restart.
type Memory struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]types.ContactSubmission
	order []uuid.UUID
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{leads: make(map[uuid.UUID]types.ContactSubmission)}
}

// InsertLead stores a copy of lead. Inserting an existing ID fails.
func (m *Memory) InsertLead(ctx context.Context, lead *types.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "insert lead " + lead.ID.String(), Cause: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.leads[lead.ID]; exists {
		return &PersistenceError{Op: "insert lead " + lead.ID.String(), Cause: errDuplicateLead}
	}
	m.leads[lead.ID] = *lead
	m.order = append(m.order, lead.ID)
	return nil
}

// GetLead returns a copy of the stored lead, or nil when absent.
func (m *Memory) GetLead(ctx context.Context, id uuid.UUID) (*types.ContactSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lead, ok := m.leads[id]
	if !ok {
		return nil, nil
	}
	return &lead, nil
}

// Leads returns every stored lead in insertion order.
func (m *Memory) Leads() []types.ContactSubmission {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.ContactSubmission, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.leads[id])
	}
	return out
}

// Close is a no-op.
func (m *Memory) Close() {}
