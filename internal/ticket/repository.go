package ticket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists maintenance tickets.
type Repository interface {
	Create(ctx context.Context, t MaintenanceTicket) error
	ListByTenant(ctx context.Context, tenantID string) ([]MaintenanceTicket, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]MaintenanceTicket, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed ticket repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a ticket record.
func (r *PostgresRepository) Create(ctx context.Context, t MaintenanceTicket) error {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO maintenance_tickets (id, tenant_id, property_id, category, description, preferred_date, assignee_id, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		id, t.TenantID, t.PropertyID, t.Category, t.Description,
		t.PreferredDate.Format("2006-01-02"), t.AssigneeID, t.Status, t.CreatedAt.UTC())
	return err
}

// ListByTenant fetches the tenant's tickets, newest first.
func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string) ([]MaintenanceTicket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tenant_id, property_id, category, description, preferred_date, COALESCE(assignee_id::text, ''), status, created_at
        FROM maintenance_tickets WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListByAssignee fetches the tickets assigned to a technician or vendor.
func (r *PostgresRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]MaintenanceTicket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tenant_id, property_id, category, description, preferred_date, COALESCE(assignee_id::text, ''), status, created_at
        FROM maintenance_tickets WHERE assignee_id = $1 ORDER BY created_at DESC`, assigneeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]MaintenanceTicket, error) {
	var out []MaintenanceTicket
	for rows.Next() {
		var (
			t         MaintenanceTicket
			id        uuid.UUID
			preferred time.Time
			createdAt time.Time
		)
		if err := rows.Scan(&id, &t.TenantID, &t.PropertyID, &t.Category, &t.Description, &preferred, &t.AssigneeID, &t.Status, &createdAt); err != nil {
			return nil, err
		}
		t.ID = id.String()
		t.PreferredDate = preferred
		t.CreatedAt = createdAt.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

type memoryRepository struct {
	mu      sync.RWMutex
	tickets []MaintenanceTicket
}

// NewMemoryRepository builds an in-memory ticket store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, t MaintenanceTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, t)
	return nil
}

func (r *memoryRepository) ListByTenant(_ context.Context, tenantID string) ([]MaintenanceTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []MaintenanceTicket
	for _, t := range r.tickets {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryRepository) ListByAssignee(_ context.Context, assigneeID string) ([]MaintenanceTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []MaintenanceTicket
	for _, t := range r.tickets {
		if t.AssigneeID == assigneeID {
			out = append(out, t)
		}
	}
	return out, nil
}
