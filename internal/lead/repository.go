package lead

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists owner leads.
type Repository interface {
	Create(ctx context.Context, l OwnerLead) error
	ListByOwner(ctx context.Context, ownerID string) ([]OwnerLead, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed lead repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an owner lead.
func (r *PostgresRepository) Create(ctx context.Context, l OwnerLead) error {
	id, err := uuid.Parse(l.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO owner_leads (id, owner_id, full_name, phone, email, city, property_type, expected_rent, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, l.OwnerID, l.FullName, l.Phone, l.Email, l.City, l.PropertyType, l.ExpectedRent, l.Status, l.CreatedAt.UTC())
	return err
}

// ListByOwner fetches the owner's leads, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]OwnerLead, error) {
	rows, err := r.db.Query(ctx, `SELECT id, owner_id, full_name, phone, email, city, property_type, expected_rent, status, created_at
        FROM owner_leads WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OwnerLead
	for rows.Next() {
		var (
			l         OwnerLead
			id        uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&id, &l.OwnerID, &l.FullName, &l.Phone, &l.Email, &l.City, &l.PropertyType, &l.ExpectedRent, &l.Status, &createdAt); err != nil {
			return nil, err
		}
		l.ID = id.String()
		l.CreatedAt = createdAt.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

type memoryRepository struct {
	mu    sync.RWMutex
	leads []OwnerLead
}

// NewMemoryRepository builds an in-memory lead store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, l OwnerLead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, l)
	return nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]OwnerLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []OwnerLead
	for _, l := range r.leads {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}
