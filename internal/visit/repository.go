package visit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists property visits.
type Repository interface {
	Create(ctx context.Context, v PropertyVisit) error
	ListByVisitor(ctx context.Context, visitorID string) ([]PropertyVisit, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed visit repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a visit record.
func (r *PostgresRepository) Create(ctx context.Context, v PropertyVisit) error {
	id, err := uuid.Parse(v.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO property_visits (id, property_id, visitor_id, visit_date, slot, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, v.PropertyID, v.VisitorID, v.VisitDate.Format("2006-01-02"), v.Slot, v.Status, v.CreatedAt.UTC())
	return err
}

// ListByVisitor fetches the visitor's scheduled viewings, newest first.
func (r *PostgresRepository) ListByVisitor(ctx context.Context, visitorID string) ([]PropertyVisit, error) {
	rows, err := r.db.Query(ctx, `SELECT id, property_id, visitor_id, visit_date, slot, status, created_at
        FROM property_visits WHERE visitor_id = $1 ORDER BY created_at DESC`, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PropertyVisit
	for rows.Next() {
		var (
			v         PropertyVisit
			id        uuid.UUID
			visitDate time.Time
			createdAt time.Time
		)
		if err := rows.Scan(&id, &v.PropertyID, &v.VisitorID, &visitDate, &v.Slot, &v.Status, &createdAt); err != nil {
			return nil, err
		}
		v.ID = id.String()
		v.VisitDate = visitDate
		v.CreatedAt = createdAt.UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

type memoryRepository struct {
	mu     sync.RWMutex
	visits []PropertyVisit
}

// NewMemoryRepository builds an in-memory visit store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, v PropertyVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, v)
	return nil
}

func (r *memoryRepository) ListByVisitor(_ context.Context, visitorID string) ([]PropertyVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []PropertyVisit
	for _, v := range r.visits {
		if v.VisitorID == visitorID {
			out = append(out, v)
		}
	}
	return out, nil
}
