package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists bookings.
type Repository interface {
	Create(ctx context.Context, b Booking) error
	ListByTenant(ctx context.Context, tenantID string) ([]Booking, error)
	ListByProperties(ctx context.Context, propertyIDs []string) ([]Booking, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed booking repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a booking record.
func (r *PostgresRepository) Create(ctx context.Context, b Booking) error {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO bookings (id, property_id, tenant_id, full_name, phone, email, move_in_date, duration_months, monthly_rent, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, b.PropertyID, b.TenantID, b.FullName, b.Phone, b.Email,
		b.MoveInDate.Format("2006-01-02"), b.DurationMonths, b.MonthlyRent, b.Status, b.CreatedAt.UTC())
	return err
}

// ListByTenant fetches the tenant's bookings, newest first.
func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, property_id, tenant_id, full_name, phone, email, move_in_date, duration_months, monthly_rent, status, created_at
        FROM bookings WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListByProperties fetches bookings against any of the given listings.
func (r *PostgresRepository) ListByProperties(ctx context.Context, propertyIDs []string) ([]Booking, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, property_id, tenant_id, full_name, phone, email, move_in_date, duration_months, monthly_rent, status, created_at
        FROM bookings WHERE property_id = ANY($1) ORDER BY created_at DESC`, propertyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var (
			b         Booking
			id        uuid.UUID
			moveIn    time.Time
			createdAt time.Time
		)
		if err := rows.Scan(&id, &b.PropertyID, &b.TenantID, &b.FullName, &b.Phone, &b.Email, &moveIn, &b.DurationMonths, &b.MonthlyRent, &b.Status, &createdAt); err != nil {
			return nil, err
		}
		b.ID = id.String()
		b.MoveInDate = moveIn
		b.CreatedAt = createdAt.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}
