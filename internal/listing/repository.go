package listing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the listing does not exist.
var ErrNotFound = errors.New("listing not found")

// Repository persists property listings.
type Repository interface {
	Create(ctx context.Context, l Listing) error
	Get(ctx context.Context, id string) (Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Listing, error)
	ListAvailable(ctx context.Context, city string) ([]Listing, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed listing repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a listing record.
func (r *PostgresRepository) Create(ctx context.Context, l Listing) error {
	id, err := uuid.Parse(l.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO listings (id, owner_id, title, address, area, city, monthly_rent, deposit, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, l.OwnerID, l.Title, l.Address, l.Area, l.City, l.MonthlyRent, l.Deposit, l.Status, l.CreatedAt.UTC())
	return err
}

// Get fetches one listing by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, title, address, area, city, monthly_rent, deposit, status, created_at
        FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Listing{}, ErrNotFound
	}
	return l, err
}

// ListByOwner fetches all listings owned by one account, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Listing, error) {
	rows, err := r.db.Query(ctx, `SELECT id, owner_id, title, address, area, city, monthly_rent, deposit, status, created_at
        FROM listings WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

// ListAvailable fetches bookable listings, optionally filtered by city.
func (r *PostgresRepository) ListAvailable(ctx context.Context, city string) ([]Listing, error) {
	rows, err := r.db.Query(ctx, `SELECT id, owner_id, title, address, area, city, monthly_rent, deposit, status, created_at
        FROM listings WHERE status = $1 AND ($2 = '' OR city = $2) ORDER BY created_at DESC`, StatusAvailable, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

// UpdateStatus transitions a listing between available, booked and inactive.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE listings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (Listing, error) {
	var (
		l         Listing
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &l.OwnerID, &l.Title, &l.Address, &l.Area, &l.City, &l.MonthlyRent, &l.Deposit, &l.Status, &createdAt); err != nil {
		return Listing{}, err
	}
	l.ID = id.String()
	l.CreatedAt = createdAt.UTC()
	return l, nil
}

func scanListings(rows pgx.Rows) ([]Listing, error) {
	var out []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
