package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository against the marketplace schema:
// one profiles table, one role_assignments table and five extension tables
// keyed by user id.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed profile repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateBase inserts the shared profile row.
func (r *PostgresRepository) CreateBase(ctx context.Context, base BaseProfile) error {
	userID, err := uuid.Parse(base.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO profiles (id, full_name, email, phone, address, is_verified, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, base.FullName, base.Email, base.Phone, base.Address, base.Verified, base.CreatedAt.UTC())
	return err
}

// GetBase fetches the shared profile row.
func (r *PostgresRepository) GetBase(ctx context.Context, userID string) (BaseProfile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return BaseProfile{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, full_name, email, phone, address, is_verified, created_at
        FROM profiles WHERE id = $1`, id)
	var (
		base      BaseProfile
		idVal     uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&idVal, &base.FullName, &base.Email, &base.Phone, &base.Address, &base.Verified, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BaseProfile{}, ErrNotFound
		}
		return BaseProfile{}, err
	}
	base.ID = idVal.String()
	base.CreatedAt = createdAt.UTC()
	return base, nil
}

// UpdateBase writes only the provided fields. Email is never written.
func (r *PostgresRepository) UpdateBase(ctx context.Context, userID string, update BaseUpdate) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrNotFound
	}

	set := ""
	args := []any{id}
	add := func(column string, value any) {
		if set != "" {
			set += ", "
		}
		args = append(args, value)
		set += fmt.Sprintf("%s = $%d", column, len(args))
	}
	if update.FullName != nil {
		add("full_name", *update.FullName)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Address != nil {
		add("address", *update.Address)
	}
	if set == "" {
		return nil
	}

	cmd, err := r.db.Exec(ctx, `UPDATE profiles SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRole looks up the role assignment.
func (r *PostgresRepository) GetRole(ctx context.Context, userID string) (Role, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", ErrRoleNotAssigned
	}
	var role string
	err = r.db.QueryRow(ctx, `SELECT role FROM role_assignments WHERE user_id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRoleNotAssigned
		}
		return "", err
	}
	return Role(role), nil
}

// AssignRole records the user's selected role.
func (r *PostgresRepository) AssignRole(ctx context.Context, userID string, role Role) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.Exec(ctx, `INSERT INTO role_assignments (user_id, role, assigned_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, assigned_at = EXCLUDED.assigned_at`,
		id, string(role), time.Now().UTC())
	return err
}

// GetExtension fetches exactly the extension table matching the role.
func (r *PostgresRepository) GetExtension(ctx context.Context, userID string, role Role) (Extension, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	switch role {
	case RoleTenant:
		var ext TenantExt
		err = r.db.QueryRow(ctx, `SELECT emergency_contact, wallet_balance FROM tenant_profiles WHERE user_id = $1`, id).
			Scan(&ext.EmergencyContact, &ext.WalletBalance)
		return extOrIncomplete(ext, err)
	case RoleOwner:
		var ext OwnerExt
		err = r.db.QueryRow(ctx, `SELECT bank_account_number, bank_ifsc, pan_number, total_earnings FROM owner_profiles WHERE user_id = $1`, id).
			Scan(&ext.BankAccountNumber, &ext.BankIFSC, &ext.PANNumber, &ext.TotalEarnings)
		return extOrIncomplete(ext, err)
	case RoleAgent:
		var (
			ext   AgentExt
			areas string
		)
		err = r.db.QueryRow(ctx, `SELECT assigned_areas, completed_verifications, pending_verifications, rating FROM agent_profiles WHERE user_id = $1`, id).
			Scan(&areas, &ext.CompletedVerifications, &ext.PendingVerifications, &ext.Rating)
		ext.AssignedAreas = SplitList(areas)
		return extOrIncomplete(ext, err)
	case RoleVendor:
		var (
			ext          VendorExt
			types, areas string
		)
		err = r.db.QueryRow(ctx, `SELECT business_name, service_types, service_areas, rating, total_jobs, is_available FROM vendor_profiles WHERE user_id = $1`, id).
			Scan(&ext.BusinessName, &types, &areas, &ext.Rating, &ext.TotalJobs, &ext.Available)
		ext.ServiceTypes = SplitList(types)
		ext.ServiceAreas = SplitList(areas)
		return extOrIncomplete(ext, err)
	case RoleTechnician:
		var (
			ext          TechnicianExt
			specs, areas string
		)
		err = r.db.QueryRow(ctx, `SELECT specializations, service_areas, rating, completed_jobs, is_available FROM technician_profiles WHERE user_id = $1`, id).
			Scan(&specs, &areas, &ext.Rating, &ext.CompletedJobs, &ext.Available)
		ext.Specializations = SplitList(specs)
		ext.ServiceAreas = SplitList(areas)
		return extOrIncomplete(ext, err)
	case RoleAdmin:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// UpsertExtension writes the full extension row for its variant.
func (r *PostgresRepository) UpsertExtension(ctx context.Context, userID string, ext Extension) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrNotFound
	}

	switch v := ext.(type) {
	case TenantExt:
		_, err = r.db.Exec(ctx, `INSERT INTO tenant_profiles (user_id, emergency_contact, wallet_balance)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id) DO UPDATE SET emergency_contact = EXCLUDED.emergency_contact, wallet_balance = EXCLUDED.wallet_balance`,
			id, v.EmergencyContact, v.WalletBalance)
	case OwnerExt:
		_, err = r.db.Exec(ctx, `INSERT INTO owner_profiles (user_id, bank_account_number, bank_ifsc, pan_number, total_earnings)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (user_id) DO UPDATE SET bank_account_number = EXCLUDED.bank_account_number, bank_ifsc = EXCLUDED.bank_ifsc, pan_number = EXCLUDED.pan_number, total_earnings = EXCLUDED.total_earnings`,
			id, v.BankAccountNumber, v.BankIFSC, v.PANNumber, v.TotalEarnings)
	case AgentExt:
		_, err = r.db.Exec(ctx, `INSERT INTO agent_profiles (user_id, assigned_areas, completed_verifications, pending_verifications, rating)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (user_id) DO UPDATE SET assigned_areas = EXCLUDED.assigned_areas, completed_verifications = EXCLUDED.completed_verifications, pending_verifications = EXCLUDED.pending_verifications, rating = EXCLUDED.rating`,
			id, JoinList(v.AssignedAreas), v.CompletedVerifications, v.PendingVerifications, v.Rating)
	case VendorExt:
		_, err = r.db.Exec(ctx, `INSERT INTO vendor_profiles (user_id, business_name, service_types, service_areas, rating, total_jobs, is_available)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            ON CONFLICT (user_id) DO UPDATE SET business_name = EXCLUDED.business_name, service_types = EXCLUDED.service_types, service_areas = EXCLUDED.service_areas, rating = EXCLUDED.rating, total_jobs = EXCLUDED.total_jobs, is_available = EXCLUDED.is_available`,
			id, v.BusinessName, JoinList(v.ServiceTypes), JoinList(v.ServiceAreas), v.Rating, v.TotalJobs, v.Available)
	case TechnicianExt:
		_, err = r.db.Exec(ctx, `INSERT INTO technician_profiles (user_id, specializations, service_areas, rating, completed_jobs, is_available)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (user_id) DO UPDATE SET specializations = EXCLUDED.specializations, service_areas = EXCLUDED.service_areas, rating = EXCLUDED.rating, completed_jobs = EXCLUDED.completed_jobs, is_available = EXCLUDED.is_available`,
			id, JoinList(v.Specializations), JoinList(v.ServiceAreas), v.Rating, v.CompletedJobs, v.Available)
	default:
		return fmt.Errorf("unknown extension variant %T", ext)
	}
	return err
}

func extOrIncomplete(ext Extension, err error) (Extension, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileIncomplete
		}
		return nil, err
	}
	return ext, nil
}
