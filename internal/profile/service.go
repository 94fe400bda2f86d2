package profile

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service resolves user identities to fully-typed role profiles and applies
// partial edits back to the underlying tables.
type Service struct {
	repo Repository
}

// NewService builds a profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ProvisionBase creates the shared profile row for a fresh account.
func (s *Service) ProvisionBase(ctx context.Context, userID, fullName, email, phone string) error {
	base := BaseProfile{
		ID:        userID,
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.CreateBase(ctx, base)
}

// ResolveRole looks up the role assignment. ErrRoleNotAssigned is an expected
// intermediate state for users who have not finished role selection.
func (s *Service) ResolveRole(ctx context.Context, userID string) (Role, error) {
	return s.repo.GetRole(ctx, userID)
}

// AssignRole records the user's selected role.
func (s *Service) AssignRole(ctx context.Context, userID string, role Role) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.repo.AssignRole(ctx, userID, role)
}

// Load fetches the base profile plus exactly the extension matching the
// assigned role. A missing extension row yields the zero-valued variant;
// rows are provisioned lazily on first save.
func (s *Service) Load(ctx context.Context, userID string) (RoleProfile, error) {
	base, err := s.repo.GetBase(ctx, userID)
	if err != nil {
		return RoleProfile{}, err
	}
	role, err := s.repo.GetRole(ctx, userID)
	if err != nil {
		return RoleProfile{}, err
	}

	ext, err := s.repo.GetExtension(ctx, userID, role)
	if err != nil {
		if errors.Is(err, ErrProfileIncomplete) {
			ext = zeroExtension(role)
		} else {
			return RoleProfile{}, err
		}
	}

	return RoleProfile{Base: base, Role: role, Ext: ext}, nil
}

// SaveBase writes only the provided base fields. Email is immutable.
func (s *Service) SaveBase(ctx context.Context, userID string, update BaseUpdate) error {
	return s.repo.UpdateBase(ctx, userID, update)
}

// SaveExtension applies a partial extension edit for the assigned role. The
// update's role must match the assignment; the full row is written back, with
// the current (or zero) values filling unedited fields.
func (s *Service) SaveExtension(ctx context.Context, userID string, update ExtensionUpdate) error {
	role, err := s.repo.GetRole(ctx, userID)
	if err != nil {
		return err
	}
	if update.Role() != role {
		return ErrRoleMismatch
	}

	current, err := s.repo.GetExtension(ctx, userID, role)
	if err != nil {
		if !errors.Is(err, ErrProfileIncomplete) {
			return err
		}
		current = zeroExtension(role)
	}

	return s.repo.UpsertExtension(ctx, userID, update.apply(current))
}

// ExtensionUpdate is a partial edit against one extension variant. Nil fields
// are left untouched.
type ExtensionUpdate interface {
	Role() Role
	apply(current Extension) Extension
}

// TenantExtUpdate edits tenant fields.
type TenantExtUpdate struct {
	EmergencyContact *string `json:"emergency_contact"`
	WalletBalance    *int64  `json:"wallet_balance"`
}

// Role implements ExtensionUpdate.
func (TenantExtUpdate) Role() Role { return RoleTenant }

func (u TenantExtUpdate) apply(current Extension) Extension {
	ext, _ := current.(TenantExt)
	if u.EmergencyContact != nil {
		ext.EmergencyContact = *u.EmergencyContact
	}
	if u.WalletBalance != nil {
		ext.WalletBalance = *u.WalletBalance
	}
	return ext
}

// OwnerExtUpdate edits owner payout fields.
type OwnerExtUpdate struct {
	BankAccountNumber *string `json:"bank_account_number"`
	BankIFSC          *string `json:"bank_ifsc"`
	PANNumber         *string `json:"pan_number"`
}

// Role implements ExtensionUpdate.
func (OwnerExtUpdate) Role() Role { return RoleOwner }

func (u OwnerExtUpdate) apply(current Extension) Extension {
	ext, _ := current.(OwnerExt)
	if u.BankAccountNumber != nil {
		ext.BankAccountNumber = *u.BankAccountNumber
	}
	if u.BankIFSC != nil {
		ext.BankIFSC = *u.BankIFSC
	}
	if u.PANNumber != nil {
		ext.PANNumber = *u.PANNumber
	}
	return ext
}

// AgentExtUpdate edits agent fields. AssignedAreas arrives as comma-joined
// free text, exactly as the client form submits it.
type AgentExtUpdate struct {
	AssignedAreas *string `json:"assigned_areas"`
}

// Role implements ExtensionUpdate.
func (AgentExtUpdate) Role() Role { return RoleAgent }

func (u AgentExtUpdate) apply(current Extension) Extension {
	ext, _ := current.(AgentExt)
	if u.AssignedAreas != nil {
		ext.AssignedAreas = SplitList(*u.AssignedAreas)
	}
	return ext
}

// VendorExtUpdate edits vendor business fields.
type VendorExtUpdate struct {
	BusinessName *string `json:"business_name"`
	ServiceTypes *string `json:"service_types"`
	ServiceAreas *string `json:"service_areas"`
	Available    *bool   `json:"is_available"`
}

// Role implements ExtensionUpdate.
func (VendorExtUpdate) Role() Role { return RoleVendor }

func (u VendorExtUpdate) apply(current Extension) Extension {
	ext, _ := current.(VendorExt)
	if u.BusinessName != nil {
		ext.BusinessName = *u.BusinessName
	}
	if u.ServiceTypes != nil {
		ext.ServiceTypes = SplitList(*u.ServiceTypes)
	}
	if u.ServiceAreas != nil {
		ext.ServiceAreas = SplitList(*u.ServiceAreas)
	}
	if u.Available != nil {
		ext.Available = *u.Available
	}
	return ext
}

// TechnicianExtUpdate edits technician fields.
type TechnicianExtUpdate struct {
	Specializations *string `json:"specializations"`
	ServiceAreas    *string `json:"service_areas"`
	Available       *bool   `json:"is_available"`
}

// Role implements ExtensionUpdate.
func (TechnicianExtUpdate) Role() Role { return RoleTechnician }

func (u TechnicianExtUpdate) apply(current Extension) Extension {
	ext, _ := current.(TechnicianExt)
	if u.Specializations != nil {
		ext.Specializations = SplitList(*u.Specializations)
	}
	if u.ServiceAreas != nil {
		ext.ServiceAreas = SplitList(*u.ServiceAreas)
	}
	if u.Available != nil {
		ext.Available = *u.Available
	}
	return ext
}
