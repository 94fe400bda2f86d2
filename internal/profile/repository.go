package profile

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the base profile row does not exist.
	ErrNotFound = errors.New("profile not found")

	// ErrRoleNotAssigned occurs when an authenticated user has not completed
	// role selection yet. Callers redirect to role selection; this is an
	// expected intermediate state, not a fault.
	ErrRoleNotAssigned = errors.New("role not assigned")

	// ErrProfileIncomplete occurs when the role is assigned but the extension
	// row has not been provisioned. Extension rows are created lazily on first
	// save, so callers substitute zero-valued fields.
	ErrProfileIncomplete = errors.New("profile extension not provisioned")

	// ErrRoleMismatch indicates an extension write targeted a role other than
	// the one assigned to the user.
	ErrRoleMismatch = errors.New("extension role does not match assigned role")
)

// BaseUpdate carries a partial base-profile edit. Nil fields are left
// untouched. Email is immutable after creation and deliberately absent.
type BaseUpdate struct {
	FullName *string
	Phone    *string
	Address  *string
}

// Repository persists base profiles, role assignments and role extensions.
type Repository interface {
	CreateBase(ctx context.Context, base BaseProfile) error
	GetBase(ctx context.Context, userID string) (BaseProfile, error)
	UpdateBase(ctx context.Context, userID string, update BaseUpdate) error

	GetRole(ctx context.Context, userID string) (Role, error)
	AssignRole(ctx context.Context, userID string, role Role) error

	GetExtension(ctx context.Context, userID string, role Role) (Extension, error)
	UpsertExtension(ctx context.Context, userID string, ext Extension) error
}
