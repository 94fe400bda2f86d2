package profile

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu         sync.RWMutex
	bases      map[string]BaseProfile
	roles      map[string]Role
	extensions map[string]Extension
}

// NewMemoryRepository builds an in-memory profile store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		bases:      make(map[string]BaseProfile),
		roles:      make(map[string]Role),
		extensions: make(map[string]Extension),
	}
}

func (r *memoryRepository) CreateBase(_ context.Context, base BaseProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bases[base.ID]; exists {
		return errors.New("profile exists")
	}
	r.bases[base.ID] = base
	return nil
}

func (r *memoryRepository) GetBase(_ context.Context, userID string) (BaseProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	base, ok := r.bases[userID]
	if !ok {
		return BaseProfile{}, ErrNotFound
	}
	return base, nil
}

func (r *memoryRepository) UpdateBase(_ context.Context, userID string, update BaseUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	base, ok := r.bases[userID]
	if !ok {
		return ErrNotFound
	}
	if update.FullName != nil {
		base.FullName = *update.FullName
	}
	if update.Phone != nil {
		base.Phone = *update.Phone
	}
	if update.Address != nil {
		base.Address = *update.Address
	}
	r.bases[userID] = base
	return nil
}

func (r *memoryRepository) GetRole(_ context.Context, userID string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[userID]
	if !ok {
		return "", ErrRoleNotAssigned
	}
	return role, nil
}

func (r *memoryRepository) AssignRole(_ context.Context, userID string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[userID] = role
	return nil
}

func (r *memoryRepository) GetExtension(_ context.Context, userID string, role Role) (Extension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if role == RoleAdmin {
		return nil, nil
	}
	ext, ok := r.extensions[userID]
	if !ok {
		return nil, ErrProfileIncomplete
	}
	if ext.Role() != role {
		return nil, ErrProfileIncomplete
	}
	return ext, nil
}

func (r *memoryRepository) UpsertExtension(_ context.Context, userID string, ext Extension) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions[userID] = ext
	return nil
}
