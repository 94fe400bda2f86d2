package listing

import (
	"context"
	"sync"
)

// MemoryRepository stores listings in memory for tests and local development.
type MemoryRepository struct {
	mu       sync.RWMutex
	listings map[string]Listing
}

// NewMemoryRepository builds an empty in-memory listing repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{listings: make(map[string]Listing)}
}

// Create stores a listing record.
func (r *MemoryRepository) Create(_ context.Context, l Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID] = l
	return nil
}

// Get fetches one listing by id.
func (r *MemoryRepository) Get(_ context.Context, id string) (Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listings[id]
	if !ok {
		return Listing{}, ErrNotFound
	}
	return l, nil
}

// ListByOwner fetches all listings owned by one account.
func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Listing
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ListAvailable fetches bookable listings, optionally filtered by city.
func (r *MemoryRepository) ListAvailable(_ context.Context, city string) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Listing
	for _, l := range r.listings {
		if l.Status != StatusAvailable {
			continue
		}
		if city != "" && l.City != city {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// UpdateStatus transitions a listing's status.
func (r *MemoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	r.listings[id] = l
	return nil
}
