package booking

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	bookings []Booking
}

// NewMemoryRepository builds an in-memory booking store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, b Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *memoryRepository) ListByTenant(_ context.Context, tenantID string) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Booking
	for _, b := range r.bookings {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryRepository) ListByProperties(_ context.Context, propertyIDs []string) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		ids[id] = true
	}
	var out []Booking
	for _, b := range r.bookings {
		if ids[b.PropertyID] {
			out = append(out, b)
		}
	}
	return out, nil
}
