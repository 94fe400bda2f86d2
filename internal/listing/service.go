package listing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service exposes listing operations.
type Service struct {
	repo Repository
}

// NewService builds a listing service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to publish a listing.
type CreateInput struct {
	OwnerID     string
	Title       string
	Address     string
	Area        string
	City        string
	MonthlyRent int64
	Deposit     int64
}

// Create publishes a new available listing for the owner.
func (s *Service) Create(ctx context.Context, input CreateInput) (Listing, error) {
	if _, err := uuid.Parse(input.OwnerID); err != nil {
		return Listing{}, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return Listing{}, errors.New("title is required")
	}
	if input.MonthlyRent <= 0 {
		return Listing{}, errors.New("monthly rent must be positive")
	}

	l := Listing{
		ID:          uuid.New().String(),
		OwnerID:     input.OwnerID,
		Title:       strings.TrimSpace(input.Title),
		Address:     strings.TrimSpace(input.Address),
		Area:        strings.TrimSpace(input.Area),
		City:        strings.TrimSpace(input.City),
		MonthlyRent: input.MonthlyRent,
		Deposit:     input.Deposit,
		Status:      StatusAvailable,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return Listing{}, err
	}
	return l, nil
}

// Get retrieves listing metadata.
func (s *Service) Get(ctx context.Context, id string) (Listing, error) {
	return s.repo.Get(ctx, id)
}

// ListByOwner returns all listings owned by one account.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Listing, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Search returns available listings, optionally filtered by city.
func (s *Service) Search(ctx context.Context, city string) ([]Listing, error) {
	return s.repo.ListAvailable(ctx, strings.TrimSpace(city))
}

// MarkBooked flags a listing as occupied by a tenant.
func (s *Service) MarkBooked(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusBooked)
}

// Deactivate withdraws a listing from the marketplace.
func (s *Service) Deactivate(ctx context.Context, id, ownerID string) error {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.OwnerID != ownerID {
		return ErrNotFound
	}
	return s.repo.UpdateStatus(ctx, id, StatusInactive)
}
