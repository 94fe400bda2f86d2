package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystay/keystay/internal/booking"
	"github.com/keystay/keystay/internal/lead"
	"github.com/keystay/keystay/internal/listing"
	"github.com/keystay/keystay/internal/profile"
	"github.com/keystay/keystay/internal/ticket"
	"github.com/keystay/keystay/internal/visit"
)

type fixture struct {
	svc      *Service
	profiles *profile.Service
	bookings booking.Repository
	tickets  ticket.Repository
	listings *listing.MemoryRepository
	leads    lead.Repository
}

func newFixture() fixture {
	profiles := profile.NewService(profile.NewMemoryRepository())
	bookings := booking.NewMemoryRepository()
	leads := lead.NewMemoryRepository()
	tickets := ticket.NewMemoryRepository()
	visits := visit.NewMemoryRepository()
	listings := listing.NewMemoryRepository()
	return fixture{
		svc:      NewService(profiles, bookings, leads, tickets, visits, listings),
		profiles: profiles,
		bookings: bookings,
		tickets:  tickets,
		listings: listings,
		leads:    leads,
	}
}

func provision(t *testing.T, f fixture, role profile.Role) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.profiles.ProvisionBase(context.Background(), id, "Test User", id+"@example.com", "9000000000"))
	require.NoError(t, f.profiles.AssignRole(context.Background(), id, role))
	return id
}

func TestBuildWithoutRoleReturnsRoleNotAssigned(t *testing.T) {
	f := newFixture()
	id := uuid.New().String()
	require.NoError(t, f.profiles.ProvisionBase(context.Background(), id, "New User", id+"@example.com", "9000000000"))

	_, err := f.svc.Build(context.Background(), id)
	assert.ErrorIs(t, err, profile.ErrRoleNotAssigned)
}

func TestTenantDashboard(t *testing.T) {
	f := newFixture()
	tenantID := provision(t, f, profile.RoleTenant)

	require.NoError(t, f.bookings.Create(context.Background(), booking.Booking{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Status:   booking.StatusPending,
	}))
	require.NoError(t, f.tickets.Create(context.Background(), ticket.MaintenanceTicket{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Category: "plumbing",
		Status:   ticket.StatusOpen,
	}))

	view, err := f.svc.Build(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleTenant, view.Profile.Role)
	assert.Len(t, view.Bookings, 1)
	assert.Len(t, view.Tickets, 1)
	assert.Empty(t, view.Listings)
}

func TestOwnerDashboardJoinsBookingsOnProperties(t *testing.T) {
	f := newFixture()
	ownerID := provision(t, f, profile.RoleOwner)

	propertyID := uuid.New().String()
	require.NoError(t, f.listings.Create(context.Background(), listing.Listing{
		ID:        propertyID,
		OwnerID:   ownerID,
		Title:     "2BHK",
		Status:    listing.StatusAvailable,
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, f.bookings.Create(context.Background(), booking.Booking{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		TenantID:   uuid.New().String(),
		Status:     booking.StatusPending,
	}))
	require.NoError(t, f.leads.Create(context.Background(), lead.OwnerLead{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Status:  lead.StatusNew,
	}))

	view, err := f.svc.Build(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, view.Listings, 1)
	assert.Len(t, view.Leads, 1)
	assert.Len(t, view.Bookings, 1, "bookings on owned properties")
}

func TestTechnicianDashboardShowsAssignedWork(t *testing.T) {
	f := newFixture()
	techID := provision(t, f, profile.RoleTechnician)

	require.NoError(t, f.profiles.SaveExtension(context.Background(), techID, profile.TechnicianExtUpdate{
		Specializations: strPtr("wiring, wiring"),
	}))
	require.NoError(t, f.tickets.Create(context.Background(), ticket.MaintenanceTicket{
		ID:         uuid.New().String(),
		TenantID:   uuid.New().String(),
		AssigneeID: techID,
		Status:     ticket.StatusAssigned,
	}))

	view, err := f.svc.Build(context.Background(), techID)
	require.NoError(t, err)
	assert.Len(t, view.Tickets, 1)
	assert.Contains(t, view.Counters, "completed_jobs")
}

func strPtr(s string) *string { return &s }
