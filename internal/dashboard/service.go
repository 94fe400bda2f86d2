// Package dashboard assembles the role-conditional landing view: the caller's
// profile joined with the records their role works with.
package dashboard

import (
	"context"

	"github.com/keystay/keystay/internal/booking"
	"github.com/keystay/keystay/internal/lead"
	"github.com/keystay/keystay/internal/listing"
	"github.com/keystay/keystay/internal/profile"
	"github.com/keystay/keystay/internal/ticket"
	"github.com/keystay/keystay/internal/visit"
)

// Service reads across the domain repositories to build one dashboard per role.
type Service struct {
	profiles *profile.Service
	bookings booking.Repository
	leads    lead.Repository
	tickets  ticket.Repository
	visits   visit.Repository
	listings listing.Repository
}

// NewService builds a dashboard service.
func NewService(profiles *profile.Service, bookings booking.Repository, leads lead.Repository, tickets ticket.Repository, visits visit.Repository, listings listing.Repository) *Service {
	return &Service{
		profiles: profiles,
		bookings: bookings,
		leads:    leads,
		tickets:  tickets,
		visits:   visits,
		listings: listings,
	}
}

// View is the dashboard payload. Only the sections matching the caller's role
// are populated.
type View struct {
	Profile  profile.RoleProfile        `json:"profile"`
	Bookings []booking.Booking          `json:"bookings,omitempty"`
	Visits   []visit.PropertyVisit      `json:"visits,omitempty"`
	Tickets  []ticket.MaintenanceTicket `json:"tickets,omitempty"`
	Listings []listing.Listing          `json:"listings,omitempty"`
	Leads    []lead.OwnerLead           `json:"leads,omitempty"`
	Counters map[string]int             `json:"counters,omitempty"`
}

// Build loads the caller's profile and the rows their role works with. A user
// who has not picked a role yet gets ErrRoleNotAssigned back unchanged.
func (s *Service) Build(ctx context.Context, userID string) (View, error) {
	rp, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	v := View{Profile: rp}

	switch rp.Role {
	case profile.RoleTenant:
		return s.tenantView(ctx, userID, v)
	case profile.RoleOwner:
		return s.ownerView(ctx, userID, v)
	case profile.RoleAgent:
		ext, _ := rp.Ext.(profile.AgentExt)
		v.Counters = map[string]int{
			"completed_verifications": ext.CompletedVerifications,
			"pending_verifications":   ext.PendingVerifications,
		}
		return v, nil
	case profile.RoleVendor, profile.RoleTechnician:
		return s.workerView(ctx, userID, v)
	case profile.RoleAdmin:
		return s.adminView(ctx, v)
	default:
		return v, nil
	}
}

func (s *Service) tenantView(ctx context.Context, userID string, v View) (View, error) {
	var err error
	if v.Bookings, err = s.bookings.ListByTenant(ctx, userID); err != nil {
		return View{}, err
	}
	if v.Visits, err = s.visits.ListByVisitor(ctx, userID); err != nil {
		return View{}, err
	}
	if v.Tickets, err = s.tickets.ListByTenant(ctx, userID); err != nil {
		return View{}, err
	}
	return v, nil
}

func (s *Service) ownerView(ctx context.Context, userID string, v View) (View, error) {
	var err error
	if v.Listings, err = s.listings.ListByOwner(ctx, userID); err != nil {
		return View{}, err
	}
	if v.Leads, err = s.leads.ListByOwner(ctx, userID); err != nil {
		return View{}, err
	}
	propertyIDs := make([]string, 0, len(v.Listings))
	for _, l := range v.Listings {
		propertyIDs = append(propertyIDs, l.ID)
	}
	if len(propertyIDs) > 0 {
		if v.Bookings, err = s.bookings.ListByProperties(ctx, propertyIDs); err != nil {
			return View{}, err
		}
	}
	return v, nil
}

func (s *Service) workerView(ctx context.Context, userID string, v View) (View, error) {
	var err error
	if v.Tickets, err = s.tickets.ListByAssignee(ctx, userID); err != nil {
		return View{}, err
	}
	v.Counters = workerCounters(v.Profile.Ext)
	return v, nil
}

func workerCounters(ext profile.Extension) map[string]int {
	switch e := ext.(type) {
	case profile.VendorExt:
		return map[string]int{"total_jobs": e.TotalJobs}
	case profile.TechnicianExt:
		return map[string]int{"completed_jobs": e.CompletedJobs}
	default:
		return nil
	}
}

func (s *Service) adminView(ctx context.Context, v View) (View, error) {
	available, err := s.listings.ListAvailable(ctx, "")
	if err != nil {
		return View{}, err
	}
	v.Counters = map[string]int{"available_listings": len(available)}
	return v, nil
}
