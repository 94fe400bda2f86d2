// Package flows declares the wizard definitions the marketplace ships:
// ordered step tables, their gates, and the terminal action each submit
// executes.
package flows

import (
	"github.com/keystay/keystay/internal/booking"
	"github.com/keystay/keystay/internal/lead"
	"github.com/keystay/keystay/internal/profile"
	"github.com/keystay/keystay/internal/ticket"
	"github.com/keystay/keystay/internal/visit"
	"github.com/keystay/keystay/internal/wizard"
	"github.com/keystay/keystay/internal/wizard/rules"
)

// Wizard kinds.
const (
	KindBooking            = "booking"
	KindOwnerOnboarding    = "owner-onboarding"
	KindVendorRegistration = "vendor-registration"
	KindMaintenance        = "maintenance"
	KindVisit              = "visit"
)

// Deps are the domain services the terminal actions write through.
type Deps struct {
	Bookings booking.Repository
	Leads    lead.Repository
	Tickets  ticket.Repository
	Visits   visit.Repository
	Profiles *profile.Service
}

// All returns every wizard definition wired to its terminal action.
func All(deps Deps) []wizard.Definition {
	return []wizard.Definition{
		Booking(booking.NewCreateAction(deps.Bookings)),
		OwnerOnboarding(lead.NewCreateAction(deps.Leads)),
		VendorRegistration(NewVendorRegisterAction(deps.Profiles)),
		Maintenance(ticket.NewCreateAction(deps.Tickets)),
		Visit(visit.NewCreateAction(deps.Visits)),
	}
}

// Booking is the tenant flow for renting a property.
func Booking(action wizard.Action) wizard.Definition {
	return wizard.Definition{
		Kind:  KindBooking,
		Title: "Book a property",
		Steps: []wizard.Step{
			{
				ID:    "details",
				Label: "Your details",
				Order: 0,
				Validate: rules.All(
					rules.Required("full_name", "email", "phone", "move_in_date"),
					rules.Email("email"),
					rules.Phone("phone"),
					rules.FutureDate("move_in_date"),
				),
			},
			{
				ID:       "terms",
				Label:    "Rental terms",
				Order:    1,
				Validate: rules.Required("duration_months", "monthly_rent"),
			},
			{
				ID:       "review",
				Label:    "Review and confirm",
				Order:    2,
				Validate: rules.Always(),
			},
		},
		Action: action,
	}
}

// OwnerOnboarding is the flow that captures a prospective owner's property.
func OwnerOnboarding(action wizard.Action) wizard.Definition {
	return wizard.Definition{
		Kind:  KindOwnerOnboarding,
		Title: "List your property",
		Steps: []wizard.Step{
			{
				ID:    "contact",
				Label: "Contact details",
				Order: 0,
				Validate: rules.All(
					rules.Required("full_name", "email", "phone"),
					rules.Email("email"),
					rules.Phone("phone"),
				),
			},
			{
				ID:       "property",
				Label:    "Property basics",
				Order:    1,
				Validate: rules.Required("city", "property_type", "expected_rent"),
			},
			{
				ID:       "review",
				Label:    "Review and submit",
				Order:    2,
				Validate: rules.Always(),
			},
		},
		Action: action,
	}
}

// VendorRegistration is the flow that onboards a service vendor.
func VendorRegistration(action wizard.Action) wizard.Definition {
	return wizard.Definition{
		Kind:  KindVendorRegistration,
		Title: "Register as a vendor",
		Steps: []wizard.Step{
			{
				ID:       "business",
				Label:    "Business details",
				Order:    0,
				Validate: rules.Required("business_name"),
			},
			{
				ID:       "categories",
				Label:    "Service categories",
				Order:    1,
				Validate: rules.MinSelected("service_types", 1),
			},
			{
				ID:       "areas",
				Label:    "Service areas",
				Order:    2,
				Validate: rules.Required("service_areas"),
			},
		},
		Action: action,
	}
}

// Maintenance is the tenant flow for raising a repair request.
func Maintenance(action wizard.Action) wizard.Definition {
	return wizard.Definition{
		Kind:  KindMaintenance,
		Title: "Request maintenance",
		Steps: []wizard.Step{
			{
				ID:       "issue",
				Label:    "Describe the issue",
				Order:    0,
				Validate: rules.Required("category", "description"),
			},
			{
				ID:    "schedule",
				Label: "Preferred date",
				Order: 1,
				Validate: rules.All(
					rules.Required("preferred_date"),
					rules.FutureDate("preferred_date"),
				),
			},
		},
		Action: action,
	}
}

// Visit is the flow for scheduling a property viewing.
func Visit(action wizard.Action) wizard.Definition {
	return wizard.Definition{
		Kind:  KindVisit,
		Title: "Schedule a visit",
		Steps: []wizard.Step{
			{
				ID:       "property",
				Label:    "Pick a property",
				Order:    0,
				Validate: rules.Required("property_id"),
			},
			{
				ID:    "slot",
				Label: "Date and time",
				Order: 1,
				Validate: rules.All(
					rules.Required("visit_date", "slot"),
					rules.FutureDate("visit_date"),
				),
			},
		},
		Action: action,
	}
}
