package flows

import (
	"context"
	"fmt"

	"github.com/keystay/keystay/internal/profile"
	"github.com/keystay/keystay/internal/wizard"
)

// VendorRegisterAction provisions the vendor role and extension row from a
// completed registration form. The record it creates is the extension itself,
// so the receipt carries the vendor's user id.
type VendorRegisterAction struct {
	profiles *profile.Service
}

// NewVendorRegisterAction builds the vendor-registration terminal action.
func NewVendorRegisterAction(profiles *profile.Service) *VendorRegisterAction {
	return &VendorRegisterAction{profiles: profiles}
}

// Execute assigns the vendor role and writes the extension row.
func (a *VendorRegisterAction) Execute(ctx context.Context, form wizard.Form) (wizard.Receipt, error) {
	userID := form["vendor_id"]
	if userID == "" {
		return wizard.Receipt{}, fmt.Errorf("flows: vendor registration without vendor_id")
	}

	if err := a.profiles.AssignRole(ctx, userID, profile.RoleVendor); err != nil {
		return wizard.Receipt{}, fmt.Errorf("flows: assign vendor role: %w", err)
	}

	businessName := form["business_name"]
	serviceTypes := form["service_types"]
	serviceAreas := form["service_areas"]
	available := true
	update := profile.VendorExtUpdate{
		BusinessName: &businessName,
		ServiceTypes: &serviceTypes,
		ServiceAreas: &serviceAreas,
		Available:    &available,
	}
	if err := a.profiles.SaveExtension(ctx, userID, update); err != nil {
		return wizard.Receipt{}, fmt.Errorf("flows: save vendor extension: %w", err)
	}

	return wizard.Receipt{RecordID: userID, Record: "vendor_profile"}, nil
}
