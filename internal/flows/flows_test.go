package flows

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystay/keystay/internal/booking"
	"github.com/keystay/keystay/internal/lead"
	"github.com/keystay/keystay/internal/logging"
	"github.com/keystay/keystay/internal/notification"
	"github.com/keystay/keystay/internal/profile"
	"github.com/keystay/keystay/internal/ticket"
	"github.com/keystay/keystay/internal/visit"
	"github.com/keystay/keystay/internal/wizard"
)

func newTestService(t *testing.T) (*wizard.Service, *profile.Service, booking.Repository) {
	t.Helper()
	profiles := profile.NewService(profile.NewMemoryRepository())
	bookings := booking.NewMemoryRepository()
	defs := All(Deps{
		Bookings: bookings,
		Leads:    lead.NewMemoryRepository(),
		Tickets:  ticket.NewMemoryRepository(),
		Visits:   visit.NewMemoryRepository(),
		Profiles: profiles,
	})
	svc := wizard.NewService(defs, wizard.NewMemoryStore(), notification.NewLoggerNotifier(logging.Discard()), logging.Discard(), time.Hour, 5*time.Second)
	return svc, profiles, bookings
}

func TestAllRegistersEveryFlow(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, kind := range []string{KindBooking, KindOwnerOnboarding, KindVendorRegistration, KindMaintenance, KindVisit} {
		_, err := svc.Definition(kind)
		assert.NoError(t, err, kind)
	}
}

func TestBookingFlowEndToEnd(t *testing.T) {
	svc, _, bookings := newTestService(t)
	ctx := context.Background()
	tenantID := uuid.New().String()
	propertyID := uuid.New().String()

	st, err := svc.Start(ctx, KindBooking, tenantID, wizard.Form{
		"tenant_id":   tenantID,
		"property_id": propertyID,
	})
	require.NoError(t, err)

	moveIn := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	st, err = svc.SetFields(ctx, st.SessionID, tenantID, wizard.Form{
		"full_name":    "Asha Rao",
		"email":        "asha@example.com",
		"phone":        "+91-98765 43210",
		"move_in_date": moveIn,
	})
	require.NoError(t, err)

	st, err = svc.Advance(ctx, st.SessionID, tenantID)
	require.NoError(t, err)
	require.Equal(t, "terms", st.CurrentStepID)

	st, err = svc.SetFields(ctx, st.SessionID, tenantID, wizard.Form{
		"duration_months": "11",
		"monthly_rent":    "18000",
	})
	require.NoError(t, err)
	st, err = svc.Advance(ctx, st.SessionID, tenantID)
	require.NoError(t, err)
	require.Equal(t, "review", st.CurrentStepID)

	receipt, st, err := svc.Submit(ctx, st.SessionID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, wizard.PhaseComplete, st.Phase)
	assert.Equal(t, "booking", receipt.Record)

	rows, err := bookings.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9876543210", rows[0].Phone)
	assert.Equal(t, moveIn, rows[0].MoveInDate.Format("2006-01-02"))
}

func TestVendorRegistrationProvisionsExtension(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	ctx := context.Background()
	vendorID := uuid.New().String()

	require.NoError(t, profiles.ProvisionBase(ctx, vendorID, "Ravi Kumar", "ravi@example.com", "9000000000"))

	st, err := svc.Start(ctx, KindVendorRegistration, vendorID, wizard.Form{"vendor_id": vendorID})
	require.NoError(t, err)

	st, err = svc.SetFields(ctx, st.SessionID, vendorID, wizard.Form{"business_name": "Kumar Repairs"})
	require.NoError(t, err)
	st, err = svc.Advance(ctx, st.SessionID, vendorID)
	require.NoError(t, err)

	// The categories gate blocks until at least one service type is picked.
	before := st.CurrentStepID
	st, err = svc.Advance(ctx, st.SessionID, vendorID)
	require.NoError(t, err)
	require.Equal(t, before, st.CurrentStepID)

	st, err = svc.SetFields(ctx, st.SessionID, vendorID, wizard.Form{"service_types": "plumbing, plumbing, electrical"})
	require.NoError(t, err)
	st, err = svc.Advance(ctx, st.SessionID, vendorID)
	require.NoError(t, err)

	st, err = svc.SetFields(ctx, st.SessionID, vendorID, wizard.Form{"service_areas": "Kothrud, Baner"})
	require.NoError(t, err)

	receipt, st, err := svc.Submit(ctx, st.SessionID, vendorID)
	require.NoError(t, err)
	assert.Equal(t, wizard.PhaseComplete, st.Phase)
	assert.Equal(t, "vendor_profile", receipt.Record)
	assert.Equal(t, vendorID, receipt.RecordID)

	rp, err := profiles.Load(ctx, vendorID)
	require.NoError(t, err)
	require.Equal(t, profile.RoleVendor, rp.Role)
	ext, ok := rp.Ext.(profile.VendorExt)
	require.True(t, ok)
	assert.Equal(t, "Kumar Repairs", ext.BusinessName)
	// Duplicate categories are preserved as entered.
	assert.Equal(t, []string{"plumbing", "plumbing", "electrical"}, ext.ServiceTypes)
	assert.True(t, ext.Available)
}

func TestVisitFlowRejectsPastDate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	visitorID := uuid.New().String()

	st, err := svc.Start(ctx, KindVisit, visitorID, wizard.Form{"visitor_id": visitorID})
	require.NoError(t, err)

	st, err = svc.SetFields(ctx, st.SessionID, visitorID, wizard.Form{"property_id": uuid.New().String()})
	require.NoError(t, err)
	st, err = svc.Advance(ctx, st.SessionID, visitorID)
	require.NoError(t, err)

	st, err = svc.SetFields(ctx, st.SessionID, visitorID, wizard.Form{
		"visit_date": "2020-01-01",
		"slot":       "morning",
	})
	require.NoError(t, err)

	_, _, err = svc.Submit(ctx, st.SessionID, visitorID)
	assert.ErrorIs(t, err, wizard.ErrNotReady)
}
