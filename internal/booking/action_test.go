package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystay/keystay/internal/wizard"
)

func TestCreateActionMapsFormToRecord(t *testing.T) {
	repo := NewMemoryRepository()
	action := NewCreateAction(repo)

	receipt, err := action.Execute(context.Background(), wizard.Form{
		"property_id":     "prop-1",
		"tenant_id":       "user-1",
		"full_name":       "Asha Rao",
		"phone":           "(987) 654-3210",
		"email":           "asha@example.com",
		"move_in_date":    "2027-04-01",
		"duration_months": "11",
		"monthly_rent":    "18500",
	})
	require.NoError(t, err)
	assert.Equal(t, "booking", receipt.Record)

	got, err := repo.ListByTenant(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, receipt.RecordID, got[0].ID)
	assert.Equal(t, "9876543210", got[0].Phone, "phone must be stored as bare digits")
	assert.Equal(t, "2027-04-01", got[0].MoveInDate.Format("2006-01-02"))
	assert.Equal(t, int64(18500), got[0].MonthlyRent)
	assert.Equal(t, StatusPending, got[0].Status)
}

func TestCreateActionRejectsBadDate(t *testing.T) {
	action := NewCreateAction(NewMemoryRepository())

	_, err := action.Execute(context.Background(), wizard.Form{"move_in_date": "01-04-2027"})
	assert.Error(t, err)
}

func TestCreateActionDefaultsDuration(t *testing.T) {
	repo := NewMemoryRepository()
	action := NewCreateAction(repo)

	_, err := action.Execute(context.Background(), wizard.Form{
		"tenant_id":    "user-2",
		"move_in_date": "2027-04-01",
	})
	require.NoError(t, err)

	got, err := repo.ListByTenant(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, defaultDurationMonths, got[0].DurationMonths)
}
