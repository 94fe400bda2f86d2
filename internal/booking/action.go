package booking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/keystay/keystay/internal/wizard"
	"github.com/keystay/keystay/internal/wizard/rules"
)

const defaultDurationMonths = 11

// CreateAction maps a completed booking-wizard form onto one bookings row.
// The field mapping is fixed against the external schema: move_in_date is
// yyyy-mm-dd, phone is a bare 10-digit string.
type CreateAction struct {
	repo Repository
}

// NewCreateAction builds the booking terminal action.
func NewCreateAction(repo Repository) *CreateAction {
	return &CreateAction{repo: repo}
}

// Execute inserts the booking record and returns its receipt.
func (a *CreateAction) Execute(ctx context.Context, form wizard.Form) (wizard.Receipt, error) {
	moveIn, err := time.Parse(rules.DateLayout, form["move_in_date"])
	if err != nil {
		return wizard.Receipt{}, fmt.Errorf("booking: bad move_in_date %q: %w", form["move_in_date"], err)
	}

	duration := defaultDurationMonths
	if v := form["duration_months"]; v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			return wizard.Receipt{}, fmt.Errorf("booking: bad duration_months %q", v)
		}
		duration = d
	}

	var rent int64
	if v := form["monthly_rent"]; v != "" {
		rent, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return wizard.Receipt{}, fmt.Errorf("booking: bad monthly_rent %q", v)
		}
	}

	b := Booking{
		ID:             uuid.New().String(),
		PropertyID:     form["property_id"],
		TenantID:       form["tenant_id"],
		FullName:       form["full_name"],
		Phone:          rules.NormalizePhone(form["phone"]),
		Email:          form["email"],
		MoveInDate:     moveIn,
		DurationMonths: duration,
		MonthlyRent:    rent,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := a.repo.Create(ctx, b); err != nil {
		return wizard.Receipt{}, fmt.Errorf("booking: create record: %w", err)
	}

	return wizard.Receipt{RecordID: b.ID, Record: "booking"}, nil
}
