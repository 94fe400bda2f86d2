package lead

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/keystay/keystay/internal/wizard"
	"github.com/keystay/keystay/internal/wizard/rules"
)

// CreateAction maps a completed owner-onboarding form onto one owner_leads row.
type CreateAction struct {
	repo Repository
}

// NewCreateAction builds the owner-lead terminal action.
func NewCreateAction(repo Repository) *CreateAction {
	return &CreateAction{repo: repo}
}

// Execute inserts the lead record and returns its receipt.
func (a *CreateAction) Execute(ctx context.Context, form wizard.Form) (wizard.Receipt, error) {
	var rent int64
	if v := form["expected_rent"]; v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return wizard.Receipt{}, fmt.Errorf("lead: bad expected_rent %q", v)
		}
		rent = parsed
	}

	l := OwnerLead{
		ID:           uuid.New().String(),
		OwnerID:      form["owner_id"],
		FullName:     form["full_name"],
		Phone:        rules.NormalizePhone(form["phone"]),
		Email:        form["email"],
		City:         form["city"],
		PropertyType: form["property_type"],
		ExpectedRent: rent,
		Status:       StatusNew,
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.repo.Create(ctx, l); err != nil {
		return wizard.Receipt{}, fmt.Errorf("lead: create record: %w", err)
	}

	return wizard.Receipt{RecordID: l.ID, Record: "owner_lead"}, nil
}
