package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/keystay/keystay/internal/wizard"
	"github.com/keystay/keystay/internal/wizard/rules"
)

// CreateAction maps a completed visit-scheduling form onto one property_visits row.
type CreateAction struct {
	repo Repository
}

// NewCreateAction builds the visit terminal action.
func NewCreateAction(repo Repository) *CreateAction {
	return &CreateAction{repo: repo}
}

// Execute inserts the visit record and returns its receipt.
func (a *CreateAction) Execute(ctx context.Context, form wizard.Form) (wizard.Receipt, error) {
	visitDate, err := time.Parse(rules.DateLayout, form["visit_date"])
	if err != nil {
		return wizard.Receipt{}, fmt.Errorf("visit: bad visit_date %q: %w", form["visit_date"], err)
	}

	v := PropertyVisit{
		ID:         uuid.New().String(),
		PropertyID: form["property_id"],
		VisitorID:  form["visitor_id"],
		VisitDate:  visitDate,
		Slot:       form["slot"],
		Status:     StatusScheduled,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.repo.Create(ctx, v); err != nil {
		return wizard.Receipt{}, fmt.Errorf("visit: create record: %w", err)
	}

	return wizard.Receipt{RecordID: v.ID, Record: "property_visit"}, nil
}
