package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/keystay/keystay/internal/wizard"
	"github.com/keystay/keystay/internal/wizard/rules"
)

// CreateAction maps a completed maintenance form onto one maintenance_tickets row.
type CreateAction struct {
	repo Repository
}

// NewCreateAction builds the maintenance-ticket terminal action.
func NewCreateAction(repo Repository) *CreateAction {
	return &CreateAction{repo: repo}
}

// Execute inserts the ticket record and returns its receipt.
func (a *CreateAction) Execute(ctx context.Context, form wizard.Form) (wizard.Receipt, error) {
	preferred, err := time.Parse(rules.DateLayout, form["preferred_date"])
	if err != nil {
		return wizard.Receipt{}, fmt.Errorf("ticket: bad preferred_date %q: %w", form["preferred_date"], err)
	}

	t := MaintenanceTicket{
		ID:            uuid.New().String(),
		TenantID:      form["tenant_id"],
		PropertyID:    form["property_id"],
		Category:      form["category"],
		Description:   form["description"],
		PreferredDate: preferred,
		Status:        StatusOpen,
		CreatedAt:     time.Now().UTC(),
	}

	if err := a.repo.Create(ctx, t); err != nil {
		return wizard.Receipt{}, fmt.Errorf("ticket: create record: %w", err)
	}

	return wizard.Receipt{RecordID: t.ID, Record: "maintenance_ticket"}, nil
}
