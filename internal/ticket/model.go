package ticket

import "time"

const (
	// StatusOpen marks a freshly raised ticket.
	StatusOpen = "open"
	// StatusAssigned marks a ticket handed to a technician.
	StatusAssigned = "assigned"
	// StatusResolved marks a completed repair.
	StatusResolved = "resolved"
)

// MaintenanceTicket is a tenant-raised repair request against a property.
type MaintenanceTicket struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	PropertyID    string    `json:"property_id"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	PreferredDate time.Time `json:"preferred_date"`
	AssigneeID    string    `json:"assignee_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
