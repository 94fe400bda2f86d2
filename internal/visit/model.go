package visit

import "time"

const (
	// StatusScheduled marks an upcoming visit.
	StatusScheduled = "scheduled"
	// StatusCompleted marks a visit that took place.
	StatusCompleted = "completed"
	// StatusCancelled marks a withdrawn visit.
	StatusCancelled = "cancelled"
)

// PropertyVisit is a scheduled viewing of a listed property.
type PropertyVisit struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	VisitorID  string    `json:"visitor_id"`
	VisitDate  time.Time `json:"visit_date"`
	Slot       string    `json:"slot"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
