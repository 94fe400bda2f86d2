package booking

import "time"

const (
	// StatusPending marks a booking awaiting owner confirmation.
	StatusPending = "pending"
	// StatusConfirmed marks an owner-accepted booking.
	StatusConfirmed = "confirmed"
	// StatusCancelled marks a withdrawn booking.
	StatusCancelled = "cancelled"
)

// Booking is one tenant's request to move into a listed property.
type Booking struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	TenantID       string    `json:"tenant_id"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	MoveInDate     time.Time `json:"move_in_date"`
	DurationMonths int       `json:"duration_months"`
	MonthlyRent    int64     `json:"monthly_rent"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
