package listing

import "time"

const (
	// StatusAvailable means the property can be booked or visited.
	StatusAvailable = "available"
	// StatusBooked means a tenant currently occupies the property.
	StatusBooked = "booked"
	// StatusInactive means the owner withdrew the property.
	StatusInactive = "inactive"
)

// Listing represents a property offered for rent.
type Listing struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Area        string    `json:"area"`
	City        string    `json:"city"`
	MonthlyRent int64     `json:"monthly_rent"`
	Deposit     int64     `json:"deposit"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
