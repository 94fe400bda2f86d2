package lead

import "time"

const (
	// StatusNew marks an unworked owner lead.
	StatusNew = "new"
	// StatusContacted marks a lead the team has reached out to.
	StatusContacted = "contacted"
)

// OwnerLead is an owner-onboarding enquiry captured before the owner lists a
// property.
type OwnerLead struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	City         string    `json:"city"`
	PropertyType string    `json:"property_type"`
	ExpectedRent int64     `json:"expected_rent"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
