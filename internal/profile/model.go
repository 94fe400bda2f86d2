package profile

import "time"

// Role identifies which extension table backs a profile.
type Role string

const (
	RoleTenant     Role = "tenant"
	RoleOwner      Role = "owner"
	RoleAgent      Role = "agent"
	RoleVendor     Role = "vendor"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role names a known variant.
func (r Role) Valid() bool {
	switch r {
	case RoleTenant, RoleOwner, RoleAgent, RoleVendor, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// BaseProfile holds the fields shared by every role.
type BaseProfile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Verified  bool      `json:"is_verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Extension is the role-specific half of a profile. Exactly one variant is
// populated per profile, selected by the assigned role. Admin carries no
// extension table and loads with a nil Extension.
type Extension interface {
	Role() Role
}

// TenantExt holds tenant-only fields.
type TenantExt struct {
	EmergencyContact string `json:"emergency_contact"`
	WalletBalance    int64  `json:"wallet_balance"`
}

func (TenantExt) Role() Role { return RoleTenant }

// OwnerExt holds owner payout details.
type OwnerExt struct {
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	PANNumber         string `json:"pan_number"`
	TotalEarnings     int64  `json:"total_earnings"`
}

func (OwnerExt) Role() Role { return RoleOwner }

// AgentExt holds verification-agent workload fields.
type AgentExt struct {
	AssignedAreas          []string `json:"assigned_areas"`
	CompletedVerifications int      `json:"completed_verifications"`
	PendingVerifications   int      `json:"pending_verifications"`
	Rating                 float64  `json:"rating"`
}

func (AgentExt) Role() Role { return RoleAgent }

// VendorExt holds service-vendor business fields.
type VendorExt struct {
	BusinessName string   `json:"business_name"`
	ServiceTypes []string `json:"service_types"`
	ServiceAreas []string `json:"service_areas"`
	Rating       float64  `json:"rating"`
	TotalJobs    int      `json:"total_jobs"`
	Available    bool     `json:"is_available"`
}

func (VendorExt) Role() Role { return RoleVendor }

// TechnicianExt holds technician skill and workload fields.
type TechnicianExt struct {
	Specializations []string `json:"specializations"`
	ServiceAreas    []string `json:"service_areas"`
	Rating          float64  `json:"rating"`
	CompletedJobs   int      `json:"completed_jobs"`
	Available       bool     `json:"is_available"`
}

func (TechnicianExt) Role() Role { return RoleTechnician }

// RoleProfile merges a base profile with its role extension.
type RoleProfile struct {
	Base BaseProfile `json:"base"`
	Role Role        `json:"role"`
	Ext  Extension   `json:"extension,omitempty"`
}

// zeroExtension returns the empty variant for a role, used when the extension
// row has not been provisioned yet. Rows are created lazily on first save.
func zeroExtension(role Role) Extension {
	switch role {
	case RoleTenant:
		return TenantExt{}
	case RoleOwner:
		return OwnerExt{}
	case RoleAgent:
		return AgentExt{}
	case RoleVendor:
		return VendorExt{}
	case RoleTechnician:
		return TechnicianExt{}
	default:
		return nil
	}
}
