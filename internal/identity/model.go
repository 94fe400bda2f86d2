package identity

import "time"

// Account represents a registered marketplace user across all roles.
type Account struct {
	ID           string
	Email        string
	Phone        string
	FullName     string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Credentials request structure.
type Credentials struct {
	Email    string
	Password string
	Phone    string
	FullName string
}
