package models

import "time"

// User roles. Admins may mutate the ledger; everyone else is read-only.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User represents a login account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may perform ledger mutations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
