package domain

import "time"

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleMineOwner      UserRole = "mine_owner"
	RoleInvestor       UserRole = "investor"
	RoleMineralManager UserRole = "mineral_manager"
	RoleCustomer       UserRole = "customer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleMineOwner, RoleInvestor, RoleMineralManager, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Role          UserRole  `json:"role"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
