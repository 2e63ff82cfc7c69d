package authz

import "minemarket/internal/domain"

// Actor is the authenticated caller as seen by capability checks.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

type Action string

const (
	// Mutate a record owned by the actor (listings, offers on own mine).
	ActionMutateOwned Action = "mutate_owned"
	// Manage the heavy-machine fleet: create/update/sell/maintenance/status.
	ActionManageMachines Action = "manage_machines"
	// Administrative operations: user management, platform analytics,
	// hard deletes of fleet records.
	ActionAdminister Action = "administer"
)

// Resource carries the ownership facts a capability check needs.
type Resource struct {
	OwnerID int64
}

// Can is the single capability check invoked by every service; role
// middleware closures are deliberately not used. Admins can do everything;
// everyone else is limited to their role's actions and, for ownership-scoped
// actions, to records they own.
func Can(actor Actor, action Action, res Resource) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}

	switch action {
	case ActionMutateOwned:
		return actor.ID != 0 && actor.ID == res.OwnerID
	case ActionManageMachines:
		return actor.Role == domain.RoleMineralManager
	case ActionAdminister:
		return false
	}
	return false
}
