package authz

import (
	"testing"

	"minemarket/internal/domain"
)

func TestAdminCanDoEverything(t *testing.T) {
	admin := Actor{ID: 1, Role: domain.RoleAdmin}

	for _, action := range []Action{ActionMutateOwned, ActionManageMachines, ActionAdminister} {
		if !Can(admin, action, Resource{OwnerID: 999}) {
			t.Fatalf("admin denied %s", action)
		}
	}
}

func TestMutateOwnedRequiresOwnership(t *testing.T) {
	owner := Actor{ID: 7, Role: domain.RoleMineOwner}

	if !Can(owner, ActionMutateOwned, Resource{OwnerID: 7}) {
		t.Fatal("owner denied on own resource")
	}
	if Can(owner, ActionMutateOwned, Resource{OwnerID: 8}) {
		t.Fatal("owner allowed on someone else's resource")
	}
	if Can(Actor{ID: 0, Role: domain.RoleMineOwner}, ActionMutateOwned, Resource{OwnerID: 0}) {
		t.Fatal("anonymous actor allowed via zero-id match")
	}
}

func TestManageMachinesRole(t *testing.T) {
	if !Can(Actor{ID: 2, Role: domain.RoleMineralManager}, ActionManageMachines, Resource{}) {
		t.Fatal("mineral manager denied fleet management")
	}
	for _, role := range []domain.UserRole{domain.RoleMineOwner, domain.RoleInvestor, domain.RoleCustomer} {
		if Can(Actor{ID: 2, Role: role}, ActionManageMachines, Resource{}) {
			t.Fatalf("%s allowed fleet management", role)
		}
	}
}

func TestAdministerIsAdminOnly(t *testing.T) {
	for _, role := range []domain.UserRole{domain.RoleMineOwner, domain.RoleInvestor, domain.RoleMineralManager, domain.RoleCustomer} {
		if Can(Actor{ID: 2, Role: role}, ActionAdminister, Resource{}) {
			t.Fatalf("%s allowed administration", role)
		}
	}
}
