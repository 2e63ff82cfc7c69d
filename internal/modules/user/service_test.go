package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

func setup(t *testing.T) (*Service, *domain.User, *domain.User) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	admin := &domain.User{FirstName: "Sipho", LastName: "Ndlovu", Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	member := &domain.User{FirstName: "Thandi", LastName: "Mokoena", Email: "member@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(ctx, member))

	return NewService(users), admin, member
}

func adminActor(u *domain.User) authz.Actor { return authz.Actor{ID: u.ID, Role: u.Role} }

func TestListRequiresAdmin(t *testing.T) {
	svc, admin, member := setup(t)
	ctx := context.Background()

	_, err := svc.List(ctx, adminActor(member), repository.UserFilters{})
	require.ErrorIs(t, err, ErrForbidden)

	users, err := svc.List(ctx, adminActor(admin), repository.UserFilters{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Empty(t, u.PasswordHash)
	}

	customers, err := svc.List(ctx, adminActor(admin), repository.UserFilters{Role: string(domain.RoleCustomer)})
	require.NoError(t, err)
	require.Len(t, customers, 1)
}

func TestUpdatePromotesRoleAndVerifies(t *testing.T) {
	svc, admin, member := setup(t)
	ctx := context.Background()

	role := "mine_owner"
	verified := true
	updated, err := svc.Update(ctx, adminActor(admin), member.ID, UpdateUserRequest{Role: &role, IsVerified: &verified})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMineOwner, updated.Role)
	require.True(t, updated.IsVerified)

	bad := "wizard"
	_, err = svc.Update(ctx, adminActor(admin), member.ID, UpdateUserRequest{Role: &bad})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, adminActor(admin), 9999, UpdateUserRequest{Role: &role})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUnverifyPersists(t *testing.T) {
	svc, admin, member := setup(t)
	ctx := context.Background()

	verified := true
	contact := "+27 82 555 0101"
	_, err := svc.Update(ctx, adminActor(admin), member.ID, UpdateUserRequest{IsVerified: &verified, ContactNumber: &contact})
	require.NoError(t, err)

	// flipping back to false and clearing the contact must survive a re-read
	unverified := false
	empty := ""
	_, err = svc.Update(ctx, adminActor(admin), member.ID, UpdateUserRequest{IsVerified: &unverified, ContactNumber: &empty})
	require.NoError(t, err)

	got, err := svc.Get(ctx, adminActor(admin), member.ID)
	require.NoError(t, err)
	require.False(t, got.IsVerified)
	require.Empty(t, got.ContactNumber)
}

func TestDeleteGuards(t *testing.T) {
	svc, admin, member := setup(t)
	ctx := context.Background()

	// admins cannot delete their own account
	err := svc.Delete(ctx, adminActor(admin), admin.ID)
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Delete(ctx, adminActor(admin), member.ID))
	_, err = svc.Get(ctx, adminActor(admin), member.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
