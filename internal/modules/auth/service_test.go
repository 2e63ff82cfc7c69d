package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"minemarket/internal/domain"
	jwtsvc "minemarket/internal/pkg/jwt"
	"minemarket/internal/repository"
)

func setup(t *testing.T) (*Service, *jwtsvc.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	j := jwtsvc.New("test-secret", time.Hour)
	return NewService(repository.NewUserRepository(db), j), j
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	svc, j := setup(t)

	res, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Thandi",
		LastName:  "Mokoena",
		Email:     "Thandi@Example.COM",
		Password:  "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleCustomer, res.User.Role)
	require.Equal(t, "thandi@example.com", res.User.Email)
	require.Empty(t, res.User.PasswordHash)

	claims, err := j.ValidateToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, claims.UserID)
	require.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRegisterRejectsAdminAndUnknownRoles(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "secret123", Role: "admin"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "secret123", Role: "wizard"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	req := RegisterRequest{FirstName: "A", LastName: "B", Email: "dup@example.com", Password: "secret123", Role: "investor"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrEmailTaken)

	// same address with different casing is still taken
	req.Email = "DUP@example.com"
	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "B", Email: "login@example.com", Password: "secret123", Role: "mine_owner"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, LoginRequest{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMineOwner, res.User.Role)
	require.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, LoginRequest{Email: "login@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "B", Email: "me@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "me@example.com", user.Email)
	require.Empty(t, user.PasswordHash)

	_, err = svc.Me(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
