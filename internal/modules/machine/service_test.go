package machine

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

type fixtures struct {
	svc     *Service
	manager authz.Actor
	admin   authz.Actor
	renter  *domain.User
	buyer   *domain.User
}

func setup(t *testing.T) *fixtures {
	t.Helper()
	dsn := fmt.Sprintf("file:machine_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	machines := repository.NewMachineRepository(db)

	ctx := context.Background()
	manager := &domain.User{FirstName: "Anele", LastName: "Khumalo", Email: "fleet@example.com", PasswordHash: "x", Role: domain.RoleMineralManager}
	require.NoError(t, users.Create(ctx, manager))
	renter := &domain.User{FirstName: "Thandi", LastName: "Mokoena", Email: "renter@example.com", PasswordHash: "x", Role: domain.RoleMineOwner}
	require.NoError(t, users.Create(ctx, renter))
	buyer := &domain.User{FirstName: "James", LastName: "Okafor", Email: "buyer@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(ctx, buyer))

	return &fixtures{
		svc:     NewService(machines, users),
		manager: authz.Actor{ID: manager.ID, Role: manager.Role},
		admin:   authz.Actor{ID: 999, Role: domain.RoleAdmin},
		renter:  renter,
		buyer:   buyer,
	}
}

func (f *fixtures) createMachine(t *testing.T) *domain.Machine {
	t.Helper()
	m, err := f.svc.Create(context.Background(), f.manager, CreateMachineRequest{
		Name:              "CAT 390F",
		Category:          "Excavator",
		Brand:             "Caterpillar",
		Model:             "390F",
		Year:              2019,
		RentalPricePerDay: 18500,
	})
	require.NoError(t, err)
	return m
}

func TestUpdateClearedFieldsPersist(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	empty := ""
	_, err := f.svc.Update(ctx, f.manager, m.ID, UpdateMachineRequest{Brand: &empty, Description: &empty})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Empty(t, got.Brand)
	require.Empty(t, got.Description)
}

func TestCreateNormalizesCategoryAndStatus(t *testing.T) {
	f := setup(t)
	m := f.createMachine(t)

	require.Equal(t, "excavator", m.Category)
	require.Equal(t, domain.MachineAvailable, m.Status)
	require.Empty(t, m.Rentals)

	_, err := f.svc.Create(context.Background(), f.manager, CreateMachineRequest{
		Name: "Bad", Category: "hovercraft", Model: "X", Year: 2020,
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(context.Background(), f.manager, CreateMachineRequest{
		Name: "Old", Category: "loader", Model: "X", Year: 1900,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateRequiresFleetRole(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), authz.Actor{ID: f.renter.ID, Role: f.renter.Role}, CreateMachineRequest{
		Name: "CAT", Category: "excavator", Model: "390F", Year: 2019,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRentGuardsAvailability(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	rented, err := f.svc.Rent(ctx, authz.Actor{ID: f.renter.ID, Role: f.renter.Role}, m.ID, RentRequest{PricePerDay: 18500})
	require.NoError(t, err)
	require.Equal(t, domain.MachineRented, rented.Status)
	require.Len(t, rented.Rentals, 1)
	require.NotNil(t, rented.CurrentRental())

	// second rent while active must fail and report the blocking status
	_, err = f.svc.Rent(ctx, authz.Actor{ID: f.buyer.ID, Role: f.buyer.Role}, m.ID, RentRequest{PricePerDay: 100})
	require.ErrorIs(t, err, ErrInvalidState)
	require.Contains(t, err.Error(), "rented")

	// the losing rent leaves the rental history untouched
	got, err := f.svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Rentals, 1)
	require.Equal(t, domain.MachineRented, got.Status)
}

func TestReturnRentalRecomputesStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	rented, err := f.svc.Rent(ctx, authz.Actor{ID: f.renter.ID, Role: f.renter.Role}, m.ID, RentRequest{PricePerDay: 18500})
	require.NoError(t, err)
	rentalID := rented.CurrentRental().ID

	returned, err := f.svc.ReturnRental(ctx, m.ID, rentalID)
	require.NoError(t, err)
	require.Equal(t, domain.MachineAvailable, returned.Status)
	require.Nil(t, returned.CurrentRental())
	require.Equal(t, domain.RentalReturned, returned.Rentals[0].Status)
	require.NotNil(t, returned.Rentals[0].ReturnedAt)

	// a returned rental cannot be returned again
	_, err = f.svc.ReturnRental(ctx, m.ID, rentalID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestRentAfterReturnAppendsHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)
	renter := authz.Actor{ID: f.renter.ID, Role: f.renter.Role}

	first, err := f.svc.Rent(ctx, renter, m.ID, RentRequest{PricePerDay: 100})
	require.NoError(t, err)
	_, err = f.svc.ReturnRental(ctx, m.ID, first.CurrentRental().ID)
	require.NoError(t, err)

	second, err := f.svc.Rent(ctx, renter, m.ID, RentRequest{PricePerDay: 200})
	require.NoError(t, err)
	require.Len(t, second.Rentals, 2)
	// history stays in creation order
	require.Equal(t, domain.RentalReturned, second.Rentals[0].Status)
	require.Equal(t, domain.RentalActive, second.Rentals[1].Status)
}

func TestSellRefusesOnlyAlreadySold(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	// selling overrides an active rental
	_, err := f.svc.Rent(ctx, authz.Actor{ID: f.renter.ID, Role: f.renter.Role}, m.ID, RentRequest{PricePerDay: 100})
	require.NoError(t, err)

	sold, err := f.svc.Sell(ctx, f.manager, m.ID, SellRequest{BuyerID: f.buyer.ID, Price: 4000000})
	require.NoError(t, err)
	require.Equal(t, domain.MachineSold, sold.Status)
	require.Len(t, sold.Purchases, 1)

	_, err = f.svc.Sell(ctx, f.manager, m.ID, SellRequest{BuyerID: f.buyer.ID, Price: 1})
	require.ErrorIs(t, err, ErrAlreadySold)
}

func TestSellValidatesBuyer(t *testing.T) {
	f := setup(t)
	m := f.createMachine(t)

	_, err := f.svc.Sell(context.Background(), f.manager, m.ID, SellRequest{BuyerID: 9999, Price: 100})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogMaintenanceOptionallySetsStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	logged, err := f.svc.LogMaintenance(ctx, f.manager, m.ID, MaintenanceRequest{Title: "Oil change", Cost: 4500})
	require.NoError(t, err)
	require.Len(t, logged.MaintenanceHistory, 1)
	require.Equal(t, domain.MachineAvailable, logged.Status)

	down, err := f.svc.LogMaintenance(ctx, f.manager, m.ID, MaintenanceRequest{Title: "Engine rebuild", Cost: 250000, SetStatus: "maintenance"})
	require.NoError(t, err)
	require.Len(t, down.MaintenanceHistory, 2)
	require.Equal(t, domain.MachineMaintenance, down.Status)

	_, err = f.svc.LogMaintenance(ctx, f.manager, m.ID, MaintenanceRequest{Title: "Bad", SetStatus: "exploded"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestSetStatusBypassesGuards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	_, err := f.svc.Rent(ctx, authz.Actor{ID: f.renter.ID, Role: f.renter.Role}, m.ID, RentRequest{PricePerDay: 100})
	require.NoError(t, err)

	forced, err := f.svc.SetStatus(ctx, f.manager, m.ID, "available")
	require.NoError(t, err)
	require.Equal(t, domain.MachineAvailable, forced.Status)

	_, err = f.svc.SetStatus(ctx, f.manager, m.ID, "broken")
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)

	err := f.svc.Delete(ctx, f.manager, m.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.Delete(ctx, f.admin, m.ID))
	_, err = f.svc.Get(ctx, m.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersAvailableForRent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.createMachine(t)
	other := f.createMachine(t)

	_, err := f.svc.Rent(ctx, authz.Actor{ID: f.renter.ID, Role: f.renter.Role}, m.ID, RentRequest{PricePerDay: 100})
	require.NoError(t, err)

	available, err := f.svc.List(ctx, ListFilters{AvailableForRent: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, other.ID, available[0].ID)
}
