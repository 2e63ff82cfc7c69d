package listing

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
	mines    *MineService
	minerals *MineralService
	owner    authz.Actor
	stranger authz.Actor
	admin    authz.Actor
}

func setup(t *testing.T) *fixtures {
	t.Helper()
	dsn := fmt.Sprintf("file:listing_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	return &fixtures{
		mines:    NewMineService(repository.NewMineRepository(db)),
		minerals: NewMineralService(repository.NewMineralRepository(db)),
		owner:    authz.Actor{ID: 1, Role: domain.RoleMineOwner},
		stranger: authz.Actor{ID: 2, Role: domain.RoleMineOwner},
		admin:    authz.Actor{ID: 3, Role: domain.RoleAdmin},
	}
}

func (f *fixtures) createMine(t *testing.T) *domain.Mine {
	t.Helper()
	mine, err := f.mines.Create(context.Background(), f.owner, CreateMineRequest{
		Name:          "Karoo Gold",
		Location:      "Northern Cape",
		CommodityType: "gold",
		Price:         1000000,
	})
	require.NoError(t, err)
	return mine
}

func TestCreateMineDefaultsToIdle(t *testing.T) {
	f := setup(t)
	mine := f.createMine(t)

	require.Equal(t, domain.MineIdle, mine.Status)
	require.Equal(t, f.owner.ID, mine.OwnerID)

	_, err := f.mines.Create(context.Background(), f.owner, CreateMineRequest{
		Name: "Bad", Location: "X", CommodityType: "gold", Price: 100, Status: "Abandoned",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateMineOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	mine := f.createMine(t)

	name := "Renamed"
	_, err := f.mines.Update(ctx, f.stranger, mine.ID, UpdateMineRequest{Name: &name})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := f.mines.Update(ctx, f.admin, mine.ID, UpdateMineRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, f.owner.ID, updated.OwnerID)
}

func TestUpdateMineClearedDescriptionPersists(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mine, err := f.mines.Create(ctx, f.owner, CreateMineRequest{
		Name: "Karoo Gold", Location: "Northern Cape", CommodityType: "gold",
		Price: 1000000, Description: "Producing since 2004",
	})
	require.NoError(t, err)

	empty := ""
	_, err = f.mines.Update(ctx, f.owner, mine.ID, UpdateMineRequest{Description: &empty})
	require.NoError(t, err)

	got, err := f.mines.Get(ctx, mine.ID)
	require.NoError(t, err)
	require.Empty(t, got.Description)
}

func TestDeleteMineRemovesAttachments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	mine := f.createMine(t)

	withAtt, err := f.mines.Attach(ctx, f.owner, mine.ID, AttachRequest{
		Filename: "report.pdf", URL: "/static/uploads/report.pdf", MimeType: "application/pdf", Size: 1024,
	})
	require.NoError(t, err)
	require.Len(t, withAtt.Attachments, 1)

	require.NoError(t, f.mines.Delete(ctx, f.owner, mine.ID))
	_, err = f.mines.Get(ctx, mine.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMineListFilters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.createMine(t)
	_, err := f.mines.Create(ctx, f.stranger, CreateMineRequest{
		Name: "Witbank Coal", Location: "Mpumalanga", CommodityType: "coal", Price: 500000, Status: "Active",
	})
	require.NoError(t, err)

	coal, err := f.mines.List(ctx, repository.MineFilters{CommodityType: "coal"})
	require.NoError(t, err)
	require.Len(t, coal, 1)

	searched, err := f.mines.List(ctx, repository.MineFilters{Query: "Karoo"})
	require.NoError(t, err)
	require.Len(t, searched, 1)

	owned, err := f.mines.ListMine(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
}

func TestMineralSoftDeleteHidesFromReads(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mineral, err := f.minerals.Create(ctx, f.owner, CreateMineralRequest{
		Name: "Copper Concentrate", MineralType: "Metallic", PricePerUnit: 1850,
	})
	require.NoError(t, err)
	require.Equal(t, domain.MineralMetallic, mineral.MineralType)
	require.Equal(t, "ZAR", mineral.Currency)

	require.NoError(t, f.minerals.Delete(ctx, f.owner, mineral.ID))

	_, err = f.minerals.Get(ctx, mineral.ID)
	require.ErrorIs(t, err, ErrNotFound)

	all, err := f.minerals.List(ctx, repository.MineralFilters{})
	require.NoError(t, err)
	require.Empty(t, all)

	// a second delete reads as not found too
	err = f.minerals.Delete(ctx, f.owner, mineral.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMineralValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.minerals.Create(ctx, f.owner, CreateMineralRequest{Name: "X", MineralType: "plasma", PricePerUnit: 10})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.minerals.Create(ctx, f.owner, CreateMineralRequest{Name: "X", MineralType: "precious", PricePerUnit: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.minerals.Create(ctx, f.owner, CreateMineralRequest{Name: "X", MineralType: "precious", PricePerUnit: 10, MinOrder: 50, MaxOrder: 10})
	require.ErrorIs(t, err, ErrValidation)
}

func TestMineralUpdateOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mineral, err := f.minerals.Create(ctx, f.owner, CreateMineralRequest{
		Name: "Thermal Coal", MineralType: "energy", PricePerUnit: 95, Currency: "usd",
	})
	require.NoError(t, err)
	require.Equal(t, "USD", mineral.Currency)

	price := 110.0
	_, err = f.minerals.Update(ctx, f.stranger, mineral.ID, UpdateMineralRequest{PricePerUnit: &price})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := f.minerals.Update(ctx, f.owner, mineral.ID, UpdateMineralRequest{PricePerUnit: &price})
	require.NoError(t, err)
	require.Equal(t, 110.0, updated.PricePerUnit)
}

func TestUpdateMineralClearedFieldsPersist(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mineral, err := f.minerals.Create(ctx, f.owner, CreateMineralRequest{
		Name: "Chromite", MineralType: "metallic", PricePerUnit: 400,
		Grade: "44% Cr2O3", MinOrder: 20,
	})
	require.NoError(t, err)

	empty := ""
	zero := 0.0
	_, err = f.minerals.Update(ctx, f.owner, mineral.ID, UpdateMineralRequest{Grade: &empty, MinOrder: &zero})
	require.NoError(t, err)

	got, err := f.minerals.Get(ctx, mineral.ID)
	require.NoError(t, err)
	require.Empty(t, got.Grade)
	require.Zero(t, got.MinOrder)
}
