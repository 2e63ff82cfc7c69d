package offer

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
	svc      *Service
	offers   *repository.OfferRepository
	owner    *domain.User
	investor *domain.User
	rival    *domain.User
	mine     *domain.Mine
}

func setup(t *testing.T) *fixtures {
	t.Helper()
	dsn := fmt.Sprintf("file:offer_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	mines := repository.NewMineRepository(db)
	offers := repository.NewOfferRepository(db)

	ctx := context.Background()
	owner := &domain.User{FirstName: "Thandi", LastName: "Mokoena", Email: "owner@example.com", PasswordHash: "x", Role: domain.RoleMineOwner}
	require.NoError(t, users.Create(ctx, owner))
	investor := &domain.User{FirstName: "Lerato", LastName: "Dlamini", Email: "investor@example.com", PasswordHash: "x", Role: domain.RoleInvestor}
	require.NoError(t, users.Create(ctx, investor))
	rival := &domain.User{FirstName: "James", LastName: "Okafor", Email: "rival@example.com", PasswordHash: "x", Role: domain.RoleInvestor}
	require.NoError(t, users.Create(ctx, rival))

	mine := &domain.Mine{OwnerID: owner.ID, Name: "Karoo Gold", Location: "Northern Cape", CommodityType: "gold", Status: domain.MineExploration, Price: 1000000}
	require.NoError(t, mines.Create(ctx, mine))

	return &fixtures{
		svc:      NewService(offers, mines, users),
		offers:   offers,
		owner:    owner,
		investor: investor,
		rival:    rival,
		mine:     mine,
	}
}

func (f *fixtures) ownerActor() authz.Actor {
	return authz.Actor{ID: f.owner.ID, Role: f.owner.Role}
}

func TestSubmitCreatesPendingOffer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 500000, Message: "40% stake"})
	require.NoError(t, err)
	require.Equal(t, domain.OfferPending, o.Status)
	require.Equal(t, f.investor.ID, o.InvestorID)

	_, err = f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: 9999, Amount: 100})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAcceptRejectsCompetingOffers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)
	winner, err := f.svc.Submit(ctx, f.rival.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 200})
	require.NoError(t, err)
	third, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 300})
	require.NoError(t, err)

	accepted, err := f.svc.Accept(ctx, f.ownerActor(), winner.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OfferAccepted, accepted.Status)

	for _, id := range []int64{first.ID, third.ID} {
		o, err := f.offers.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.OfferRejected, o.Status)
	}

	acceptedCount, err := f.offers.CountByMineAndStatus(ctx, f.mine.ID, domain.OfferAccepted)
	require.NoError(t, err)
	require.EqualValues(t, 1, acceptedCount)
}

func TestAcceptResolvedOfferConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, f.ownerActor(), o.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, f.ownerActor(), o.ID)
	require.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.Reject(ctx, f.ownerActor(), o.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAcceptRequiresMineOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, authz.Actor{ID: f.investor.ID, Role: domain.RoleInvestor}, o.ID)
	require.ErrorIs(t, err, ErrForbidden)

	// an admin can resolve any offer
	_, err = f.svc.Accept(ctx, authz.Actor{ID: 42, Role: domain.RoleAdmin}, o.ID)
	require.NoError(t, err)
}

func TestRejectLeavesSiblingsPending(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	loser, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)
	other, err := f.svc.Submit(ctx, f.rival.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 200})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(ctx, f.ownerActor(), loser.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OfferRejected, rejected.Status)

	o, err := f.offers.GetByID(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OfferPending, o.Status)
}

func TestAcceptDoesNotTransferMineOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, f.ownerActor(), o.ID)
	require.NoError(t, err)

	mine, err := f.svc.mines.GetByID(ctx, f.mine.ID)
	require.NoError(t, err)
	require.Equal(t, f.owner.ID, mine.OwnerID)
}

func TestListForMineIsOwnerOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)

	_, err = f.svc.ListForMine(ctx, authz.Actor{ID: f.investor.ID, Role: domain.RoleInvestor}, f.mine.ID, "")
	require.ErrorIs(t, err, ErrForbidden)

	offers, err := f.svc.ListForMine(ctx, f.ownerActor(), f.mine.ID, "")
	require.NoError(t, err)
	require.Len(t, offers, 1)
}

func TestListMyFiltersByStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	kept, err := f.svc.Submit(ctx, f.investor.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 100})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.rival.ID, SubmitOfferRequest{MineID: f.mine.ID, Amount: 200})
	require.NoError(t, err)

	mine, err := f.svc.ListMy(ctx, f.investor.ID, string(domain.OfferPending))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, kept.ID, mine[0].ID)
}
