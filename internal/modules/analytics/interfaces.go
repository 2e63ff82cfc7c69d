package analytics

import (
	"context"

	"minemarket/internal/repository"
)

type AnalyticsRepository interface {
	CountMinesByOwner(ctx context.Context, ownerID int64) (int64, error)
	OfferStatusesByInvestor(ctx context.Context, investorID int64) ([]repository.StatusCount, error)
	OffersPerMine(ctx context.Context, ownerID int64) ([]repository.MineOfferCount, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context) ([]repository.StatusCount, error)
	CountMines(ctx context.Context) (int64, error)
	MineStatusBreakdown(ctx context.Context) ([]repository.StatusCount, error)
	OfferStatusBreakdown(ctx context.Context) ([]repository.StatusCount, error)
	TopCommodities(ctx context.Context) ([]repository.CommodityCount, error)
	MachineStatusBreakdown(ctx context.Context) ([]repository.StatusCount, error)
}
