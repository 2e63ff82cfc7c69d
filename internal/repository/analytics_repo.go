package repository

import (
	"context"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// StatusCount is a single group-by bucket.
type StatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:cnt" json:"count"`
}

// CommodityCount ranks commodity types by number of mine listings.
type CommodityCount struct {
	CommodityType string `gorm:"column:commodity_type" json:"commodity_type"`
	Count         int64  `gorm:"column:cnt" json:"count"`
}

// MineOfferCount pairs a mine with its offer volume.
type MineOfferCount struct {
	MineID   int64   `gorm:"column:mine_id" json:"mine_id"`
	MineName string  `gorm:"column:mine_name" json:"mine_name"`
	Offers   int64   `gorm:"column:cnt" json:"offers"`
	Total    float64 `gorm:"column:total" json:"total_amount"`
}

func (r *AnalyticsRepository) CountMinesByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&mineModel{}).
		Where("owner_id = ?", ownerID).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *AnalyticsRepository) OfferStatusesByInvestor(ctx context.Context, investorID int64) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&offerModel{}).
		Select("status, count(*) as cnt").
		Where("investor_id = ?", investorID).
		Group("status").
		Order("status asc").
		Scan(&rows).Error
	return rows, err
}

// OffersPerMine aggregates offer volume for every mine the owner holds.
func (r *AnalyticsRepository) OffersPerMine(ctx context.Context, ownerID int64) ([]MineOfferCount, error) {
	var rows []MineOfferCount
	err := r.db.WithContext(ctx).Model(&offerModel{}).
		Select("offers.mine_id as mine_id, mines.name as mine_name, count(*) as cnt, sum(offers.amount) as total").
		Joins("JOIN mines ON mines.id = offers.mine_id").
		Where("mines.owner_id = ?", ownerID).
		Group("offers.mine_id, mines.name").
		Order("cnt desc, mine_id asc").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) CountUsers(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Count(&cnt)
	return cnt, tx.Error
}

func (r *AnalyticsRepository) CountUsersByRole(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Select("role as status, count(*) as cnt").
		Group("role").
		Order("role asc").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) CountMines(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&mineModel{}).Count(&cnt)
	return cnt, tx.Error
}

func (r *AnalyticsRepository) MineStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&mineModel{}).
		Select("status, count(*) as cnt").
		Group("status").
		Order("status asc").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) OfferStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&offerModel{}).
		Select("status, count(*) as cnt").
		Group("status").
		Order("status asc").
		Scan(&rows).Error
	return rows, err
}

// TopCommodities returns the five most listed commodity types.
func (r *AnalyticsRepository) TopCommodities(ctx context.Context) ([]CommodityCount, error) {
	var rows []CommodityCount
	err := r.db.WithContext(ctx).Model(&mineModel{}).
		Select("commodity_type, count(*) as cnt").
		Group("commodity_type").
		Order("cnt desc, commodity_type asc").
		Limit(5).
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) MachineStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&machineModel{}).
		Select("status, count(*) as cnt").
		Where("is_active = ?", true).
		Group("status").
		Order("status asc").
		Scan(&rows).Error
	return rows, err
}
