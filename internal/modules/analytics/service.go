package analytics

import (
	"context"

	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

type Service struct {
	repo AnalyticsRepository
}

func NewService(repo AnalyticsRepository) *Service {
	return &Service{repo: repo}
}

// PersonalStats is the dashboard payload for the calling user.
type PersonalStats struct {
	MinesOwned    int64                       `json:"mines_owned"`
	OffersPerMine []repository.MineOfferCount `json:"offers_per_mine"`
	MyOffers      []repository.StatusCount    `json:"my_offers_by_status"`
}

// PlatformStats is the admin-wide view.
type PlatformStats struct {
	Users          int64                       `json:"users"`
	UsersByRole    []repository.StatusCount    `json:"users_by_role"`
	Mines          int64                       `json:"mines"`
	MinesByStatus  []repository.StatusCount    `json:"mines_by_status"`
	OffersByStatus []repository.StatusCount    `json:"offers_by_status"`
	TopCommodities []repository.CommodityCount `json:"top_commodities"`
	FleetByStatus  []repository.StatusCount    `json:"fleet_by_status"`
}

func (s *Service) Personal(ctx context.Context, actor authz.Actor) (*PersonalStats, error) {
	mines, err := s.repo.CountMinesByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	perMine, err := s.repo.OffersPerMine(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	myOffers, err := s.repo.OfferStatusesByInvestor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return &PersonalStats{
		MinesOwned:    mines,
		OffersPerMine: perMine,
		MyOffers:      myOffers,
	}, nil
}

func (s *Service) Platform(ctx context.Context, actor authz.Actor) (*PlatformStats, error) {
	if !authz.Can(actor, authz.ActionAdminister, authz.Resource{}) {
		return nil, ErrForbidden
	}

	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	usersByRole, err := s.repo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	mines, err := s.repo.CountMines(ctx)
	if err != nil {
		return nil, err
	}
	mineStatuses, err := s.repo.MineStatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	offerStatuses, err := s.repo.OfferStatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	commodities, err := s.repo.TopCommodities(ctx)
	if err != nil {
		return nil, err
	}
	fleet, err := s.repo.MachineStatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		Users:          users,
		UsersByRole:    usersByRole,
		Mines:          mines,
		MinesByStatus:  mineStatuses,
		OffersByStatus: offerStatuses,
		TopCommodities: commodities,
		FleetByStatus:  fleet,
	}, nil
}
