package offer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

type Service struct {
	offers OfferRepository
	mines  MineReader
	users  UserReader
}

func NewService(offers OfferRepository, mines MineReader, users UserReader) *Service {
	return &Service{offers: offers, mines: mines, users: users}
}

// Submit creates a Pending offer. No other offer is touched.
func (s *Service) Submit(ctx context.Context, investorID int64, req SubmitOfferRequest) (*domain.Offer, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}

	if _, err := s.mines.GetByID(ctx, req.MineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, investorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	o := &domain.Offer{
		MineID:     req.MineID,
		InvestorID: investorID,
		Amount:     req.Amount,
		Message:    req.Message,
		Status:     domain.OfferPending,
	}
	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Accept resolves the offer as Accepted and rejects every competing Pending
// offer on the same mine, all-or-nothing. Only the mine's owner may accept.
// Ownership of the mine is NOT transferred to the investor.
func (s *Service) Accept(ctx context.Context, actor authz.Actor, offerID int64) (*domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	mine, err := s.mines.GetByID(ctx, o.MineID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return nil, ErrForbidden
	}

	accepted, err := s.offers.Accept(ctx, offerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOfferNotPending):
			return nil, ErrConflict
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return accepted, nil
}

// Reject resolves a single Pending offer as Rejected.
func (s *Service) Reject(ctx context.Context, actor authz.Actor, offerID int64) (*domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	mine, err := s.mines.GetByID(ctx, o.MineID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return nil, ErrForbidden
	}

	rejected, err := s.offers.Reject(ctx, offerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOfferNotPending):
			return nil, ErrConflict
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rejected, nil
}

// ListForMine returns the offers against a mine, visible to its owner only.
func (s *Service) ListForMine(ctx context.Context, actor authz.Actor, mineID int64, status string) ([]domain.Offer, error) {
	mine, err := s.mines.GetByID(ctx, mineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return nil, ErrForbidden
	}

	return s.offers.List(ctx, repository.OfferFilters{MineID: mineID, Status: status})
}

// ListMy returns the offers the investor has made.
func (s *Service) ListMy(ctx context.Context, investorID int64, status string) ([]domain.Offer, error) {
	return s.offers.List(ctx, repository.OfferFilters{InvestorID: investorID, Status: status})
}
