package offer

import (
	"context"

	"minemarket/internal/domain"
	"minemarket/internal/repository"
)

// OfferRepository is the storage surface the workflow needs. Accept and
// Reject perform their guard re-checks inside a storage transaction.
type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) error
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	List(ctx context.Context, f repository.OfferFilters) ([]domain.Offer, error)
	Accept(ctx context.Context, offerID int64) (*domain.Offer, error)
	Reject(ctx context.Context, offerID int64) (*domain.Offer, error)
}

type MineReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Mine, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
