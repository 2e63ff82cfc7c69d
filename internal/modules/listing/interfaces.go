package listing

import (
	"context"

	"minemarket/internal/domain"
	"minemarket/internal/repository"
)

type MineRepository interface {
	Create(ctx context.Context, m *domain.Mine) error
	GetByID(ctx context.Context, id int64) (*domain.Mine, error)
	List(ctx context.Context, f repository.MineFilters) ([]domain.Mine, error)
	Update(ctx context.Context, m *domain.Mine) error
	Delete(ctx context.Context, id int64) error
	AddAttachment(ctx context.Context, mineID int64, a *domain.Attachment) error
}

type MineralRepository interface {
	Create(ctx context.Context, m *domain.Mineral) error
	GetByID(ctx context.Context, id int64) (*domain.Mineral, error)
	List(ctx context.Context, f repository.MineralFilters) ([]domain.Mineral, error)
	Update(ctx context.Context, m *domain.Mineral) error
	SoftDelete(ctx context.Context, id int64) error
	AddAttachment(ctx context.Context, mineralID int64, a *domain.Attachment) error
}
