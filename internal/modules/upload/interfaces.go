package upload

import (
	"context"

	"minemarket/internal/repository"
)

type UploadRepository interface {
	Create(ctx context.Context, u *repository.Upload) error
	GetByID(ctx context.Context, id string) (*repository.Upload, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.Upload, error)
	Delete(ctx context.Context, id string) error
}
