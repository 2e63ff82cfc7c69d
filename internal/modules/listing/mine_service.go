package listing

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

type MineService struct {
	mines MineRepository
}

func NewMineService(mines MineRepository) *MineService {
	return &MineService{mines: mines}
}

func (s *MineService) Create(ctx context.Context, actor authz.Actor, req CreateMineRequest) (*domain.Mine, error) {
	status := domain.MineStatus(req.Status)
	if status == "" {
		status = domain.MineIdle
	}
	if !domain.ValidMineStatus(status) {
		return nil, ErrValidation
	}
	if req.Price <= 0 {
		return nil, ErrValidation
	}

	mine := &domain.Mine{
		OwnerID:       actor.ID,
		Name:          strings.TrimSpace(req.Name),
		Location:      strings.TrimSpace(req.Location),
		CommodityType: strings.TrimSpace(req.CommodityType),
		Status:        status,
		Price:         req.Price,
		Description:   req.Description,
	}
	if mine.Name == "" || mine.Location == "" || mine.CommodityType == "" {
		return nil, ErrValidation
	}

	if err := s.mines.Create(ctx, mine); err != nil {
		return nil, err
	}
	return mine, nil
}

func (s *MineService) Get(ctx context.Context, id int64) (*domain.Mine, error) {
	mine, err := s.mines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return mine, nil
}

func (s *MineService) List(ctx context.Context, f repository.MineFilters) ([]domain.Mine, error) {
	return s.mines.List(ctx, f)
}

func (s *MineService) ListMine(ctx context.Context, actor authz.Actor) ([]domain.Mine, error) {
	return s.mines.List(ctx, repository.MineFilters{OwnerID: actor.ID})
}

func (s *MineService) Update(ctx context.Context, actor authz.Actor, id int64, req UpdateMineRequest) (*domain.Mine, error) {
	mine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		mine.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		mine.Location = strings.TrimSpace(*req.Location)
	}
	if req.CommodityType != nil {
		mine.CommodityType = strings.TrimSpace(*req.CommodityType)
	}
	if req.Status != nil {
		status := domain.MineStatus(*req.Status)
		if !domain.ValidMineStatus(status) {
			return nil, ErrValidation
		}
		mine.Status = status
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrValidation
		}
		mine.Price = *req.Price
	}
	if req.Description != nil {
		mine.Description = *req.Description
	}
	if mine.Name == "" || mine.Location == "" || mine.CommodityType == "" {
		return nil, ErrValidation
	}

	if err := s.mines.Update(ctx, mine); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *MineService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	mine, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return ErrForbidden
	}

	if err := s.mines.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *MineService) Attach(ctx context.Context, actor authz.Actor, id int64, req AttachRequest) (*domain.Mine, error) {
	mine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mine.OwnerID}) {
		return nil, ErrForbidden
	}

	att := &domain.Attachment{
		Filename: req.Filename,
		URL:      req.URL,
		MimeType: req.MimeType,
		Size:     req.Size,
	}
	if err := s.mines.AddAttachment(ctx, id, att); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}
