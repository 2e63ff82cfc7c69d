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

type MineralService struct {
	minerals MineralRepository
}

func NewMineralService(minerals MineralRepository) *MineralService {
	return &MineralService{minerals: minerals}
}

func (s *MineralService) Create(ctx context.Context, actor authz.Actor, req CreateMineralRequest) (*domain.Mineral, error) {
	mtype := domain.MineralType(strings.ToLower(strings.TrimSpace(req.MineralType)))
	if !domain.ValidMineralType(mtype) {
		return nil, ErrValidation
	}
	if req.PricePerUnit <= 0 {
		return nil, ErrValidation
	}
	if req.MinOrder < 0 || req.MaxOrder < 0 {
		return nil, ErrValidation
	}
	if req.MaxOrder > 0 && req.MinOrder > req.MaxOrder {
		return nil, ErrValidation
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "ZAR"
	}

	mineral := &domain.Mineral{
		CreatedBy:    actor.ID,
		Name:         strings.TrimSpace(req.Name),
		MineralType:  mtype,
		Grade:        req.Grade,
		Form:         req.Form,
		MinOrder:     req.MinOrder,
		MaxOrder:     req.MaxOrder,
		PricePerUnit: req.PricePerUnit,
		Currency:     currency,
		Location:     req.Location,
		Description:  req.Description,
	}
	if mineral.Name == "" {
		return nil, ErrValidation
	}

	if err := s.minerals.Create(ctx, mineral); err != nil {
		return nil, err
	}
	return mineral, nil
}

func (s *MineralService) Get(ctx context.Context, id int64) (*domain.Mineral, error) {
	mineral, err := s.minerals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return mineral, nil
}

func (s *MineralService) List(ctx context.Context, f repository.MineralFilters) ([]domain.Mineral, error) {
	return s.minerals.List(ctx, f)
}

func (s *MineralService) Update(ctx context.Context, actor authz.Actor, id int64, req UpdateMineralRequest) (*domain.Mineral, error) {
	mineral, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mineral.CreatedBy}) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		mineral.Name = strings.TrimSpace(*req.Name)
	}
	if req.MineralType != nil {
		mtype := domain.MineralType(strings.ToLower(strings.TrimSpace(*req.MineralType)))
		if !domain.ValidMineralType(mtype) {
			return nil, ErrValidation
		}
		mineral.MineralType = mtype
	}
	if req.Grade != nil {
		mineral.Grade = *req.Grade
	}
	if req.Form != nil {
		mineral.Form = *req.Form
	}
	if req.MinOrder != nil {
		mineral.MinOrder = *req.MinOrder
	}
	if req.MaxOrder != nil {
		mineral.MaxOrder = *req.MaxOrder
	}
	if req.PricePerUnit != nil {
		if *req.PricePerUnit <= 0 {
			return nil, ErrValidation
		}
		mineral.PricePerUnit = *req.PricePerUnit
	}
	if req.Currency != nil {
		mineral.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Location != nil {
		mineral.Location = *req.Location
	}
	if req.Description != nil {
		mineral.Description = *req.Description
	}
	if mineral.Name == "" || mineral.Currency == "" {
		return nil, ErrValidation
	}
	if mineral.MinOrder < 0 || mineral.MaxOrder < 0 {
		return nil, ErrValidation
	}
	if mineral.MaxOrder > 0 && mineral.MinOrder > mineral.MaxOrder {
		return nil, ErrValidation
	}

	if err := s.minerals.Update(ctx, mineral); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *MineralService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	mineral, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mineral.CreatedBy}) {
		return ErrForbidden
	}

	if err := s.minerals.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *MineralService) Attach(ctx context.Context, actor authz.Actor, id int64, req AttachRequest) (*domain.Mineral, error) {
	mineral, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionMutateOwned, authz.Resource{OwnerID: mineral.CreatedBy}) {
		return nil, ErrForbidden
	}

	att := &domain.Attachment{
		Filename: req.Filename,
		URL:      req.URL,
		MimeType: req.MimeType,
		Size:     req.Size,
	}
	if err := s.minerals.AddAttachment(ctx, id, att); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}
