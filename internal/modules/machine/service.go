package machine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/repository"
)

type Service struct {
	machines MachineRepository
	users    UserReader
}

func NewService(machines MachineRepository, users UserReader) *Service {
	return &Service{machines: machines, users: users}
}

func (s *Service) Create(ctx context.Context, actor authz.Actor, req CreateMachineRequest) (*domain.Machine, error) {
	if !authz.Can(actor, authz.ActionManageMachines, authz.Resource{}) {
		return nil, ErrForbidden
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !domain.MachineCategories[category] {
		return nil, ErrValidation
	}
	if req.Year < 1950 || req.Year > time.Now().Year()+1 {
		return nil, ErrValidation
	}
	if req.PurchasePrice < 0 || req.RentalPricePerDay < 0 {
		return nil, ErrValidation
	}

	ownerID := req.OwnerID
	if ownerID == 0 {
		ownerID = actor.ID
	}

	m := &domain.Machine{
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(req.Name),
		Category:          category,
		Brand:             req.Brand,
		Model:             strings.TrimSpace(req.Model),
		Year:              req.Year,
		PurchasePrice:     req.PurchasePrice,
		RentalPricePerDay: req.RentalPricePerDay,
		SerialNumber:      req.SerialNumber,
		Location:          req.Location,
		Description:       req.Description,
		Status:            domain.MachineAvailable,
	}
	if err := s.machines.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Machine, error) {
	m, err := s.machines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

type ListFilters struct {
	Category         string
	Status           string
	Brand            string
	Query            string
	AvailableForRent bool
}

func (s *Service) List(ctx context.Context, f ListFilters) ([]domain.Machine, error) {
	status := strings.ToLower(f.Status)
	if f.AvailableForRent {
		status = string(domain.MachineAvailable)
	}
	return s.machines.List(ctx, repository.MachineFilters{
		Category: strings.ToLower(f.Category),
		Status:   status,
		Brand:    f.Brand,
		Query:    f.Query,
	})
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, req UpdateMachineRequest) (*domain.Machine, error) {
	if !authz.Can(actor, authz.ActionManageMachines, authz.Resource{}) {
		return nil, ErrForbidden
	}

	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if !domain.MachineCategories[category] {
			return nil, ErrValidation
		}
		m.Category = category
	}
	if req.Brand != nil {
		m.Brand = *req.Brand
	}
	if req.Model != nil {
		m.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		if *req.Year < 1950 || *req.Year > time.Now().Year()+1 {
			return nil, ErrValidation
		}
		m.Year = *req.Year
	}
	if req.PurchasePrice != nil {
		if *req.PurchasePrice < 0 {
			return nil, ErrValidation
		}
		m.PurchasePrice = *req.PurchasePrice
	}
	if req.RentalPricePerDay != nil {
		if *req.RentalPricePerDay < 0 {
			return nil, ErrValidation
		}
		m.RentalPricePerDay = *req.RentalPricePerDay
	}
	if req.SerialNumber != nil {
		m.SerialNumber = *req.SerialNumber
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Description != nil {
		m.Description = *req.Description
	}

	if err := s.machines.Update(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if !authz.Can(actor, authz.ActionAdminister, authz.Resource{}) {
		return ErrForbidden
	}
	if err := s.machines.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Rent starts a rental for the calling user. Guard: the machine must be
// available; the check is re-run inside the storage transaction.
func (s *Service) Rent(ctx context.Context, actor authz.Actor, machineID int64, req RentRequest) (*domain.Machine, error) {
	if req.PricePerDay <= 0 {
		return nil, ErrValidation
	}

	rental := &domain.Rental{
		RenterID:    actor.ID,
		PricePerDay: req.PricePerDay,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
	}
	if req.StartDate != nil {
		rental.StartDate = *req.StartDate
	}

	m, err := s.machines.Rent(ctx, machineID, rental)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrMachineUnavailable):
			return nil, fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
		}
		return nil, err
	}
	return m, nil
}

// ReturnRental closes an active rental and recomputes the machine status
// from the remaining rentals.
func (s *Service) ReturnRental(ctx context.Context, machineID int64, rentalID string) (*domain.Machine, error) {
	m, err := s.machines.ReturnRental(ctx, machineID, rentalID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrRentalNotActive):
			return nil, fmt.Errorf("%w: rental is not active", ErrInvalidState)
		}
		return nil, err
	}
	return m, nil
}

// Sell records a purchase and moves the machine to sold. Prior status is
// overridden without releasing outstanding rentals; only an already-sold
// machine is refused.
func (s *Service) Sell(ctx context.Context, actor authz.Actor, machineID int64, req SellRequest) (*domain.Machine, error) {
	if !authz.Can(actor, authz.ActionManageMachines, authz.Resource{}) {
		return nil, ErrForbidden
	}
	if req.Price < 0 {
		return nil, ErrValidation
	}
	if _, err := s.users.GetByID(ctx, req.BuyerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	purchase := &domain.Purchase{
		BuyerID: req.BuyerID,
		Price:   req.Price,
		Notes:   req.Notes,
	}
	if req.Date != nil {
		purchase.Date = *req.Date
	}

	m, err := s.machines.Sell(ctx, machineID, purchase)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrMachineAlreadySold):
			return nil, ErrAlreadySold
		}
		return nil, err
	}
	return m, nil
}

// LogMaintenance appends a maintenance entry; the machine status changes
// only when the caller supplies one explicitly.
func (s *Service) LogMaintenance(ctx context.Context, actor authz.Actor, machineID int64, req MaintenanceRequest) (*domain.Machine, error) {
	if !authz.Can(actor, authz.ActionManageMachines, authz.Resource{}) {
		return nil, ErrForbidden
	}
	if req.Cost < 0 {
		return nil, ErrValidation
	}

	var newStatus *domain.MachineStatus
	if req.SetStatus != "" {
		st := domain.MachineStatus(strings.ToLower(req.SetStatus))
		if !domain.ValidMachineStatus(st) {
			return nil, ErrValidation
		}
		newStatus = &st
	}

	entry := &domain.Maintenance{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Cost:        req.Cost,
		PerformedBy: req.PerformedBy,
	}
	if req.PerformedAt != nil {
		entry.PerformedAt = *req.PerformedAt
	}

	m, err := s.machines.AppendMaintenance(ctx, machineID, entry, newStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// SetStatus is the administrative escape hatch: an unconditional overwrite
// that bypasses every lifecycle guard.
func (s *Service) SetStatus(ctx context.Context, actor authz.Actor, machineID int64, status string) (*domain.Machine, error) {
	if !authz.Can(actor, authz.ActionManageMachines, authz.Resource{}) {
		return nil, ErrForbidden
	}

	st := domain.MachineStatus(strings.ToLower(strings.TrimSpace(status)))
	if !domain.ValidMachineStatus(st) {
		return nil, ErrValidation
	}

	m, err := s.machines.SetStatus(ctx, machineID, st)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
