package machine

import (
	"context"

	"minemarket/internal/domain"
	"minemarket/internal/repository"
)

// MachineRepository owns the machine aggregate including its embedded
// rental/purchase/maintenance sequences. The lifecycle operations run their
// guards inside storage transactions.
type MachineRepository interface {
	Create(ctx context.Context, m *domain.Machine) error
	GetByID(ctx context.Context, id int64) (*domain.Machine, error)
	List(ctx context.Context, f repository.MachineFilters) ([]domain.Machine, error)
	Update(ctx context.Context, m *domain.Machine) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status domain.MachineStatus) (*domain.Machine, error)
	Rent(ctx context.Context, machineID int64, rental *domain.Rental) (*domain.Machine, error)
	ReturnRental(ctx context.Context, machineID int64, rentalID string) (*domain.Machine, error)
	Sell(ctx context.Context, machineID int64, purchase *domain.Purchase) (*domain.Machine, error)
	AppendMaintenance(ctx context.Context, machineID int64, entry *domain.Maintenance, newStatus *domain.MachineStatus) (*domain.Machine, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
