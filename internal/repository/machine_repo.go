package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minemarket/internal/domain"
)

type MachineRepository struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) *MachineRepository {
	return &MachineRepository{db: db}
}

type machineModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	OwnerID           int64     `gorm:"column:owner_id;index"`
	Name              string    `gorm:"column:name"`
	Category          string    `gorm:"column:category;index"`
	Brand             *string   `gorm:"column:brand;index"`
	Model             string    `gorm:"column:model"`
	Year              int       `gorm:"column:year"`
	PurchasePrice     float64   `gorm:"column:purchase_price"`
	RentalPricePerDay float64   `gorm:"column:rental_price_per_day"`
	SerialNumber      *string   `gorm:"column:serial_number"`
	Location          *string   `gorm:"column:location"`
	Description       *string   `gorm:"column:description"`
	Status            string    `gorm:"column:status;index"`
	IsActive          bool      `gorm:"column:is_active;index"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	LastUpdatedAt     time.Time `gorm:"column:last_updated_at"`
}

func (machineModel) TableName() string { return "heavy_machines" }

// Sub-records live in child tables but are owned exclusively by the machine
// aggregate: created, mutated, and deleted only through MachineRepository,
// addressed by their generated id within one machine.
type rentalModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	MachineID   int64      `gorm:"column:machine_id;index"`
	RenterID    int64      `gorm:"column:renter_id"`
	StartDate   time.Time  `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	PricePerDay float64    `gorm:"column:price_per_day"`
	Notes       *string    `gorm:"column:notes"`
	Status      string     `gorm:"column:status"`
	ReturnedAt  *time.Time `gorm:"column:returned_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (rentalModel) TableName() string { return "machine_rentals" }

type purchaseModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	MachineID int64     `gorm:"column:machine_id;index"`
	BuyerID   int64     `gorm:"column:buyer_id"`
	Price     float64   `gorm:"column:price"`
	Date      time.Time `gorm:"column:date"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (purchaseModel) TableName() string { return "machine_purchases" }

type maintenanceModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	MachineID   int64     `gorm:"column:machine_id;index"`
	Title       string    `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	Cost        float64   `gorm:"column:cost"`
	PerformedAt time.Time `gorm:"column:performed_at"`
	PerformedBy *string   `gorm:"column:performed_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (maintenanceModel) TableName() string { return "machine_maintenance" }

func toDomainMachine(m machineModel) *domain.Machine {
	return &domain.Machine{
		ID:                 m.ID,
		OwnerID:            m.OwnerID,
		Name:               m.Name,
		Category:           m.Category,
		Brand:              strOrEmpty(m.Brand),
		Model:              m.Model,
		Year:               m.Year,
		PurchasePrice:      m.PurchasePrice,
		RentalPricePerDay:  m.RentalPricePerDay,
		SerialNumber:       strOrEmpty(m.SerialNumber),
		Location:           strOrEmpty(m.Location),
		Description:        strOrEmpty(m.Description),
		Status:             domain.MachineStatus(m.Status),
		Rentals:            []domain.Rental{},
		Purchases:          []domain.Purchase{},
		MaintenanceHistory: []domain.Maintenance{},
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		LastUpdatedAt:      m.LastUpdatedAt,
	}
}

func toMachineModel(mc *domain.Machine) machineModel {
	return machineModel{
		ID:                mc.ID,
		OwnerID:           mc.OwnerID,
		Name:              mc.Name,
		Category:          mc.Category,
		Brand:             strOrNil(mc.Brand),
		Model:             mc.Model,
		Year:              mc.Year,
		PurchasePrice:     mc.PurchasePrice,
		RentalPricePerDay: mc.RentalPricePerDay,
		SerialNumber:      strOrNil(mc.SerialNumber),
		Location:          strOrNil(mc.Location),
		Description:       strOrNil(mc.Description),
		Status:            string(mc.Status),
		IsActive:          mc.IsActive,
		CreatedAt:         mc.CreatedAt,
		LastUpdatedAt:     mc.LastUpdatedAt,
	}
}

func toDomainRental(m rentalModel) domain.Rental {
	return domain.Rental{
		ID:          m.ID,
		RenterID:    m.RenterID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		PricePerDay: m.PricePerDay,
		Notes:       strOrEmpty(m.Notes),
		Status:      domain.RentalStatus(m.Status),
		ReturnedAt:  m.ReturnedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func toDomainPurchase(m purchaseModel) domain.Purchase {
	return domain.Purchase{
		ID:        m.ID,
		BuyerID:   m.BuyerID,
		Price:     m.Price,
		Date:      m.Date,
		Notes:     strOrEmpty(m.Notes),
		CreatedAt: m.CreatedAt,
	}
}

func toDomainMaintenance(m maintenanceModel) domain.Maintenance {
	return domain.Maintenance{
		ID:          m.ID,
		Title:       m.Title,
		Description: strOrEmpty(m.Description),
		Cost:        m.Cost,
		PerformedAt: m.PerformedAt,
		PerformedBy: strOrEmpty(m.PerformedBy),
		CreatedAt:   m.CreatedAt,
	}
}

func (r *MachineRepository) Create(ctx context.Context, mc *domain.Machine) error {
	if mc.Status == "" {
		mc.Status = domain.MachineAvailable
	}
	mc.IsActive = true
	mc.LastUpdatedAt = time.Now().UTC()
	m := toMachineModel(mc)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*mc = *toDomainMachine(m)
	return nil
}

func (r *MachineRepository) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	return getMachine(r.db.WithContext(ctx), id)
}

// getMachine loads the aggregate with all sub-records in append order.
func getMachine(tx *gorm.DB, id int64) (*domain.Machine, error) {
	var m machineModel
	if err := tx.Where("is_active = ?", true).First(&m, id).Error; err != nil {
		return nil, err
	}
	mc := toDomainMachine(m)

	var rentals []rentalModel
	if err := tx.Where("machine_id = ?", id).Order("created_at asc, id asc").Find(&rentals).Error; err != nil {
		return nil, err
	}
	for _, rm := range rentals {
		mc.Rentals = append(mc.Rentals, toDomainRental(rm))
	}

	var purchases []purchaseModel
	if err := tx.Where("machine_id = ?", id).Order("created_at asc, id asc").Find(&purchases).Error; err != nil {
		return nil, err
	}
	for _, pm := range purchases {
		mc.Purchases = append(mc.Purchases, toDomainPurchase(pm))
	}

	var maints []maintenanceModel
	if err := tx.Where("machine_id = ?", id).Order("created_at asc, id asc").Find(&maints).Error; err != nil {
		return nil, err
	}
	for _, mm := range maints {
		mc.MaintenanceHistory = append(mc.MaintenanceHistory, toDomainMaintenance(mm))
	}

	return mc, nil
}

type MachineFilters struct {
	Category string
	Status   string
	Brand    string
	Query    string
}

func (r *MachineRepository) List(ctx context.Context, f MachineFilters) ([]domain.Machine, error) {
	q := r.db.WithContext(ctx).Model(&machineModel{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR model LIKE ? OR brand LIKE ?", like, like, like)
	}

	var rows []machineModel
	if err := q.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Machine, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMachine(m))
	}
	return out, nil
}

// Update writes through a column map so cleared brand/description and zeroed
// prices persist instead of being skipped as zero values. Owner and status
// are untouched here; status moves only through the lifecycle operations.
func (r *MachineRepository) Update(ctx context.Context, mc *domain.Machine) error {
	mc.LastUpdatedAt = time.Now().UTC()
	m := toMachineModel(mc)
	tx := r.db.WithContext(ctx).Model(&machineModel{}).
		Where("id = ? AND is_active = ?", mc.ID, true).
		Updates(map[string]any{
			"name":                 m.Name,
			"category":             m.Category,
			"brand":                m.Brand,
			"model":                m.Model,
			"year":                 m.Year,
			"purchase_price":       m.PurchasePrice,
			"rental_price_per_day": m.RentalPricePerDay,
			"serial_number":        m.SerialNumber,
			"location":             m.Location,
			"description":          m.Description,
			"last_updated_at":      m.LastUpdatedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MachineRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&machineModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("machine_id = ?", id).Delete(&rentalModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("machine_id = ?", id).Delete(&purchaseModel{}).Error; err != nil {
			return err
		}
		return tx.Where("machine_id = ?", id).Delete(&maintenanceModel{}).Error
	})
}

// SetStatus overwrites the status unconditionally. Administrative escape
// hatch; every guarded transition lives in Rent/ReturnRental/Sell.
func (r *MachineRepository) SetStatus(ctx context.Context, id int64, status domain.MachineStatus) (*domain.Machine, error) {
	tx := r.db.WithContext(ctx).Model(&machineModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"status": string(status), "last_updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Rent claims the machine with a conditional write on status=available and
// appends an active rental. Of two concurrent renters only one update
// matches the predicate; the loser fails the guard.
func (r *MachineRepository) Rent(ctx context.Context, machineID int64, rental *domain.Rental) (*domain.Machine, error) {
	var out *domain.Machine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m machineModel
		if err := tx.Where("is_active = ?", true).First(&m, machineID).Error; err != nil {
			return err
		}

		res := tx.Model(&machineModel{}).
			Where("id = ? AND status = ?", machineID, string(domain.MachineAvailable)).
			Updates(map[string]any{"status": string(domain.MachineRented), "last_updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w (status=%s)", ErrMachineUnavailable, m.Status)
		}

		rental.ID = uuid.NewString()
		rental.Status = domain.RentalActive
		rental.CreatedAt = time.Now().UTC()
		if rental.StartDate.IsZero() {
			rental.StartDate = rental.CreatedAt
		}

		rm := rentalModel{
			ID:          rental.ID,
			MachineID:   machineID,
			RenterID:    rental.RenterID,
			StartDate:   rental.StartDate,
			EndDate:     rental.EndDate,
			PricePerDay: rental.PricePerDay,
			Notes:       strOrNil(rental.Notes),
			Status:      string(rental.Status),
			CreatedAt:   rental.CreatedAt,
		}
		if err := tx.Create(&rm).Error; err != nil {
			return err
		}

		var err error
		out, err = getMachine(tx, machineID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReturnRental marks the rental returned and recomputes the machine status
// from the remaining rentals.
func (r *MachineRepository) ReturnRental(ctx context.Context, machineID int64, rentalID string) (*domain.Machine, error) {
	var out *domain.Machine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m machineModel
		if err := tx.Where("is_active = ?", true).First(&m, machineID).Error; err != nil {
			return err
		}

		var rm rentalModel
		if err := tx.Where("id = ? AND machine_id = ?", rentalID, machineID).First(&rm).Error; err != nil {
			return err
		}
		if rm.Status != string(domain.RentalActive) {
			return ErrRentalNotActive
		}

		now := time.Now().UTC()
		if err := tx.Model(&rentalModel{}).Where("id = ?", rentalID).
			Updates(map[string]any{"status": string(domain.RentalReturned), "returned_at": now}).Error; err != nil {
			return err
		}

		var remaining []rentalModel
		if err := tx.Where("machine_id = ?", machineID).Find(&remaining).Error; err != nil {
			return err
		}
		rentals := make([]domain.Rental, 0, len(remaining))
		for _, rr := range remaining {
			rentals = append(rentals, toDomainRental(rr))
		}
		next := domain.DeriveRentalStatus(rentals)

		if err := tx.Model(&machineModel{}).Where("id = ?", machineID).
			Updates(map[string]any{"status": string(next), "last_updated_at": now}).Error; err != nil {
			return err
		}

		var err error
		out, err = getMachine(tx, machineID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Sell records the purchase and moves the machine to sold regardless of its
// prior status; only an already-sold machine is refused. Outstanding rentals
// are not released.
func (r *MachineRepository) Sell(ctx context.Context, machineID int64, purchase *domain.Purchase) (*domain.Machine, error) {
	var out *domain.Machine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m machineModel
		if err := tx.Where("is_active = ?", true).First(&m, machineID).Error; err != nil {
			return err
		}
		if m.Status == string(domain.MachineSold) {
			return ErrMachineAlreadySold
		}

		now := time.Now().UTC()
		purchase.ID = uuid.NewString()
		purchase.CreatedAt = now
		if purchase.Date.IsZero() {
			purchase.Date = now
		}

		pm := purchaseModel{
			ID:        purchase.ID,
			MachineID: machineID,
			BuyerID:   purchase.BuyerID,
			Price:     purchase.Price,
			Date:      purchase.Date,
			Notes:     strOrNil(purchase.Notes),
			CreatedAt: purchase.CreatedAt,
		}
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}

		if err := tx.Model(&machineModel{}).Where("id = ?", machineID).
			Updates(map[string]any{"status": string(domain.MachineSold), "last_updated_at": now}).Error; err != nil {
			return err
		}

		var err error
		out, err = getMachine(tx, machineID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMaintenance always appends; the status changes only when newStatus
// is supplied by the caller.
func (r *MachineRepository) AppendMaintenance(ctx context.Context, machineID int64, entry *domain.Maintenance, newStatus *domain.MachineStatus) (*domain.Machine, error) {
	var out *domain.Machine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m machineModel
		if err := tx.Where("is_active = ?", true).First(&m, machineID).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		entry.ID = uuid.NewString()
		entry.CreatedAt = now
		if entry.PerformedAt.IsZero() {
			entry.PerformedAt = now
		}

		mm := maintenanceModel{
			ID:          entry.ID,
			MachineID:   machineID,
			Title:       entry.Title,
			Description: strOrNil(entry.Description),
			Cost:        entry.Cost,
			PerformedAt: entry.PerformedAt,
			PerformedBy: strOrNil(entry.PerformedBy),
			CreatedAt:   now,
		}
		if err := tx.Create(&mm).Error; err != nil {
			return err
		}

		updates := map[string]any{"last_updated_at": now}
		if newStatus != nil {
			updates["status"] = string(*newStatus)
		}
		if err := tx.Model(&machineModel{}).Where("id = ?", machineID).Updates(updates).Error; err != nil {
			return err
		}

		var err error
		out, err = getMachine(tx, machineID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
