package domain

import "time"

type MachineStatus string

const (
	MachineAvailable   MachineStatus = "available"
	MachineRented      MachineStatus = "rented"
	MachineSold        MachineStatus = "sold"
	MachineMaintenance MachineStatus = "maintenance"
	MachineReserved    MachineStatus = "reserved"
)

func ValidMachineStatus(s MachineStatus) bool {
	switch s {
	case MachineAvailable, MachineRented, MachineSold, MachineMaintenance, MachineReserved:
		return true
	}
	return false
}

// MachineCategories is the closed set of accepted machine categories.
var MachineCategories = map[string]bool{
	"excavator": true, "bulldozer": true, "loader": true, "grader": true,
	"crane": true, "compactor": true, "dump-truck": true, "backhoe": true,
	"forklift": true, "concrete-mixer": true, "drill": true, "generator": true,
	"other": true,
}

type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalReturned  RentalStatus = "returned"
	RentalCancelled RentalStatus = "cancelled"
)

// Rental is an embedded sub-record of a Machine, addressed by its generated
// id through the parent aggregate only.
type Rental struct {
	ID          string       `json:"id"`
	RenterID    int64        `json:"renter_id"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	PricePerDay float64      `json:"price_per_day"`
	Notes       string       `json:"notes,omitempty"`
	Status      RentalStatus `json:"status"`
	ReturnedAt  *time.Time   `json:"returned_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type Purchase struct {
	ID        string    `json:"id"`
	BuyerID   int64     `json:"buyer_id"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Maintenance struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Cost        float64   `json:"cost"`
	PerformedAt time.Time `json:"performed_at"`
	PerformedBy string    `json:"performed_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Machine struct {
	ID                 int64         `json:"id"`
	OwnerID            int64         `json:"owner_id"`
	Name               string        `json:"name"`
	Category           string        `json:"category"`
	Brand              string        `json:"brand,omitempty"`
	Model              string        `json:"model"`
	Year               int           `json:"year"`
	PurchasePrice      float64       `json:"purchase_price,omitempty"`
	RentalPricePerDay  float64       `json:"rental_price_per_day,omitempty"`
	SerialNumber       string        `json:"serial_number,omitempty"`
	Location           string        `json:"location,omitempty"`
	Description        string        `json:"description,omitempty"`
	Status             MachineStatus `json:"status"`
	Rentals            []Rental      `json:"rentals"`
	Purchases          []Purchase    `json:"purchases"`
	MaintenanceHistory []Maintenance `json:"maintenance_history"`
	IsActive           bool          `json:"-"`
	CreatedAt          time.Time     `json:"created_at"`
	LastUpdatedAt      time.Time     `json:"last_updated_at"`
}

// DeriveRentalStatus computes the machine status implied by its rental list:
// rented while any rental is active and not yet returned, available otherwise.
// Explicit statuses (sold, maintenance, reserved) are set elsewhere and are
// never produced here.
func DeriveRentalStatus(rentals []Rental) MachineStatus {
	for _, r := range rentals {
		if r.Status == RentalActive && r.ReturnedAt == nil {
			return MachineRented
		}
	}
	return MachineAvailable
}

// CurrentRental returns the first active, not-returned rental, or nil.
func (m *Machine) CurrentRental() *Rental {
	for i := range m.Rentals {
		r := &m.Rentals[i]
		if r.Status == RentalActive && r.ReturnedAt == nil {
			return r
		}
	}
	return nil
}
