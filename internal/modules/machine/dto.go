package machine

import "time"

type CreateMachineRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model" binding:"required"`
	Year              int     `json:"year" binding:"required"`
	PurchasePrice     float64 `json:"purchase_price"`
	RentalPricePerDay float64 `json:"rental_price_per_day"`
	SerialNumber      string  `json:"serial_number"`
	Location          string  `json:"location"`
	Description       string  `json:"description"`
	OwnerID           int64   `json:"owner_id"`
}

type UpdateMachineRequest struct {
	Name              *string  `json:"name"`
	Category          *string  `json:"category"`
	Brand             *string  `json:"brand"`
	Model             *string  `json:"model"`
	Year              *int     `json:"year"`
	PurchasePrice     *float64 `json:"purchase_price"`
	RentalPricePerDay *float64 `json:"rental_price_per_day"`
	SerialNumber      *string  `json:"serial_number"`
	Location          *string  `json:"location"`
	Description       *string  `json:"description"`
}

type RentRequest struct {
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	PricePerDay float64    `json:"price_per_day" binding:"required"`
	Notes       string     `json:"notes"`
}

type SellRequest struct {
	BuyerID int64      `json:"buyer_id" binding:"required"`
	Price   float64    `json:"price" binding:"required"`
	Date    *time.Time `json:"date"`
	Notes   string     `json:"notes"`
}

type MaintenanceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Cost        float64    `json:"cost"`
	PerformedAt *time.Time `json:"performed_at"`
	PerformedBy string     `json:"performed_by"`
	SetStatus   string     `json:"set_status"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
