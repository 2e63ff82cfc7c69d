package domain

import "time"

type OfferStatus string

const (
	OfferPending  OfferStatus = "Pending"
	OfferAccepted OfferStatus = "Accepted"
	OfferRejected OfferStatus = "Rejected"
)

// Offer is an investor's bid against a mine. Lifecycle: created Pending,
// transitions to Accepted or Rejected exactly once, never reverts. At most
// one offer per mine may be Accepted at any time.
type Offer struct {
	ID         int64       `json:"id"`
	MineID     int64       `json:"mine_id"`
	InvestorID int64       `json:"investor_id"`
	Amount     float64     `json:"amount"`
	Message    string      `json:"message,omitempty"`
	Status     OfferStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
