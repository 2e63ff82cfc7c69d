package domain

import "time"

type MineStatus string

const (
	MineActive      MineStatus = "Active"
	MineIdle        MineStatus = "Idle"
	MineExploration MineStatus = "Exploration"
	MineDevelopment MineStatus = "Development"
)

func ValidMineStatus(s MineStatus) bool {
	switch s {
	case MineActive, MineIdle, MineExploration, MineDevelopment:
		return true
	}
	return false
}

// Mine is a listing offered for investment. Owner is immutable after
// creation; accepting an offer does not transfer it.
type Mine struct {
	ID            int64        `json:"id"`
	OwnerID       int64        `json:"owner_id"`
	Name          string       `json:"name"`
	Location      string       `json:"location"`
	CommodityType string       `json:"commodity_type"`
	Status        MineStatus   `json:"status"`
	Price         float64      `json:"price"`
	Description   string       `json:"description,omitempty"`
	Attachments   []Attachment `json:"attachments"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
