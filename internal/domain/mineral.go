package domain

import "time"

type MineralType string

const (
	MineralMetallic    MineralType = "metallic"
	MineralNonMetallic MineralType = "non-metallic"
	MineralPrecious    MineralType = "precious"
	MineralIndustrial  MineralType = "industrial"
	MineralEnergy      MineralType = "energy"
	MineralGemstone    MineralType = "gemstone"
)

func ValidMineralType(t MineralType) bool {
	switch t {
	case MineralMetallic, MineralNonMetallic, MineralPrecious, MineralIndustrial, MineralEnergy, MineralGemstone:
		return true
	}
	return false
}

type Mineral struct {
	ID            int64        `json:"id"`
	CreatedBy     int64        `json:"created_by"`
	Name          string       `json:"name"`
	MineralType   MineralType  `json:"mineral_type"`
	Grade         string       `json:"grade,omitempty"`
	Form          string       `json:"form,omitempty"`
	MinOrder      float64      `json:"min_order,omitempty"`
	MaxOrder      float64      `json:"max_order,omitempty"`
	PricePerUnit  float64      `json:"price_per_unit"`
	Currency      string       `json:"currency"`
	Location      string       `json:"location,omitempty"`
	Description   string       `json:"description,omitempty"`
	Attachments   []Attachment `json:"attachments"`
	IsActive      bool         `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	LastUpdatedAt time.Time    `json:"last_updated_at"`
}
