package listing

type CreateMineRequest struct {
	Name          string  `json:"name" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	CommodityType string  `json:"commodity_type" binding:"required"`
	Status        string  `json:"status" validate:"omitempty,mine_status"`
	Price         float64 `json:"price" binding:"required"`
	Description   string  `json:"description"`
}

type UpdateMineRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	CommodityType *string  `json:"commodity_type"`
	Status        *string  `json:"status"`
	Price         *float64 `json:"price"`
	Description   *string  `json:"description"`
}

type CreateMineralRequest struct {
	Name         string  `json:"name" binding:"required"`
	MineralType  string  `json:"mineral_type" binding:"required"`
	Grade        string  `json:"grade"`
	Form         string  `json:"form"`
	MinOrder     float64 `json:"min_order"`
	MaxOrder     float64 `json:"max_order"`
	PricePerUnit float64 `json:"price_per_unit" binding:"required"`
	Currency     string  `json:"currency"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
}

type UpdateMineralRequest struct {
	Name         *string  `json:"name"`
	MineralType  *string  `json:"mineral_type"`
	Grade        *string  `json:"grade"`
	Form         *string  `json:"form"`
	MinOrder     *float64 `json:"min_order"`
	MaxOrder     *float64 `json:"max_order"`
	PricePerUnit *float64 `json:"price_per_unit"`
	Currency     *string  `json:"currency"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
}

// AttachRequest links an already-uploaded document to a listing.
type AttachRequest struct {
	Filename string `json:"filename" binding:"required"`
	URL      string `json:"url" binding:"required"`
	MimeType string `json:"mimetype" binding:"required"`
	Size     int64  `json:"size" binding:"required"`
}
