package offer

type SubmitOfferRequest struct {
	MineID  int64   `json:"mine_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
	Message string  `json:"message"`
}
