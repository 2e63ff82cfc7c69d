package payment

type CreateIntentRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency"`
	Purpose  string  `json:"purpose"`
}
