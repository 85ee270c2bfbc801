package req

type MakeOfferRequest struct {
	ChatID      string  `json:"chatId" validate:"required"`
	JobID       string  `json:"jobRequestId" validate:"required"`
	OfferAmount float64 `json:"offerAmount" validate:"required,gt=0"`
}

type OfferDecisionRequest struct {
	ChatID string `json:"chatId" validate:"required"`
	JobID  string `json:"jobRequestId" validate:"required"`
}
