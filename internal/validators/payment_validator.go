package validators

// Amount signs are checked by the wallet service so a non-positive amount maps to its own error.
// The upper bound matches utils.MaxTopUpAmount.

type PaymentIntentRequest struct {
	Amount int64 `json:"amount" validate:"lte=1000000"`
}

type WalletTopUpRequest struct {
	Amount          int64  `json:"amount" validate:"lte=1000000"`
	PaymentIntentID string `json:"payment_intent_id" validate:"omitempty,max=255"`
}

func ValidatePaymentIntent(req *PaymentIntentRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateWalletTopUp(req *WalletTopUpRequest) ValidationErrors {
	req.PaymentIntentID = SanitizeInput(req.PaymentIntentID)
	return ValidateStruct(req)
}
