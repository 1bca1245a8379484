package request

import "github.com/shopspring/decimal"

// ProcessPaymentRequest represents the process payment request payload.
// The amount is sent as a string or number and parsed exactly; floats
// never enter the money path.
type ProcessPaymentRequest struct {
	Direction string          `json:"direction" binding:"required,oneof=sale purchase"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Note      string          `json:"note"`
}

// PreviewPaymentRequest represents the allocation preview request payload
type PreviewPaymentRequest struct {
	Direction string          `json:"direction" binding:"required,oneof=sale purchase"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}
