package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest represents one line of a create invoice request
type InvoiceItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Unit      string          `json:"unit" binding:"required,oneof=carton tray kg"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest represents the create invoice request payload
type CreateInvoiceRequest struct {
	Direction      string               `json:"direction" binding:"required,oneof=sale purchase"`
	CounterpartyID uuid.UUID            `json:"counterparty_id" binding:"required"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	PaidAmount     decimal.Decimal      `json:"paid_amount"`
	Notes          *string              `json:"notes"`
}
