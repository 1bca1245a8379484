package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is one sale or purchase transaction with a counterparty.
// TotalAmount is fixed at creation; PaidAmount only ever grows and is
// written exclusively by the payment processor. There is no balance
// column: the balance is computed from the other two fields wherever it
// is needed, so it can never drift.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CounterpartyID uuid.UUID       `gorm:"type:uuid;not null;index" json:"counterparty_id"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"branch_id"`
	Direction      enum.Direction  `gorm:"type:varchar(20);not null;index" json:"direction"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID    *uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Counterparty *Counterparty `gorm:"foreignKey:CounterpartyID" json:"counterparty,omitempty"`
	Branch       *Branch       `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Items        []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:InvoiceID" json:"-"`
}

// Balance returns what is still owed on the invoice.
func (i *Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// Settled reports whether the invoice is fully paid.
func (i *Invoice) Settled() bool {
	return !i.Balance().IsPositive()
}

// MarshalJSON adds the computed balance to API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Balance decimal.Decimal `json:"balance"`
	}{
		Alias:   Alias(i),
		Balance: i.Balance(),
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line on an invoice. Items are created together with
// their invoice and never change afterwards.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Unit      enum.Unit       `gorm:"type:varchar(10);not null" json:"unit"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
