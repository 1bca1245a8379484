package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment applies money toward exactly one invoice. A payment that
// settles several invoices is recorded as one row per invoice. The
// branch is inherited from the invoice being paid, so branch-level cash
// reports follow where the trade happened. Rows are immutable once
// written.
type Payment struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CounterpartyID uuid.UUID        `gorm:"type:uuid;not null;index" json:"counterparty_id"`
	InvoiceID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"invoice_id"`
	BranchID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	Amount         decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentType    enum.PaymentType `gorm:"type:varchar(10);not null" json:"payment_type"`
	Notes          *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID    *uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time        `gorm:"index" json:"created_at"`

	// Relationships
	Counterparty *Counterparty `gorm:"foreignKey:CounterpartyID" json:"-"`
	Invoice      *Invoice      `gorm:"foreignKey:InvoiceID" json:"-"`
	Branch       *Branch       `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
