package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Counterparty is a customer or supplier the business trades with.
// Its outstanding balance is never stored here: it is always derived
// from the unpaid invoices of the matching direction.
type Counterparty struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Name      string                `gorm:"size:255;not null" json:"name"`
	Type      enum.CounterpartyType `gorm:"type:varchar(20);not null;index" json:"type"`
	Phone     *string               `gorm:"size:50" json:"phone,omitempty"`
	Location  *string               `gorm:"size:255" json:"location,omitempty"`
	Notes     *string               `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	DeletedAt gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CounterpartyID" json:"-"`
	Payments []Payment `gorm:"foreignKey:CounterpartyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new counterparty
func (cp *Counterparty) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Counterparty model
func (Counterparty) TableName() string {
	return "counterparties"
}
