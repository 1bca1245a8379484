package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a produce line traded by the business. Prices are kept per
// selling unit; the conversion factors describe how cartons break down
// into trays and kilograms for inventory views.
type Product struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name               string           `gorm:"size:255;not null" json:"name"`
	Description        *string          `gorm:"type:text" json:"description,omitempty"`
	CostPriceCarton    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"cost_price_carton,omitempty"`
	CostPriceTray      *decimal.Decimal `gorm:"type:decimal(15,2)" json:"cost_price_tray,omitempty"`
	CostPriceKg        *decimal.Decimal `gorm:"type:decimal(15,2)" json:"cost_price_kg,omitempty"`
	SellingPriceCarton *decimal.Decimal `gorm:"type:decimal(15,2)" json:"selling_price_carton,omitempty"`
	SellingPriceTray   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"selling_price_tray,omitempty"`
	SellingPriceKg     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"selling_price_kg,omitempty"`
	KgPerTray          *decimal.Decimal `gorm:"type:decimal(10,3)" json:"kg_per_tray,omitempty"`
	TrayPerCarton      *decimal.Decimal `gorm:"type:decimal(10,3)" json:"tray_per_carton,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
