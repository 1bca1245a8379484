package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is the stock level of one product at one branch.
// Quantity bookkeeping on sales and purchases happens outside this
// service; the rows are exposed read-only here.
type InventoryItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_branch_product" json:"branch_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_branch_product" json:"product_id"`
	QuantityCarton decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity_carton"`
	QuantityTray   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity_tray"`
	QuantityKg     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity_kg"`
	LastUpdated    time.Time       `gorm:"autoUpdateTime" json:"last_updated"`

	// Relationships
	Branch  Branch  `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (ii *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory"
}
