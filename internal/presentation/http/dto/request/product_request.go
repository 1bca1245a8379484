package request

import "github.com/shopspring/decimal"

// ProductRequest represents the create/update product request payload
type ProductRequest struct {
	Name               string           `json:"name"`
	Description        *string          `json:"description"`
	CostPriceCarton    *decimal.Decimal `json:"cost_price_carton"`
	CostPriceTray      *decimal.Decimal `json:"cost_price_tray"`
	CostPriceKg        *decimal.Decimal `json:"cost_price_kg"`
	SellingPriceCarton *decimal.Decimal `json:"selling_price_carton"`
	SellingPriceTray   *decimal.Decimal `json:"selling_price_tray"`
	SellingPriceKg     *decimal.Decimal `json:"selling_price_kg"`
	KgPerTray          *decimal.Decimal `json:"kg_per_tray"`
	TrayPerCarton      *decimal.Decimal `json:"tray_per_carton"`
}

// BranchRequest represents the create/update branch request payload
type BranchRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
}
