package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse métricas agregadas del inventario.
type DashboardSummaryResponse struct {
	TotalProducts    int64           `json:"total_products"`
	ActiveProducts   int64           `json:"active_products"`
	OutOfStock       int64           `json:"out_of_stock"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	MovementsLast30d int64           `json:"movements_last_30d"`
}
