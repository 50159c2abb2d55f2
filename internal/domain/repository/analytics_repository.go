package repository

import "github.com/shopspring/decimal"

// DashboardSummary métricas agregadas para el tablero administrativo.
type DashboardSummary struct {
	TotalProducts    int64
	ActiveProducts   int64
	OutOfStock       int64
	InventoryValue   decimal.Decimal // sum(price * stock) de productos activos
	MovementsLast30d int64
}

// AnalyticsRepository define el puerto de consultas agregadas (solo lectura).
type AnalyticsRepository interface {
	GetDashboardSummary() (*DashboardSummary, error)
}
