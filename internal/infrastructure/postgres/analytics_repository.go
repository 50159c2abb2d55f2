package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardSummary calcula las métricas del tablero en una sola pasada
// sobre products más un conteo sobre stock_movements.
func (r *AnalyticsRepo) GetDashboardSummary() (*repository.DashboardSummary, error) {
	var s repository.DashboardSummary
	var value *decimal.Decimal

	err := r.q.QueryRow(context.Background(), `
		SELECT
			count(*),
			count(*) FILTER (WHERE is_active),
			count(*) FILTER (WHERE is_active AND stock = 0),
			COALESCE(sum(price * stock) FILTER (WHERE is_active), 0)
		FROM products
		WHERE deleted_at IS NULL`).Scan(
		&s.TotalProducts, &s.ActiveProducts, &s.OutOfStock, &value,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	if value != nil {
		s.InventoryValue = *value
	} else {
		s.InventoryValue = decimal.Zero
	}

	err = r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM stock_movements
		WHERE performed_at >= now() - interval '30 days'`).Scan(&s.MovementsLast30d)
	if err != nil {
		return nil, fmt.Errorf("dashboard movements: %w", err)
	}
	return &s, nil
}
