package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Debe llamarse dentro de la misma
// transacción que aplicó los movimientos de salida.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sales (id, customer_name, total, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sale.ID, sale.CustomerName, sale.Total, sale.Notes, nullIfEmpty(sale.CreatedBy), sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	var s entity.Sale
	var createdBy *string
	err := r.q.QueryRow(context.Background(), `
		SELECT id, customer_name, total, notes, created_by, created_at
		FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.CustomerName, &s.Total, &s.Notes, &createdBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

// List lista ventas recientes (sin líneas) con paginación.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, customer_name, total, notes, created_by, created_at
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var createdBy *string
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.Total, &s.Notes, &createdBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
