package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, user_id, type, quantity, new_stock, previous_stock, resulting_stock, notes, performed_at, ip_address, user_agent, created_at`

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no existen Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	userID := (*string)(nil)
	if movement.UserID != "" {
		userID = &movement.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, userID, movement.Type,
		movement.Quantity, movement.NewStock, movement.PreviousStock, movement.ResultingStock,
		movement.Notes, movement.PerformedAt, movement.IPAddress, movement.UserAgent, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos filtrados por producto, tipo y rango de fechas,
// más reciente primero.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND performed_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND performed_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY performed_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos registrados para un producto.
func (r *StockMovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var userID *string
	err := row.Scan(
		&m.ID, &m.ProductID, &userID, &m.Type,
		&m.Quantity, &m.NewStock, &m.PreviousStock, &m.ResultingStock,
		&m.Notes, &m.PerformedAt, &m.IPAddress, &m.UserAgent, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		m.UserID = *userID
	}
	return &m, nil
}
