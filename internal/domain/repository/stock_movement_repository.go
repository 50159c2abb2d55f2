package repository

import (
	"time"

	"github.com/hkxdv/pim-api/internal/domain/entity"
)

// MovementFilter criterios de consulta del historial de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia para movimientos (DIP).
// El historial es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int64, error)
}
