package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Stock solo se modifica a través de movimientos (ApplyMovementUseCase),
// nunca por el CRUD de productos; así el historial en stock_movements
// siempre coincide con el stock actual.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Brand       string
	Model       string
	Barcode     string
	Price       decimal.Decimal // precio de venta
	Stock       int64           // invariante: Stock >= 0
	IsActive    bool
	Metadata    json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // soft delete: se conserva la fila por el historial
}
