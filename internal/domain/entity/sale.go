package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta. Cada ítem descuenta stock vía un movimiento
// "out" dentro de la misma transacción que persiste la venta.
type Sale struct {
	ID           string
	CustomerName string
	Total        decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	Items        []SaleItem
}

// SaleItem línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
