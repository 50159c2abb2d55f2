package entity

import "time"

// Tipos de movimiento de inventario (value object conceptual).
const (
	MovementTypeIn     = "in"     // entrada: suma Quantity al stock
	MovementTypeOut    = "out"    // salida: resta Quantity del stock
	MovementTypeAdjust = "adjust" // ajuste: fija el stock en NewStock
)

// ValidMovementType indica si s es uno de los tres tipos reconocidos.
func ValidMovementType(s string) bool {
	return s == MovementTypeIn || s == MovementTypeOut || s == MovementTypeAdjust
}

// StockMovement representa un movimiento de inventario. Es inmutable una vez
// creado: las correcciones son movimientos nuevos, nunca ediciones. Forma un
// historial append-only por producto.
// Exactamente uno de {Quantity, NewStock} es significativo según Type:
// Quantity para in/out, NewStock para adjust.
type StockMovement struct {
	ID             string
	ProductID      string
	UserID         string // actor; puede quedar vacío si no hay gateway delante
	Type           string // in, out, adjust
	Quantity       *int64 // delta para in/out (siempre >= 1)
	NewStock       *int64 // valor absoluto para adjust (>= 0)
	PreviousStock  int64  // stock antes de aplicar, para auditoría
	ResultingStock int64  // stock después de aplicar
	Notes          string
	PerformedAt    time.Time
	IPAddress      string
	UserAgent      string
	CreatedAt      time.Time
}
