package dto

import "time"

// ApplyMovementRequest body para POST /api/stock-movements.
// quantity aplica a in/out; new_stock aplica a adjust. Las reglas condicionales
// por tipo se validan en el caso de uso (los tags no expresan el XOR).
type ApplyMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Type      string `json:"type" validate:"required,oneof=in out adjust"`
	Quantity  *int64 `json:"quantity,omitempty"`
	NewStock  *int64 `json:"new_stock,omitempty"`
	Notes     string `json:"notes,omitempty" validate:"max=500"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	UserID         string    `json:"user_id,omitempty"`
	Type           string    `json:"type"`
	Quantity       *int64    `json:"quantity,omitempty"`
	NewStock       *int64    `json:"new_stock,omitempty"`
	PreviousStock  int64     `json:"previous_stock"`
	ResultingStock int64     `json:"resulting_stock"`
	Notes          string    `json:"notes,omitempty"`
	PerformedAt    time.Time `json:"performed_at"`
	IPAddress      string    `json:"ip_address,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
}

// MovementListQuery parámetros de query para GET /api/stock-movements.
type MovementListQuery struct {
	ProductID string     `query:"product_id"`
	Type      string     `query:"type"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	Limit     int        `query:"limit"`
	Offset    int        `query:"offset"`
}

// Defaults normaliza la paginación.
func (q *MovementListQuery) Defaults() {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items  []MovementResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
