package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerName string            `json:"customer_name" validate:"max=200"`
	Notes        string            `json:"notes" validate:"max=500"`
	Items        []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Total        decimal.Decimal    `json:"total"`
	Notes        string             `json:"notes,omitempty"`
	CreatedBy    string             `json:"created_by,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Items        []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
