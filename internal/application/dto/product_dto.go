package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Stock inicia en 0; las entradas posteriores se registran como movimientos.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Brand    string          `json:"brand" validate:"max=100"`
	Model    string          `json:"model" validate:"max=100"`
	Barcode  string          `json:"barcode" validate:"max=100"`
	Price    decimal.Decimal `json:"price"`
	Metadata json.RawMessage `json:"metadata"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock).
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand    *string          `json:"brand" validate:"omitempty,max=100"`
	Model    *string          `json:"model" validate:"omitempty,max=100"`
	Barcode  *string          `json:"barcode" validate:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
	IsActive *bool            `json:"is_active"`
	Metadata json.RawMessage  `json:"metadata"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Barcode   string          `json:"barcode"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	IsActive  bool            `json:"is_active"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListQuery parámetros de query para listados y búsqueda.
type ProductListQuery struct {
	Search        string `query:"search"`
	SortField     string `query:"sort_field"`
	SortDirection string `query:"sort_direction"`
	IsActive      *bool  `query:"is_active"`
	Page          int    `query:"page"`
	PerPage       int    `query:"per_page"`
}

// Defaults normaliza paginación y orden.
func (q *ProductListQuery) Defaults() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 20
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}
	if q.SortField == "" {
		q.SortField = "created_at"
	}
	if q.SortDirection != "asc" {
		q.SortDirection = "desc"
	}
}
