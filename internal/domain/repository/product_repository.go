package repository

import "github.com/hkxdv/pim-api/internal/domain/entity"

// ProductFilter criterios de búsqueda/orden/paginación para listados de productos.
// Lo comparten el repositorio local y el buscador externo (Typesense).
type ProductFilter struct {
	Search        string // coincide contra sku, name, brand, model, barcode
	SortField     string // name, sku, price, stock, created_at
	SortDirection string // asc | desc
	IsActive      *bool
	Page          int
	PerPage       int
}

// ProductPage página de resultados con el total para paginación.
type ProductPage struct {
	Items   []*entity.Product
	Total   int64
	Page    int
	PerPage int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock y GetByIDForUpdate existen para el motor de movimientos:
// el stock nunca se modifica por Update.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo producto.
	GetByIDForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int64) error
	List(filter ProductFilter) (*ProductPage, error)
	// SoftDelete marca el producto como eliminado/inactivo; la fila se conserva
	// porque los movimientos históricos la referencian.
	SoftDelete(id string) error
}
