package ports

import (
	"context"

	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// ProductSearcher define el puerto de búsqueda de productos. Dos adaptadores
// lo implementan con el mismo contrato: la query local sobre PostgreSQL y el
// cliente Typesense. Cuál se usa se decide una sola vez al arrancar, según
// configuración; el resto del código solo conoce esta interfaz.
type ProductSearcher interface {
	Search(ctx context.Context, filter repository.ProductFilter) (*repository.ProductPage, error)
}
