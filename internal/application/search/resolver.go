package search

import "github.com/hkxdv/pim-api/internal/application/ports"

// Drivers de búsqueda reconocidos.
const (
	DriverDatabase  = "database"
	DriverTypesense = "typesense"
)

// Resolve elige el buscador según el driver configurado. Es una función pura:
// se llama una vez en el arranque y el resultado queda fijo para toda la vida
// del proceso. Un driver desconocido cae al buscador local.
func Resolve(driver string, local, remote ports.ProductSearcher) ports.ProductSearcher {
	if driver == DriverTypesense && remote != nil {
		return remote
	}
	return local
}
