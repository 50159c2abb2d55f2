package postgres

import (
	"context"

	"github.com/hkxdv/pim-api/internal/application/ports"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ ports.ProductSearcher = (*LocalSearcher)(nil)

// LocalSearcher implementa el puerto de búsqueda sobre la query local de
// productos (ILIKE). Es el driver "database" del resolver de búsqueda.
type LocalSearcher struct {
	repo *ProductRepo
}

// NewLocalSearcher construye el buscador local.
func NewLocalSearcher(repo *ProductRepo) *LocalSearcher {
	return &LocalSearcher{repo: repo}
}

// Search delega en el listado filtrado del repositorio.
func (s *LocalSearcher) Search(_ context.Context, filter repository.ProductFilter) (*repository.ProductPage, error) {
	return s.repo.List(filter)
}
