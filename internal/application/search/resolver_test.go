package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hkxdv/pim-api/internal/application/search"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

type stubSearcher struct{ name string }

func (s *stubSearcher) Search(context.Context, repository.ProductFilter) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func TestResolve_SeleccionPorDriver(t *testing.T) {
	local := &stubSearcher{name: "local"}
	remote := &stubSearcher{name: "typesense"}

	cases := []struct {
		name   string
		driver string
		want   *stubSearcher
	}{
		{"database usa el buscador local", search.DriverDatabase, local},
		{"typesense usa el buscador remoto", search.DriverTypesense, remote},
		{"driver desconocido cae al local", "elastic", local},
		{"vacío cae al local", "", local},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := search.Resolve(tc.driver, local, remote)
			assert.Same(t, tc.want, got)
		})
	}
}

func TestResolve_TypesenseSinRemotoCaeAlLocal(t *testing.T) {
	local := &stubSearcher{name: "local"}
	got := search.Resolve(search.DriverTypesense, local, nil)
	assert.Same(t, local, got)
}
