package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/sales"
	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica commit/rollback: la función corre contra una
// copia del estado y solo se escribe de vuelta si no hubo error.
// ──────────────────────────────────────────────────────────────────────────────

const (
	productA = "11111111-1111-4111-8111-111111111111"
	productB = "22222222-2222-4222-8222-222222222222"
)

type saleState struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	sales     map[string]*entity.Sale
}

func (s *saleState) clone() *saleState {
	c := &saleState{
		products: make(map[string]*entity.Product, len(s.products)),
		sales:    make(map[string]*entity.Sale, len(s.sales)),
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, sl := range s.sales {
		cp := *sl
		c.sales[id] = &cp
	}
	c.movements = append(c.movements, s.movements...)
	return c
}

type saleTxRunner struct {
	mu    sync.Mutex
	state *saleState
}

func newSaleTxRunner(products ...*entity.Product) *saleTxRunner {
	s := &saleState{products: make(map[string]*entity.Product), sales: make(map[string]*entity.Sale)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return &saleTxRunner{state: s}
}

func (r *saleTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := r.state.clone()
	if err := fn(&stMovRepo{s: staged}, &stProductRepo{s: staged}, &stSaleRepo{s: staged}); err != nil {
		return err
	}
	r.state = staged
	return nil
}

type stProductRepo struct{ s *saleState }

func (m *stProductRepo) Create(p *entity.Product) error        { m.s.products[p.ID] = p; return nil }
func (m *stProductRepo) GetByID(id string) (*entity.Product, error) { return m.s.products[id], nil }
func (m *stProductRepo) GetBySKU(string) (*entity.Product, error)   { return nil, nil }
func (m *stProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return m.s.products[id], nil
}
func (m *stProductRepo) Update(p *entity.Product) error { m.s.products[p.ID] = p; return nil }
func (m *stProductRepo) UpdateStock(productID string, stock int64) error {
	if p, ok := m.s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}
func (m *stProductRepo) List(repository.ProductFilter) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}
func (m *stProductRepo) SoftDelete(string) error { return nil }

type stMovRepo struct{ s *saleState }

func (m *stMovRepo) Create(mov *entity.StockMovement) error {
	m.s.movements = append(m.s.movements, mov)
	return nil
}
func (m *stMovRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (m *stMovRepo) List(repository.MovementFilter) ([]*entity.StockMovement, error) {
	return m.s.movements, nil
}
func (m *stMovRepo) CountByProduct(string) (int64, error) { return 0, nil }

type stSaleRepo struct{ s *saleState }

func (m *stSaleRepo) Create(sale *entity.Sale) error {
	m.s.sales[sale.ID] = sale
	return nil
}
func (m *stSaleRepo) GetByID(id string) (*entity.Sale, error) { return m.s.sales[id], nil }
func (m *stSaleRepo) List(int, int) ([]*entity.Sale, error)   { return nil, nil }

func sellable(id, sku string, stock int64, price float64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID: id, SKU: sku, Name: "Producto " + sku,
		Price: decimal.NewFromFloat(price), Stock: stock, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYRegistraMovimientos(t *testing.T) {
	runner := newSaleTxRunner(
		sellable(productA, "LAP-001", 10, 1500),
		sellable(productB, "MOU-001", 20, 25.50),
	)
	uc := sales.NewCreateSaleUseCase(runner)

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerName: "Cliente de mostrador",
		Items: []dto.SaleItemRequest{
			{ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 3},
		},
	}, "vendedor-1")

	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	// Total = 2*1500 + 3*25.50
	assert.True(t, decimal.NewFromFloat(3076.50).Equal(out.Total), "total = %s", out.Total)
	assert.Equal(t, "vendedor-1", out.CreatedBy)

	assert.Equal(t, int64(8), runner.state.products[productA].Stock)
	assert.Equal(t, int64(17), runner.state.products[productB].Stock)

	require.Len(t, runner.state.movements, 2, "un movimiento out por línea de venta")
	for _, mov := range runner.state.movements {
		assert.Equal(t, entity.MovementTypeOut, mov.Type)
		assert.Contains(t, mov.Notes, "venta "+out.ID)
	}
}

func TestCreateSale_StockInsuficienteRevierteTodo(t *testing.T) {
	runner := newSaleTxRunner(
		sellable(productA, "LAP-001", 10, 1500),
		sellable(productB, "MOU-001", 1, 25.50),
	)
	uc := sales.NewCreateSaleUseCase(runner)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 5}, // insuficiente
		},
	}, "")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), runner.state.products[productA].Stock,
		"la línea válida también se revierte: la venta es atómica")
	assert.Empty(t, runner.state.movements)
	assert.Empty(t, runner.state.sales)
}

func TestCreateSale_ProductoInactivoRechaza(t *testing.T) {
	p := sellable(productA, "LAP-001", 10, 1500)
	p.IsActive = false
	uc := sales.NewCreateSaleUseCase(newSaleTxRunner(p))

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productA, Quantity: 1}},
	}, "")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_SinItemsRechaza(t *testing.T) {
	uc := sales.NewCreateSaleUseCase(newSaleTxRunner())

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{}, "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadInvalidaRechaza(t *testing.T) {
	uc := sales.NewCreateSaleUseCase(newSaleTxRunner(sellable(productA, "LAP-001", 10, 1500)))

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productA, Quantity: 0}},
	}, "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
