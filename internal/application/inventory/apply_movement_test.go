package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/inventory"
	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memTxRunner reproduce las dos garantías que el caso de uso espera de la BD:
//   - serialización: un mutex global hace las veces del SELECT FOR UPDATE, dos
//     transacciones nunca ven el mismo stock obsoleto;
//   - atomicidad: la función corre contra una copia del estado y solo se
//     escribe de vuelta si no hubo error (commit/rollback).
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "11111111-1111-4111-8111-111111111111"
	testActorID   = "22222222-2222-4222-8222-222222222222"
)

type memState struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func (s *memState) clone() *memState {
	c := &memState{products: make(map[string]*entity.Product, len(s.products))}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.movements = make([]*entity.StockMovement, len(s.movements))
	copy(c.movements, s.movements)
	return c
}

type memTxRunner struct {
	mu    sync.Mutex
	state *memState
}

func newMemTxRunner(products ...*entity.Product) *memTxRunner {
	s := &memState{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return &memTxRunner{state: s}
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := r.state.clone()
	if err := fn(&memMovementRepo{s: staged}, &memProductRepo{s: staged}); err != nil {
		return err
	}
	r.state = staged
	return nil
}

func (r *memTxRunner) product(id string) *entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.products[id]
}

func (r *memTxRunner) ledger() []*entity.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockMovement, len(r.state.movements))
	copy(out, r.state.movements)
	return out
}

type memProductRepo struct{ s *memState }

func (m *memProductRepo) Create(p *entity.Product) error {
	m.s.products[p.ID] = p
	return nil
}

func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.s.products[id], nil
}

func (m *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range m.s.products {
		if p.SKU == sku && p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return m.s.products[id], nil
}

func (m *memProductRepo) Update(p *entity.Product) error {
	m.s.products[p.ID] = p
	return nil
}

func (m *memProductRepo) UpdateStock(productID string, stock int64) error {
	if p, ok := m.s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}

func (m *memProductRepo) List(repository.ProductFilter) (*repository.ProductPage, error) {
	return &repository.ProductPage{}, nil
}

func (m *memProductRepo) SoftDelete(id string) error {
	if p, ok := m.s.products[id]; ok {
		now := time.Now()
		p.DeletedAt = &now
		p.IsActive = false
	}
	return nil
}

type memMovementRepo struct{ s *memState }

func (m *memMovementRepo) Create(mov *entity.StockMovement) error {
	m.s.movements = append(m.s.movements, mov)
	return nil
}

func (m *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, mov := range m.s.movements {
		if mov.ID == id {
			return mov, nil
		}
	}
	return nil, nil
}

func (m *memMovementRepo) List(repository.MovementFilter) ([]*entity.StockMovement, error) {
	return m.s.movements, nil
}

func (m *memMovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	for _, mov := range m.s.movements {
		if mov.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func testProduct(stock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        testProductID,
		SKU:       "LAP-001",
		Name:      "Laptop 14\"",
		Stock:     stock,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func i64(v int64) *int64 { return &v }

func testMeta() inventory.RequestMeta {
	return inventory.RequestMeta{
		UserID:    testActorID,
		IPAddress: "10.0.0.1",
		UserAgent: "tests",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de aplicación por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_InSumaStock(t *testing.T) {
	runner := newMemTxRunner(testProduct(10))
	uc := inventory.NewApplyMovementUseCase(runner)

	mov, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: entity.MovementTypeIn, Quantity: i64(5),
	}, testMeta())

	require.NoError(t, err)
	assert.Equal(t, int64(10), mov.PreviousStock)
	assert.Equal(t, int64(15), mov.ResultingStock)
	assert.Equal(t, int64(15), runner.product(testProductID).Stock,
		"el stock del producto debe reflejar la entrada")
}

func TestApplyMovement_OutDescuentaStock(t *testing.T) {
	runner := newMemTxRunner(testProduct(10))
	uc := inventory.NewApplyMovementUseCase(runner)

	mov, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: entity.MovementTypeOut, Quantity: i64(4),
	}, testMeta())

	require.NoError(t, err)
	assert.Equal(t, int64(6), mov.ResultingStock)
	assert.Equal(t, int64(6), runner.product(testProductID).Stock)
}

func TestApplyMovement_OutInsuficienteNoDejaEfectos(t *testing.T) {
	runner := newMemTxRunner(testProduct(3))
	uc := inventory.NewApplyMovementUseCase(runner)

	_, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: entity.MovementTypeOut, Quantity: i64(5),
	}, testMeta())

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), runner.product(testProductID).Stock,
		"un out rechazado no debe tocar el stock")
	assert.Empty(t, runner.ledger(), "un out rechazado no debe dejar movimiento en el historial")
}

func TestApplyMovement_AdjustFijaStockAbsoluto(t *testing.T) {
	runner := newMemTxRunner(testProduct(42))
	uc := inventory.NewApplyMovementUseCase(runner)

	mov, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: entity.MovementTypeAdjust, NewStock: i64(7),
	}, testMeta())

	require.NoError(t, err)
	assert.Equal(t, int64(42), mov.PreviousStock)
	assert.Equal(t, int64(7), mov.ResultingStock)
	assert.Equal(t, int64(7), runner.product(testProductID).Stock)
}

func TestApplyMovement_AdjustACeroEsValido(t *testing.T) {
	runner := newMemTxRunner(testProduct(9))
	uc := inventory.NewApplyMovementUseCase(runner)

	mov, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: entity.MovementTypeAdjust, NewStock: i64(0),
	}, testMeta())

	require.NoError(t, err)
	assert.Equal(t, int64(0), mov.ResultingStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación condicional por tipo (rechazos 422, sin efectos)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_ValidacionCondicional(t *testing.T) {
	cases := []struct {
		name    string
		request dto.ApplyMovementRequest
		field   string
	}{
		{
			name:    "adjust sin new_stock",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "adjust"},
			field:   "new_stock",
		},
		{
			name:    "adjust con new_stock negativo",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "adjust", NewStock: i64(-1)},
			field:   "new_stock",
		},
		{
			name:    "adjust con quantity",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "adjust", NewStock: i64(5), Quantity: i64(2)},
			field:   "quantity",
		},
		{
			name:    "in sin quantity",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "in"},
			field:   "quantity",
		},
		{
			name:    "out con quantity cero",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "out", Quantity: i64(0)},
			field:   "quantity",
		},
		{
			name:    "in con new_stock",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "in", Quantity: i64(1), NewStock: i64(3)},
			field:   "new_stock",
		},
		{
			name:    "tipo desconocido",
			request: dto.ApplyMovementRequest{ProductID: testProductID, Type: "transfer", Quantity: i64(1)},
			field:   "type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := newMemTxRunner(testProduct(10))
			uc := inventory.NewApplyMovementUseCase(runner)

			_, err := uc.Apply(context.Background(), tc.request, testMeta())

			var verr *inventory.ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Fields)

			found := false
			for _, fe := range verr.Fields {
				if fe.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "debe reportar error sobre el campo %q: %+v", tc.field, verr.Fields)
			assert.Equal(t, int64(10), runner.product(testProductID).Stock,
				"una validación fallida no debe tocar el stock")
			assert.Empty(t, runner.ledger())
		})
	}
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	runner := newMemTxRunner()
	uc := inventory.NewApplyMovementUseCase(runner)

	_, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: "in", Quantity: i64(1),
	}, testMeta())

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_ProductoEliminadoCuentaComoInexistente(t *testing.T) {
	p := testProduct(10)
	now := time.Now()
	p.DeletedAt = &now
	p.IsActive = false

	runner := newMemTxRunner(p)
	uc := inventory.NewApplyMovementUseCase(runner)

	_, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: "in", Quantity: i64(1),
	}, testMeta())

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría del historial
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_RegistraAuditoriaCompleta(t *testing.T) {
	runner := newMemTxRunner(testProduct(10))
	uc := inventory.NewApplyMovementUseCase(runner)

	mov, err := uc.Apply(context.Background(), dto.ApplyMovementRequest{
		ProductID: testProductID, Type: "out", Quantity: i64(2), Notes: "merma por daño",
	}, testMeta())
	require.NoError(t, err)

	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, testActorID, mov.UserID)
	assert.Equal(t, "10.0.0.1", mov.IPAddress)
	assert.Equal(t, "tests", mov.UserAgent)
	assert.Equal(t, "merma por daño", mov.Notes)
	assert.False(t, mov.PerformedAt.IsZero())

	ledger := runner.ledger()
	require.Len(t, ledger, 1)
	assert.Equal(t, mov.ID, ledger[0].ID)
}

// Secuencia completa sobre el mismo producto: cada movimiento parte del stock
// que dejó el anterior, y el rechazado no aparece en el historial.
func TestApplyMovement_SecuenciaInOutAdjust(t *testing.T) {
	runner := newMemTxRunner(testProduct(10))
	uc := inventory.NewApplyMovementUseCase(runner)
	ctx := context.Background()

	mov, err := uc.Apply(ctx, dto.ApplyMovementRequest{
		ProductID: testProductID, Type: "in", Quantity: i64(5),
	}, testMeta())
	require.NoError(t, err)
	assert.Equal(t, int64(15), mov.ResultingStock)

	_, err = uc.Apply(ctx, dto.ApplyMovementRequest{
		ProductID: testProductID, Type: "out", Quantity: i64(20),
	}, testMeta())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	mov, err = uc.Apply(ctx, dto.ApplyMovementRequest{
		ProductID: testProductID, Type: "adjust", NewStock: i64(3),
	}, testMeta())
	require.NoError(t, err)
	assert.Equal(t, int64(15), mov.PreviousStock, "el adjust parte del stock que dejó el in")
	assert.Equal(t, int64(3), mov.ResultingStock)

	assert.Equal(t, int64(3), runner.product(testProductID).Stock)
	assert.Len(t, runner.ledger(), 2, "el out rechazado no debe aparecer en el historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: el bloqueo por fila serializa outs sobre el mismo producto
// ──────────────────────────────────────────────────────────────────────────────

// Dos outs de 3 unidades contra stock 5: exactamente uno debe completarse y el
// otro debe rechazarse por stock insuficiente, nunca stock negativo.
func TestApplyMovement_OutsConcurrentesNuncaNegativo(t *testing.T) {
	runner := newMemTxRunner(testProduct(5))
	uc := inventory.NewApplyMovementUseCase(runner)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Apply(context.Background(), dto.ApplyMovementRequest{
				ProductID: testProductID, Type: "out", Quantity: i64(3),
			}, testMeta())
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente un out debe completarse")
	assert.Equal(t, 1, insufficient, "el otro out debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(2), runner.product(testProductID).Stock)
	assert.Len(t, runner.ledger(), 1)
}
