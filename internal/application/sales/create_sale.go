package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// SaleTxRunner ejecuta el alta de la venta y sus descuentos de stock en una
// sola transacción de BD.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// CreateSaleUseCase registra una venta descontando stock con un movimiento
// "out" por ítem, todo dentro de la misma transacción; si alguna línea no
// tiene stock suficiente la venta entera se revierte.
type CreateSaleUseCase struct {
	txRunner SaleTxRunner
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner SaleTxRunner) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner}
}

// Create valida y persiste la venta. createdBy es el actor (puede ser vacío).
func (uc *CreateSaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest, createdBy string) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Bloquear los productos en orden estable evita deadlocks entre ventas
	// concurrentes que comparten ítems.
	items := make([]dto.SaleItemRequest, len(in.Items))
	copy(items, in.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	now := time.Now()
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:           saleID,
		CustomerName: in.CustomerName,
		Total:        decimal.Zero,
		Notes:        in.Notes,
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, item := range items {
			product, err := productRepo.GetByIDForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.DeletedAt != nil || !product.IsActive {
				return domain.ErrNotFound
			}
			resulting := product.Stock - item.Quantity
			if resulting < 0 {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateStock(product.ID, resulting); err != nil {
				return err
			}

			qty := item.Quantity
			mov := &entity.StockMovement{
				ID:             uuid.New().String(),
				ProductID:      product.ID,
				UserID:         createdBy,
				Type:           entity.MovementTypeOut,
				Quantity:       &qty,
				PreviousStock:  product.Stock,
				ResultingStock: resulting,
				Notes:          "venta " + saleID,
				PerformedAt:    now,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})
			sale.Total = sale.Total.Add(subtotal)
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// GetSaleUseCase consulta de ventas por ID.
type GetSaleUseCase struct {
	repo repository.SaleRepository
}

// NewGetSaleUseCase construye el caso de uso.
func NewGetSaleUseCase(repo repository.SaleRepository) *GetSaleUseCase {
	return &GetSaleUseCase{repo: repo}
}

// GetByID devuelve la venta o nil si no existe.
func (uc *GetSaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// List devuelve las ventas más recientes paginadas.
func (uc *GetSaleUseCase) List(limit, offset int) ([]*dto.SaleResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(items))
	for _, s := range items {
		out = append(out, ToSaleResponse(s))
	}
	return out, nil
}

// ToSaleResponse mapea la entidad al DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		Total:        s.Total,
		Notes:        s.Notes,
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
		Items:        items,
	}
}
