package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/ports"
	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía
// movimientos; Create lo inicia en 0 y Update no lo toca.
type ProductUseCase struct {
	repo     repository.ProductRepository
	searcher ports.ProductSearcher
}

// NewProductUseCase construye el caso de uso. searcher es el buscador ya
// resuelto en el arranque (local o Typesense, con o sin cache).
func NewProductUseCase(repo repository.ProductRepository, searcher ports.ProductSearcher) *ProductUseCase {
	return &ProductUseCase{repo: repo, searcher: searcher}
}

// Create crea un nuevo producto con stock 0.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Brand:     in.Brand,
		Model:     in.Model,
		Barcode:   in.Barcode,
		Price:     in.Price,
		Stock:     0,
		IsActive:  true,
		Metadata:  in.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Los soft-deleted no se exponen.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.DeletedAt != nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.DeletedAt != nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Model != nil {
		product.Model = *in.Model
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if len(in.Metadata) > 0 {
		product.Metadata = in.Metadata
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtro/orden/paginación contra la BD local.
func (uc *ProductUseCase) List(q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.Defaults()
	page, err := uc.repo.List(toProductFilter(q))
	if err != nil {
		return nil, err
	}
	return toProductListResponse(page), nil
}

// Search resuelve la búsqueda por el backend configurado (local o Typesense).
func (uc *ProductUseCase) Search(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.Defaults()
	page, err := uc.searcher.Search(ctx, toProductFilter(q))
	if err != nil {
		return nil, err
	}
	return toProductListResponse(page), nil
}

// Delete marca el producto como eliminado; la fila y su historial se conservan.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.DeletedAt != nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

func toProductFilter(q dto.ProductListQuery) repository.ProductFilter {
	return repository.ProductFilter{
		Search:        q.Search,
		SortField:     q.SortField,
		SortDirection: q.SortDirection,
		IsActive:      q.IsActive,
		Page:          q.Page,
		PerPage:       q.PerPage,
	}
}

func toProductListResponse(page *repository.ProductPage) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, PerPage: page.PerPage, Total: page.Total},
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Brand:     p.Brand,
		Model:     p.Model,
		Barcode:   p.Barcode,
		Price:     p.Price,
		Stock:     p.Stock,
		IsActive:  p.IsActive,
		Metadata:  p.Metadata,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
