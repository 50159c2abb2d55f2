package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, brand, model, barcode, price, stock, is_active, metadata, created_at, updated_at, deleted_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Stock inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, brand, model, barcode, price, stock, is_active, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Brand, product.Model, product.Barcode,
		product.Price, product.Stock, product.IsActive, product.Metadata,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluye soft-deleted; el caller decide).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU, excluyendo soft-deleted.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1 AND deleted_at IS NULL`, sku)
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción; el lock vive hasta Commit/Rollback.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Model, &p.Barcode,
		&p.Price, &p.Stock, &p.IsActive, &p.Metadata,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. No modifica Stock (se maneja vía movimientos).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, brand = $3, model = $4, barcode = $5, price = $6, is_active = $7, metadata = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Brand, product.Model, product.Barcode,
		product.Price, product.IsActive, product.Metadata, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock (usado por el motor de movimientos, dentro de tx).
func (r *ProductRepo) UpdateStock(productID string, stock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// sortColumns whitelist de columnas ordenables; cualquier otro valor cae a created_at.
var sortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
}

// List lista productos con filtro, orden y paginación. Excluye soft-deleted.
func (r *ProductRepo) List(filter repository.ProductFilter) (*repository.ProductPage, error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	pos := 1

	if filter.Search != "" {
		where = append(where, fmt.Sprintf(
			"(sku ILIKE $%d OR name ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d OR barcode ILIKE $%d)",
			pos, pos, pos, pos, pos))
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.IsActive != nil {
		where = append(where, fmt.Sprintf("is_active = $%d", pos))
		args = append(args, *filter.IsActive)
		pos++
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT count(*) FROM products WHERE ` + whereClause
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	sortCol, ok := sortColumns[filter.SortField]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if filter.SortDirection == "asc" {
		dir = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, sortCol, dir, pos, pos+1,
	)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Model, &p.Barcode,
			&p.Price, &p.Stock, &p.IsActive, &p.Metadata,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.ProductPage{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

// SoftDelete marca el producto como eliminado e inactivo; la fila se conserva
// porque los movimientos históricos la referencian.
func (r *ProductRepo) SoftDelete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET deleted_at = now(), is_active = false, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
