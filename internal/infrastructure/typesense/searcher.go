package typesense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/hkxdv/pim-api/internal/application/ports"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ ports.ProductSearcher = (*Searcher)(nil)

// queryBy campos indexados contra los que Typesense resuelve la búsqueda.
const queryBy = "sku,name,brand,model,barcode"

// Searcher implementa el puerto de búsqueda contra un servidor Typesense.
// Es el driver "typesense" del resolver; la colección se mantiene sincronizada
// fuera de este servicio (indexador aparte), aquí solo se consulta.
type Searcher struct {
	client     *resty.Client
	collection string
}

// NewSearcher construye el cliente. baseURL ej. http://localhost:8108.
func NewSearcher(baseURL, apiKey, collection string) *Searcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-TYPESENSE-API-KEY", apiKey).
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	return &Searcher{client: client, collection: collection}
}

// searchResponse respuesta del endpoint documents/search de Typesense.
type searchResponse struct {
	Found int64 `json:"found"`
	Hits  []struct {
		Document productDocument `json:"document"`
	} `json:"hits"`
}

// productDocument documento indexado en la colección de productos.
type productDocument struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Barcode   string  `json:"barcode"`
	Price     float64 `json:"price"`
	Stock     int64   `json:"stock"`
	IsActive  bool    `json:"is_active"`
	CreatedAt int64   `json:"created_at"` // unix seconds
	UpdatedAt int64   `json:"updated_at"`
}

// Search consulta la colección con el mismo contrato que el buscador local.
func (s *Searcher) Search(ctx context.Context, filter repository.ProductFilter) (*repository.ProductPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	q := filter.Search
	if q == "" {
		q = "*"
	}

	params := map[string]string{
		"q":        q,
		"query_by": queryBy,
		"page":     fmt.Sprintf("%d", page),
		"per_page": fmt.Sprintf("%d", perPage),
	}
	if filter.SortField != "" && filter.SortField != "name" {
		// Typesense solo ordena por campos numéricos; name se deja al ranking.
		dir := "desc"
		if filter.SortDirection == "asc" {
			dir = "asc"
		}
		params["sort_by"] = fmt.Sprintf("%s:%s", filter.SortField, dir)
	}
	if filter.IsActive != nil {
		params["filter_by"] = fmt.Sprintf("is_active:=%t", *filter.IsActive)
	}

	var out searchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get(fmt.Sprintf("/collections/%s/documents/search", s.collection))
	if err != nil {
		return nil, fmt.Errorf("typesense search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("typesense search: HTTP %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	items := make([]*entity.Product, 0, len(out.Hits))
	for _, hit := range out.Hits {
		items = append(items, toEntity(hit.Document))
	}
	return &repository.ProductPage{Items: items, Total: out.Found, Page: page, PerPage: perPage}, nil
}

func toEntity(d productDocument) *entity.Product {
	return &entity.Product{
		ID:        d.ID,
		SKU:       d.SKU,
		Name:      d.Name,
		Brand:     d.Brand,
		Model:     d.Model,
		Barcode:   d.Barcode,
		Price:     decimal.NewFromFloat(d.Price),
		Stock:     d.Stock,
		IsActive:  d.IsActive,
		CreatedAt: time.Unix(d.CreatedAt, 0),
		UpdatedAt: time.Unix(d.UpdatedAt, 0),
	}
}
