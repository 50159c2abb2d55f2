package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hkxdv/pim-api/internal/application/ports"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

var _ ports.ProductSearcher = (*SearchCache)(nil)

// SearchCache decorador read-through sobre un ProductSearcher: cachea páginas
// de resultados en Redis con TTL corto. Un fallo de Redis nunca rompe la
// búsqueda; se degrada al buscador subyacente.
type SearchCache struct {
	inner ports.ProductSearcher
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewSearchCache construye el decorador.
func NewSearchCache(inner ports.ProductSearcher, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *SearchCache {
	return &SearchCache{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// Search consulta la cache y, si no hay hit, delega y guarda el resultado.
func (c *SearchCache) Search(ctx context.Context, filter repository.ProductFilter) (*repository.ProductPage, error) {
	key := cacheKey(filter)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var page repository.ProductPage
		if jsonErr := json.Unmarshal(raw, &page); jsonErr == nil {
			return &page, nil
		}
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("cache de búsqueda no disponible")
	}

	page, err := c.inner.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if raw, jsonErr := json.Marshal(page); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Msg("no se pudo guardar en cache")
		}
	}
	return page, nil
}

func cacheKey(f repository.ProductFilter) string {
	active := "any"
	if f.IsActive != nil {
		active = fmt.Sprintf("%t", *f.IsActive)
	}
	return fmt.Sprintf("search:%s:%s:%s:%s:%d:%d",
		f.Search, f.SortField, f.SortDirection, active, f.Page, f.PerPage)
}
