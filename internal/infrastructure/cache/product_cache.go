// Package cache implementa o cache de catálogo sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/application/usecase"
	"github.com/in100tiva/PDV/pkg/logger"
)

var _ usecase.ProductCache = (*ProductCache)(nil)

// ProductCache guarda listagens de produtos com invalidação por versão:
// cada empresa tem um contador e as chaves de listagem o embutem, então
// incrementar o contador descarta todas as listagens de uma vez sem SCAN.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewProductCache constrói o cache. ttl limita a vida das listagens mesmo
// sem invalidação explícita.
func NewProductCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl, log: log}
}

// GetList devolve a listagem cacheada, ou ok=false em miss ou erro.
func (c *ProductCache) GetList(ctx context.Context, companyID, key string) ([]dto.ProductResponse, bool) {
	raw, err := c.rdb.Get(ctx, c.listKey(ctx, companyID, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("cache: falha ao ler listagem")
		}
		return nil, false
	}
	var items []dto.ProductResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Msg("cache: listagem corrompida, descartando")
		return nil, false
	}
	return items, true
}

// SetList grava a listagem. Erros só geram log: cache nunca derruba a leitura.
func (c *ProductCache) SetList(ctx context.Context, companyID, key string, items []dto.ProductResponse) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.log.Warn().Err(err).Msg("cache: falha ao serializar listagem")
		return
	}
	if err := c.rdb.Set(ctx, c.listKey(ctx, companyID, key), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: falha ao gravar listagem")
	}
}

// InvalidateCompany descarta todas as listagens da empresa.
func (c *ProductCache) InvalidateCompany(ctx context.Context, companyID string) {
	if err := c.rdb.Incr(ctx, versionKey(companyID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("empresa", companyID).Msg("cache: falha ao invalidar catálogo")
	}
}

func (c *ProductCache) listKey(ctx context.Context, companyID, key string) string {
	ver, err := c.rdb.Get(ctx, versionKey(companyID)).Int64()
	if err != nil && err != redis.Nil {
		c.log.Warn().Err(err).Msg("cache: falha ao ler versão do catálogo")
	}
	return fmt.Sprintf("catalogo:%s:v%d:%s", companyID, ver, key)
}

func versionKey(companyID string) string {
	return "catalogo:ver:" + companyID
}
