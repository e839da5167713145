package cache

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyPrefix  = "kpi:rows:"
	defaultTTL = time.Minute
)

// RowCache guarda as linhas brutas mensais por quantidade e ano
type RowCache interface {
	Get(ctx context.Context, quantity domain.Quantity, year int) (domain.MonthlyRows, bool, error)
	Set(ctx context.Context, quantity domain.Quantity, year int, rows domain.MonthlyRows) error
}

var _ RowCache = (*RedisRowCache)(nil)

type RedisRowCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient retorna nil quando REDIS_ADDR não está configurado
func NewRedisClient(cfg config.Redis) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisRowCache(client *redis.Client, ttl time.Duration) *RedisRowCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &RedisRowCache{
		client: client,
		ttl:    ttl,
	}
}

func key(quantity domain.Quantity, year int) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, quantity, year)
}

func (c *RedisRowCache) Get(ctx context.Context, quantity domain.Quantity, year int) (domain.MonthlyRows, bool, error) {
	payload, err := c.client.Get(ctx, key(quantity, year)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler cache de %s/%d: %w", quantity, year, err)
	}

	var raw []domain.RawMonthlyRow
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, false, fmt.Errorf("erro ao deserializar cache de %s/%d: %w", quantity, year, err)
	}

	return domain.NewMonthlyRows(raw), true, nil
}

func (c *RedisRowCache) Set(ctx context.Context, quantity domain.Quantity, year int, rows domain.MonthlyRows) error {
	payload, err := json.Marshal(rows.Rows())
	if err != nil {
		return fmt.Errorf("erro ao serializar linhas de %s/%d: %w", quantity, year, err)
	}

	if err := c.client.Set(ctx, key(quantity, year), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar cache de %s/%d: %w", quantity, year, err)
	}

	return nil
}
