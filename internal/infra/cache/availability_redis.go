package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	keyPrefix = "availability:"
	genPrefix = "availability:gen:"
)

// genTTLFactor mantém o contador de geração vivo bem além das entradas.
const genTTLFactor = 48

func genKey(date time.Time) string {
	return genPrefix + timezone.FormatDate(date)
}

func availabilityKey(date time.Time, gen int64) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, timezone.FormatDate(date), gen)
}

// RedisAvailabilityCache guarda os horários ocupados de cada dia. Qualquer
// falha do Redis vira cache miss; a leitura cai no banco.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisAvailabilityCache {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisAvailabilityCache{client: client, ttl: ttl, log: log}
}

// Ping é usado só no boot, para avisar que o cache está fora.
func (c *RedisAvailabilityCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// generation lê o contador do dia. Sem contador, a geração é 0.
func (c *RedisAvailabilityCache) generation(ctx context.Context, date time.Time) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(date)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisAvailabilityCache) GetTaken(ctx context.Context, date time.Time) ([]string, int64, bool) {
	gen, err := c.generation(ctx, date)
	if err != nil {
		c.log.Warn("availability cache generation read failed", zap.Error(err))
		return nil, -1, false
	}

	key := availabilityKey(date, gen)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, gen, false
	}
	if err != nil {
		c.log.Warn("availability cache read failed", zap.Error(err))
		return nil, gen, false
	}

	var taken []string
	if err := json.Unmarshal([]byte(val), &taken); err != nil {
		c.log.Warn("availability cache entry is corrupt", zap.String("key", key))
		return nil, gen, false
	}
	return taken, gen, true
}

func (c *RedisAvailabilityCache) SetTaken(ctx context.Context, date time.Time, gen int64, taken []string) {
	if gen < 0 {
		return
	}
	if taken == nil {
		taken = []string{}
	}
	data, err := json.Marshal(taken)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, availabilityKey(date, gen), data, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache write failed", zap.Error(err))
	}
}

// Invalidate avança a geração de cada dia. As entradas antigas ficam
// órfãs e expiram pelo TTL.
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, dates ...time.Time) {
	if len(dates) == 0 {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range dates {
			pipe.Incr(ctx, genKey(d))
			pipe.Expire(ctx, genKey(d), c.ttl*genTTLFactor)
		}
		return nil
	})
	if err != nil {
		c.log.Warn("availability cache invalidation failed", zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) Close() error {
	return c.client.Close()
}

var _ domain.AvailabilityCache = (*RedisAvailabilityCache)(nil)
