package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestAvailabilityKeys(t *testing.T) {
	d := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "availability:2025-10-15:0", availabilityKey(d, 0))
	assert.Equal(t, "availability:2025-10-15:7", availabilityKey(d, 7))
	assert.Equal(t, "availability:gen:2025-10-15", genKey(d))
}

// Redis fora do ar não pode derrubar a leitura: tudo vira miss.
func TestUnreachableRedisDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisAvailabilityCache(client, time.Minute, nil)
	defer c.Close()

	ctx := context.Background()
	d := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	assert.NotPanics(t, func() {
		c.SetTaken(ctx, d, 0, []string{"10:00"})
		c.Invalidate(ctx, d)
	})

	taken, gen, ok := c.GetTaken(ctx, d)
	assert.False(t, ok)
	assert.Nil(t, taken)
	assert.Equal(t, int64(-1), gen)
	assert.Error(t, c.Ping(ctx))
}
