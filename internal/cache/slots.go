package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/config"
	"github.com/barberbook/barberbook-api/internal/domain/booking"
)

// SlotCache keeps computed slot availability per (barber, service, date)
// for a short TTL. The ledger's unique constraint stays the source of
// truth; a stale read only costs the caller one friendly conflict error.
type SlotCache struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func NewSlotCache(client *redis.Client, log *zap.Logger) *SlotCache {
	return &SlotCache{
		client: client,
		log:    log,
		ttl:    30 * time.Second,
	}
}

func slotKey(barberID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s:%d", barberID, date, serviceID)
}

func (c *SlotCache) Get(ctx context.Context, barberID, serviceID uint, date string) ([]booking.Slot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, slotKey(barberID, serviceID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("slot cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var slots []booking.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, barberID, serviceID uint, date string, slots []booking.Slot) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, slotKey(barberID, serviceID, date), raw, c.ttl).Err(); err != nil {
		c.log.Debug("slot cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached service view of a barber's day. Called on
// any lifecycle change that occupies or frees a slot.
func (c *SlotCache) Invalidate(ctx context.Context, barberID uint, date string) {
	if c == nil || c.client == nil {
		return
	}

	pattern := fmt.Sprintf("slots:%d:%s:*", barberID, date)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.log.Debug("slot cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug("slot cache invalidation failed", zap.Error(err))
	}
}
