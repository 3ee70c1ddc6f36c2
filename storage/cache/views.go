package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trezcool/ngazi/core"
	"github.com/trezcool/ngazi/core/journey"
)

// ViewCache stores whole derived dashboard views in redis, keyed per
// student. A cache failure is never fatal; reads fall through to a
// rebuild and writes are logged and dropped.
type ViewCache struct {
	client *redis.Client
	logger core.Logger
	ttl    time.Duration
}

var _ journey.ViewCache = (*ViewCache)(nil) // interface compliance check

func NewViewCache(conf *core.Config, logger core.Logger) *ViewCache {
	return &ViewCache{
		client: redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		}),
		logger: logger,
		ttl:    conf.Redis.ViewTTL,
	}
}

func (c *ViewCache) key(studentID string) string {
	return "ngazi:view:" + studentID
}

func (c *ViewCache) GetView(ctx context.Context, studentID string) (*journey.DerivedView, bool) {
	data, err := c.client.Get(ctx, c.key(studentID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache.GetView: " + err.Error())
		}
		return nil, false
	}

	var view journey.DerivedView
	if err = json.Unmarshal(data, &view); err != nil {
		c.logger.Warn("cache.GetView: " + err.Error())
		return nil, false
	}
	return &view, true
}

func (c *ViewCache) SetView(ctx context.Context, studentID string, view *journey.DerivedView) {
	data, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn("cache.SetView: " + err.Error())
		return
	}
	if err = c.client.Set(ctx, c.key(studentID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache.SetView: " + err.Error())
	}
}

func (c *ViewCache) InvalidateView(ctx context.Context, studentID string) {
	if err := c.client.Del(ctx, c.key(studentID)).Err(); err != nil {
		c.logger.Warn("cache.InvalidateView: " + err.Error())
	}
}

func (c *ViewCache) Close() error {
	return c.client.Close()
}
