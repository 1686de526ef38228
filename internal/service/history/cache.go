package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kai-platform/kai-backend/internal/model"
)

const cacheKeyPrefix = "chat:history:"

// Cache 基于 Redis 的历史摘要缓存。写路径在每次会话变更后使其
// 失效；Redis 不可用时静默退化为直查存储，不影响请求结果
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache 创建历史摘要缓存
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get 读取缓存的摘要列表
func (c *Cache) Get(ctx context.Context, userID string) ([]model.HistorySummary, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKeyPrefix+userID).Bytes()
	if err != nil {
		return nil, false
	}
	var summaries []model.HistorySummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

// Set 写入摘要列表
func (c *Cache) Set(ctx context.Context, userID string, summaries []model.HistorySummary) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKeyPrefix+userID, data, c.ttl).Err()
}

// Invalidate 使某用户的缓存失效
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, cacheKeyPrefix+userID).Err()
}
