// Package service 聚合各业务服务的构造
package service

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kai-platform/kai-backend/internal/config"
	"github.com/kai-platform/kai-backend/internal/repository"
	"github.com/kai-platform/kai-backend/internal/service/chat"
	"github.com/kai-platform/kai-backend/internal/service/gateway"
	"github.com/kai-platform/kai-backend/internal/service/history"
	"github.com/kai-platform/kai-backend/internal/service/storage"
	"github.com/kai-platform/kai-backend/internal/service/tool"
)

// Services 服务集合
type Services struct {
	Chat    *chat.Service
	Tool    *tool.Service
	History *history.Service
	Gateway *gateway.Client
	Storage storage.Storage
}

// NewServices 创建所有服务
func NewServices(repos *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	objectStore, err := storage.NewMinIOStorage(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	gw := gateway.NewClient(&cfg.AI)
	cache := history.NewCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)

	return &Services{
		Chat:    chat.NewService(repos.Chat, gw, cache),
		Tool:    tool.NewService(objectStore, gw),
		History: history.NewService(repos.Chat, cache),
		Gateway: gw,
		Storage: objectStore,
	}, nil
}
