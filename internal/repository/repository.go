package repository

import "github.com/kai-platform/kai-backend/internal/config"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	Chat *ChatRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *DB, cfg *config.Config) *Repositories {
	return &Repositories{
		Chat: NewChatRepository(db.Database, cfg.Mongo.Collection),
	}
}
