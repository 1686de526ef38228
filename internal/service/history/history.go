// Package history 提供用户会话索引的查询
package history

import (
	"context"

	"github.com/kai-platform/kai-backend/internal/apperr"
	"github.com/kai-platform/kai-backend/internal/model"
	"github.com/kai-platform/kai-backend/internal/repository"
)

// Service 历史查询服务
type Service struct {
	store repository.SessionStore
	cache *Cache
}

// NewService 创建历史查询服务，cache 可为 nil
func NewService(store repository.SessionStore, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// FetchHistory 查询某用户的会话摘要，按 updatedAt 降序。
// 存储报告排序索引不可用时降级为同条件的无序查询：宁可返回
// 乱序数据也不让整个请求失败，调用方不得假定降级时仍有序
func (s *Service) FetchHistory(ctx context.Context, callerID string) ([]model.HistorySummary, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user must be authenticated to fetch chat history")
	}

	if cached, ok := s.cache.Get(ctx, callerID); ok {
		return cached, nil
	}

	sessions, err := s.store.ListByUser(ctx, callerID, true)
	if err != nil {
		if !repository.IsIndexUnavailable(err) {
			return nil, apperr.Wrap(apperr.Internal, "failed to fetch chat history", err)
		}
		sessions, err = s.store.ListByUser(ctx, callerID, false)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to fetch chat history", err)
		}
	}

	summaries := make([]model.HistorySummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, session.Summarize())
	}

	s.cache.Set(ctx, callerID, summaries)
	return summaries, nil
}
