package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kai-platform/kai-backend/internal/model"
)

// ErrSessionNotFound 会话不存在
var ErrSessionNotFound = errors.New("chat session not found")

// 无索引排序超出内存限制时 MongoDB 返回的错误码
const codeSortMemoryExceeded = 292

// ChatRepository 会话文档数据访问
type ChatRepository struct {
	collection *mongo.Collection
}

// NewChatRepository 创建会话仓库
func NewChatRepository(db *mongo.Database, collection string) *ChatRepository {
	return &ChatRepository{collection: db.Collection(collection)}
}

// CreateSession 持久化新会话，id 由存储层分配
func (r *ChatRepository) CreateSession(ctx context.Context, session *model.ChatSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return "", fmt.Errorf("failed to insert chat session: %w", err)
	}
	return session.ID, nil
}

// GetSession 按 id 读取会话
func (r *ChatRepository) GetSession(ctx context.Context, id string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &session, nil
}

// UpdateMessages 覆写消息列表并刷新 updatedAt。单字段 $set，
// 并发写同一会话时为后写覆盖
func (r *ChatRepository) UpdateMessages(ctx context.Context, id string, messages []model.Message, updatedAt time.Time) error {
	update := bson.M{"$set": bson.M{"messages": messages, "updatedAt": updatedAt}}
	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update chat session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListByUser 查询某用户的全部会话
func (r *ChatRepository) ListByUser(ctx context.Context, userID string, ordered bool) ([]*model.ChatSession, error) {
	opts := options.Find()
	if ordered {
		opts.SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user.id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode chat sessions: %w", err)
	}
	return sessions, nil
}

// IsIndexUnavailable 判断错误是否为排序索引不可用。
// 没有可用索引时，MongoDB 对大结果集的内存排序会以
// QueryExceededMemoryLimitNoDiskUseAllowed 失败，查询层据此降级为无序查询
func IsIndexUnavailable(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == codeSortMemoryExceeded ||
			cmdErr.Name == "QueryExceededMemoryLimitNoDiskUseAllowed"
	}
	return false
}
