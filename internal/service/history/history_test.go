// Package history 历史查询单元测试
package history

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kai-platform/kai-backend/internal/apperr"
	"github.com/kai-platform/kai-backend/internal/model"
	"github.com/kai-platform/kai-backend/internal/testutil"
)

// mockStore 内存会话存储，可模拟排序索引不可用
type mockStore struct {
	sessions     []*model.ChatSession
	orderedErr   error
	unorderedErr error
	orderedCalls int
	fallbacks    int
}

func (m *mockStore) CreateSession(ctx context.Context, session *model.ChatSession) (string, error) {
	m.sessions = append(m.sessions, session)
	return session.ID, nil
}

func (m *mockStore) GetSession(ctx context.Context, id string) (*model.ChatSession, error) {
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockStore) UpdateMessages(ctx context.Context, id string, messages []model.Message, updatedAt time.Time) error {
	return nil
}

func (m *mockStore) ListByUser(ctx context.Context, userID string, ordered bool) ([]*model.ChatSession, error) {
	if ordered {
		m.orderedCalls++
		if m.orderedErr != nil {
			return nil, m.orderedErr
		}
	} else {
		m.fallbacks++
		if m.unorderedErr != nil {
			return nil, m.unorderedErr
		}
	}

	result := make([]*model.ChatSession, 0)
	for _, s := range m.sessions {
		if s.User.ID == userID {
			result = append(result, s)
		}
	}
	if ordered {
		sort.Slice(result, func(i, j int) bool {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		})
	}
	return result, nil
}

func seedSessions(store *mockStore, user model.User) {
	for i, id := range []string{"s1", "s2", "s3"} {
		session := testutil.NewSession(id, user, i+1)
		session.UpdatedAt = time.Date(2026, 5, 1, 10, i, 0, 0, time.UTC)
		store.sessions = append(store.sessions, session)
	}
	// 其他用户的会话不得出现在结果中
	store.sessions = append(store.sessions, testutil.NewSession("other", testutil.NewUser("user-9"), 2))
}

// ========== 测试用例 ==========

func TestFetchHistoryOrdered(t *testing.T) {
	user := testutil.NewUser("user-1")
	store := &mockStore{}
	seedSessions(store, user)
	svc := NewService(store, nil)

	summaries, err := svc.FetchHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FetchHistory() error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("summaries = %d, want 3", len(summaries))
	}

	// updatedAt 降序
	wantOrder := []string{"s3", "s2", "s1"}
	for i, want := range wantOrder {
		if summaries[i].ID != want {
			t.Errorf("summaries[%d].ID = %s, want %s", i, summaries[i].ID, want)
		}
	}
	if store.fallbacks != 0 {
		t.Errorf("fallbacks = %d, want 0", store.fallbacks)
	}
}

func TestFetchHistoryIndexFallback(t *testing.T) {
	user := testutil.NewUser("user-1")
	store := &mockStore{orderedErr: mongo.CommandError{Code: 292, Name: "QueryExceededMemoryLimitNoDiskUseAllowed"}}
	seedSessions(store, user)
	svc := NewService(store, nil)

	summaries, err := svc.FetchHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FetchHistory() error after fallback: %v", err)
	}
	if store.fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", store.fallbacks)
	}

	// 降级后仍返回同一个 id 集合，顺序不保证
	got := make([]string, 0, len(summaries))
	for _, s := range summaries {
		got = append(got, s.ID)
	}
	sort.Strings(got)
	want := []string{"s1", "s2", "s3"}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids = %v, want %v", got, want)
			break
		}
	}
}

func TestFetchHistoryNonIndexErrorSurfaces(t *testing.T) {
	store := &mockStore{orderedErr: mongo.CommandError{Code: 13, Name: "Unauthorized"}}
	svc := NewService(store, nil)

	_, err := svc.FetchHistory(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.KindOf(err) != apperr.Internal {
		t.Errorf("Kind = %v, want Internal", apperr.KindOf(err))
	}
	if store.fallbacks != 0 {
		t.Errorf("fallbacks = %d, want 0 (only index errors downgrade)", store.fallbacks)
	}
}

func TestFetchHistoryFallbackFailure(t *testing.T) {
	store := &mockStore{
		orderedErr:   mongo.CommandError{Code: 292},
		unorderedErr: errors.New("connection reset"),
	}
	svc := NewService(store, nil)

	_, err := svc.FetchHistory(context.Background(), "user-1")
	if apperr.KindOf(err) != apperr.Internal {
		t.Errorf("Kind = %v, want Internal", apperr.KindOf(err))
	}
}

func TestFetchHistoryUnauthenticated(t *testing.T) {
	svc := NewService(&mockStore{}, nil)
	_, err := svc.FetchHistory(context.Background(), "")
	if apperr.KindOf(err) != apperr.Unauthenticated {
		t.Errorf("Kind = %v, want Unauthenticated", apperr.KindOf(err))
	}
}

func TestFetchHistoryEmpty(t *testing.T) {
	svc := NewService(&mockStore{}, nil)
	summaries, err := svc.FetchHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FetchHistory() error: %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Errorf("summaries = %v, want empty non-nil slice", summaries)
	}
}

func TestFetchHistorySummaryShape(t *testing.T) {
	user := testutil.NewUser("user-1")
	store := &mockStore{}
	store.sessions = append(store.sessions, &model.ChatSession{
		ID:   "empty",
		User: user,
		Type: model.BotTypeChat,
	})
	svc := NewService(store, nil)

	summaries, err := svc.FetchHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FetchHistory() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	summary := summaries[0]
	if summary.LastMessage != model.NoMessagesSentinel {
		t.Errorf("LastMessage = %q, want sentinel", summary.LastMessage)
	}
	if summary.Timestamp != nil {
		t.Errorf("Timestamp = %v, want nil", *summary.Timestamp)
	}
	if summary.MessageCount != 0 {
		t.Errorf("MessageCount = %d, want 0", summary.MessageCount)
	}
}

func TestCacheNilSafety(t *testing.T) {
	var cache *Cache
	if _, ok := cache.Get(context.Background(), "user-1"); ok {
		t.Error("nil cache reported a hit")
	}
	cache.Set(context.Background(), "user-1", nil)
	cache.Invalidate(context.Background(), "user-1")
}
