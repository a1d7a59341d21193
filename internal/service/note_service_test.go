package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/ephemeral-notes-service/internal/domain"
	"github.com/haierkeys/ephemeral-notes-service/internal/dto"
	"github.com/haierkeys/ephemeral-notes-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mockNoteRepository 用函数字段实现 domain.NoteRepository，按测试需要逐个覆盖
type mockNoteRepository struct {
	listRecentFunc      func(ctx context.Context, owner string) ([]*domain.Note, error)
	getByIDFunc         func(ctx context.Context, id int64, owner string) (*domain.Note, error)
	searchFunc          func(ctx context.Context, owner string, query string) ([]*domain.Note, error)
	createFunc          func(ctx context.Context, owner string, content string) (*domain.Note, error)
	updateFunc          func(ctx context.Context, id int64, content string) (*domain.Note, error)
	deleteOlderThanFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockNoteRepository) ListRecent(ctx context.Context, owner string) ([]*domain.Note, error) {
	return m.listRecentFunc(ctx, owner)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id int64, owner string) (*domain.Note, error) {
	return m.getByIDFunc(ctx, id, owner)
}

func (m *mockNoteRepository) Search(ctx context.Context, owner string, query string) ([]*domain.Note, error) {
	return m.searchFunc(ctx, owner, query)
}

func (m *mockNoteRepository) Create(ctx context.Context, owner string, content string) (*domain.Note, error) {
	return m.createFunc(ctx, owner, content)
}

func (m *mockNoteRepository) Update(ctx context.Context, id int64, content string) (*domain.Note, error) {
	return m.updateFunc(ctx, id, content)
}

func (m *mockNoteRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.deleteOlderThanFunc(ctx, cutoff)
}

func newTestService(repo domain.NoteRepository) NoteService {
	return NewNoteService(repo, &ServiceConfig{
		NoteRetention:    15 * time.Minute,
		ContentMaxLength: 1000,
		PreviewLength:    200,
	}, zap.NewNop())
}

func TestNoteService_List(t *testing.T) {
	now := time.Now()
	repo := &mockNoteRepository{
		listRecentFunc: func(ctx context.Context, owner string) ([]*domain.Note, error) {
			assert.Equal(t, "owner-a", owner)
			return []*domain.Note{
				{ID: 2, Content: "# Newest", Owner: owner, CreatedAt: now},
				{ID: 1, Content: "older", Owner: owner, CreatedAt: now.Add(-time.Minute)},
			}, nil
		},
	}
	svc := newTestService(repo)

	notes := svc.List(context.Background(), "owner-a")
	require.Len(t, notes, 2)

	// 只有最近一条携带完整 HTML
	assert.Contains(t, notes[0].HTML, "<h1>")
	assert.Empty(t, notes[1].HTML)
	assert.Equal(t, "Newest", notes[0].Preview)
	assert.Nil(t, notes[0].UpdatedAt)
}

func TestNoteService_ListDegradesToEmpty(t *testing.T) {
	repo := &mockNoteRepository{
		listRecentFunc: func(ctx context.Context, owner string) ([]*domain.Note, error) {
			return nil, gorm.ErrInvalidDB
		},
	}
	svc := newTestService(repo)

	notes := svc.List(context.Background(), "owner-a")
	require.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteService_Get(t *testing.T) {
	now := time.Now()
	repo := &mockNoteRepository{
		getByIDFunc: func(ctx context.Context, id int64, owner string) (*domain.Note, error) {
			if id == 7 && owner == "owner-a" {
				return &domain.Note{ID: 7, Content: "**bold** text", Owner: owner, CreatedAt: now}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(repo)

	note, err := svc.Get(context.Background(), "owner-a", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), note.ID)
	assert.Contains(t, note.HTML, "<strong>bold</strong>")
	assert.Equal(t, "bold text", note.Preview)

	// 其他身份名下不可见
	_, err = svc.Get(context.Background(), "owner-b", 7)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = svc.Get(context.Background(), "owner-a", 99)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_Search(t *testing.T) {
	now := time.Now()
	repo := &mockNoteRepository{
		searchFunc: func(ctx context.Context, owner string, query string) ([]*domain.Note, error) {
			assert.Equal(t, "milk", query)
			return []*domain.Note{
				{ID: 3, Content: "buy milk", Owner: owner, CreatedAt: now},
			}, nil
		},
	}
	svc := newTestService(repo)

	notes := svc.Search(context.Background(), "owner-a", "milk")
	require.Len(t, notes, 1)
	assert.Equal(t, int64(3), notes[0].ID)
}

func TestNoteService_SearchDegradesToEmpty(t *testing.T) {
	repo := &mockNoteRepository{
		searchFunc: func(ctx context.Context, owner string, query string) ([]*domain.Note, error) {
			return nil, gorm.ErrInvalidDB
		},
	}
	svc := newTestService(repo)

	notes := svc.Search(context.Background(), "owner-a", "milk")
	require.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteService_Create(t *testing.T) {
	now := time.Now()
	repo := &mockNoteRepository{
		createFunc: func(ctx context.Context, owner string, content string) (*domain.Note, error) {
			return &domain.Note{ID: 1, Content: content, Owner: owner, CreatedAt: now}, nil
		},
	}
	svc := newTestService(repo)

	note, err := svc.Create(context.Background(), "owner-a", &dto.NoteCreateRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", note.Content)
	assert.Nil(t, note.UpdatedAt)
}

func TestNoteService_CreateContentBoundaries(t *testing.T) {
	repo := &mockNoteRepository{
		createFunc: func(ctx context.Context, owner string, content string) (*domain.Note, error) {
			return &domain.Note{ID: 1, Content: content, Owner: owner, CreatedAt: time.Now()}, nil
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty rejected", "", code.ErrorNoteContentInvalid},
		{"single char accepted", "a", nil},
		{"max length accepted", strings.Repeat("a", 1000), nil},
		{"over max rejected", strings.Repeat("a", 1001), code.ErrorNoteContentInvalid},
		{"multibyte counted by rune", strings.Repeat("界", 1000), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-a", &dto.NoteCreateRequest{Content: tt.content})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoteService_CreateFailed(t *testing.T) {
	repo := &mockNoteRepository{
		createFunc: func(ctx context.Context, owner string, content string) (*domain.Note, error) {
			return nil, gorm.ErrInvalidDB
		},
	}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), "owner-a", &dto.NoteCreateRequest{Content: "hello"})
	assert.ErrorIs(t, err, code.ErrorNoteCreateFailed)
}

func TestNoteService_Update(t *testing.T) {
	now := time.Now()
	stored := &domain.Note{ID: 5, Content: "before", Owner: "owner-a", CreatedAt: now.Add(-time.Minute)}
	repo := &mockNoteRepository{
		getByIDFunc: func(ctx context.Context, id int64, owner string) (*domain.Note, error) {
			if id == stored.ID && owner == stored.Owner {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		updateFunc: func(ctx context.Context, id int64, content string) (*domain.Note, error) {
			updated := *stored
			updated.Content = content
			updated.UpdatedAt = now
			return &updated, nil
		},
	}
	svc := newTestService(repo)

	note, err := svc.Update(context.Background(), "owner-a", 5, &dto.NoteUpdateRequest{Content: "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", note.Content)
	require.NotNil(t, note.UpdatedAt)

	// 非归属身份更新返回 not found，不泄露笔记是否存在
	_, err = svc.Update(context.Background(), "owner-b", 5, &dto.NoteUpdateRequest{Content: "after"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_CleanupExpired(t *testing.T) {
	var mu sync.Mutex
	var cutoffs []time.Time
	repo := &mockNoteRepository{
		deleteOlderThanFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			mu.Lock()
			cutoffs = append(cutoffs, cutoff)
			mu.Unlock()
			return 3, nil
		},
	}
	svc := newTestService(repo)

	before := time.Now()
	require.NoError(t, svc.CleanupExpired(context.Background()))
	require.Len(t, cutoffs, 1)

	// 截止时间 = now - 保留时间
	want := before.Add(-15 * time.Minute)
	assert.WithinDuration(t, want, cutoffs[0], 2*time.Second)

	// 重复执行结果一致，不报错
	require.NoError(t, svc.CleanupExpired(context.Background()))
	require.Len(t, cutoffs, 2)
}

func TestNoteService_CleanupExpiredError(t *testing.T) {
	repo := &mockNoteRepository{
		deleteOlderThanFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, gorm.ErrInvalidDB
		},
	}
	svc := newTestService(repo)

	assert.Error(t, svc.CleanupExpired(context.Background()))
}
