package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haierkeys/ephemeral-notes-service/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockCleanupService 只关注 CleanupExpired 的触发
type mockCleanupService struct {
	cleanupFunc func(ctx context.Context) error
}

func (m *mockCleanupService) List(ctx context.Context, owner string) []*dto.NoteDTO { return nil }
func (m *mockCleanupService) Get(ctx context.Context, owner string, id int64) (*dto.NoteDTO, error) {
	return nil, nil
}
func (m *mockCleanupService) Search(ctx context.Context, owner string, query string) []*dto.NoteListItemDTO {
	return nil
}
func (m *mockCleanupService) Create(ctx context.Context, owner string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	return nil, nil
}
func (m *mockCleanupService) Update(ctx context.Context, owner string, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	return nil, nil
}
func (m *mockCleanupService) CleanupExpired(ctx context.Context) error {
	return m.cleanupFunc(ctx)
}

func newCleanupRouter(svc *mockCleanupService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Cleanup(svc, zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestCleanup_TriggeredPerRequest(t *testing.T) {
	called := make(chan context.Context, 1)
	svc := &mockCleanupService{
		cleanupFunc: func(ctx context.Context) error {
			called <- ctx
			return nil
		},
	}
	r := newCleanupRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case ctx := <-called:
		// 清理用独立于请求的 context，请求结束不应取消清理
		assert.NoError(t, ctx.Err())
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup was not triggered")
	}
}

func TestCleanup_RequestNotBlockedBySlowCleanup(t *testing.T) {
	release := make(chan struct{})
	svc := &mockCleanupService{
		cleanupFunc: func(ctx context.Context) error {
			<-release
			return nil
		},
	}
	r := newCleanupRouter(svc)

	done := make(chan struct{})
	go func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("request blocked by cleanup")
	}
	close(release)
}

func TestCleanup_FailureDoesNotAffectRequest(t *testing.T) {
	called := make(chan struct{}, 1)
	svc := &mockCleanupService{
		cleanupFunc: func(ctx context.Context) error {
			called <- struct{}{}
			return errors.New("storage unavailable")
		},
	}
	r := newCleanupRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup was not triggered")
	}
}
