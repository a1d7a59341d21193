package routers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	internalApp "github.com/haierkeys/ephemeral-notes-service/internal/app"
	"github.com/haierkeys/ephemeral-notes-service/internal/model"
	"github.com/haierkeys/ephemeral-notes-service/pkg/timex"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// apiRes 测试用响应信封
type apiRes struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type noteRes struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	Preview   string  `json:"preview"`
	HTML      string  `json:"html"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := new(internalApp.AppConfig)
	require.NoError(t, defaults.Set(cfg))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, ""))

	appContainer, err := internalApp.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)

	uni := ut.New(en.New(), en.New(), zh.New())
	return NewRouter(appContainer, uni), db
}

func doJSON(r *gin.Engine, method, path, body, cookie string) (*httptest.ResponseRecorder, apiRes) {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", "user_id="+cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res apiRes
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return w, res
}

func TestRouter_IdentityCookieIssued(t *testing.T) {
	r, _ := newTestRouter(t)

	w, res := doJSON(r, http.MethodGet, "/api/notes", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, res.Code)

	var issued string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "user_id" {
			issued = ck.Value
			assert.Equal(t, "/", ck.Path)
			assert.True(t, ck.HttpOnly)
		}
	}
	require.NotEmpty(t, issued)
	_, err := uuid.Parse(issued)
	assert.NoError(t, err)
}

func TestRouter_CreateAndList(t *testing.T) {
	r, _ := newTestRouter(t)
	identity := uuid.NewString()

	w, res := doJSON(r, http.MethodPost, "/api/notes", `{"content":"# Hello\n\nworld"}`, identity)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 200, res.Code)

	var created noteRes
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "# Hello\n\nworld", created.Content)
	assert.Equal(t, "Hello world", created.Preview)
	assert.Nil(t, created.UpdatedAt)

	// 列表首条携带 HTML
	_, res = doJSON(r, http.MethodGet, "/api/notes", "", identity)
	var notes []noteRes
	require.NoError(t, json.Unmarshal(res.Data, &notes))
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].HTML, "<h1>")

	// 其他身份看不到任何笔记
	_, res = doJSON(r, http.MethodGet, "/api/notes", "", uuid.NewString())
	notes = nil
	require.NoError(t, json.Unmarshal(res.Data, &notes))
	assert.Empty(t, notes)
}

func TestRouter_GetUpdateSearch(t *testing.T) {
	r, _ := newTestRouter(t)
	identity := uuid.NewString()

	_, res := doJSON(r, http.MethodPost, "/api/notes", `{"content":"buy **milk** tomorrow"}`, identity)
	var created noteRes
	require.NoError(t, json.Unmarshal(res.Data, &created))

	// 详情携带渲染后的 HTML
	_, res = doJSON(r, http.MethodGet, "/api/notes/"+itoa(created.ID), "", identity)
	require.Equal(t, 200, res.Code)
	var got noteRes
	require.NoError(t, json.Unmarshal(res.Data, &got))
	assert.Contains(t, got.HTML, "<strong>milk</strong>")

	// 其他身份访问返回笔记不存在
	_, res = doJSON(r, http.MethodGet, "/api/notes/"+itoa(created.ID), "", uuid.NewString())
	assert.Equal(t, 10001, res.Code)

	// 更新后 updatedAt 被填充
	_, res = doJSON(r, http.MethodPost, "/api/notes/"+itoa(created.ID), `{"content":"buy bread"}`, identity)
	require.Equal(t, 200, res.Code)
	var updated noteRes
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, "buy bread", updated.Content)
	assert.NotNil(t, updated.UpdatedAt)

	// 搜索命中更新后的内容
	_, res = doJSON(r, http.MethodGet, "/api/notes/search?q=bread", "", identity)
	require.Equal(t, 200, res.Code)
	var items []noteRes
	require.NoError(t, json.Unmarshal(res.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	_, res = doJSON(r, http.MethodGet, "/api/notes/search?q=milk", "", identity)
	items = nil
	require.NoError(t, json.Unmarshal(res.Data, &items))
	assert.Empty(t, items)
}

func TestRouter_ValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	identity := uuid.NewString()

	// 空内容被拒绝
	_, res := doJSON(r, http.MethodPost, "/api/notes", `{"content":""}`, identity)
	assert.Equal(t, 400, res.Code)

	// 超长内容被拒绝
	long := strings.Repeat("a", 1001)
	_, res = doJSON(r, http.MethodPost, "/api/notes", `{"content":"`+long+`"}`, identity)
	assert.Equal(t, 400, res.Code)

	// 非法笔记 ID
	_, res = doJSON(r, http.MethodGet, "/api/notes/abc", "", identity)
	assert.Equal(t, 400, res.Code)

	// 缺少搜索关键字
	_, res = doJSON(r, http.MethodGet, "/api/notes/search", "", identity)
	assert.Equal(t, 400, res.Code)
}

func TestRouter_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	// 未知路由
	_, res := doJSON(r, http.MethodGet, "/api/unknown", "", "")
	assert.Equal(t, 404, res.Code)

	// 未知笔记 ID
	_, res = doJSON(r, http.MethodGet, "/api/notes/99999", "", uuid.NewString())
	assert.Equal(t, 10001, res.Code)
}

func TestRouter_RequestTriggersEviction(t *testing.T) {
	r, db := newTestRouter(t)
	identity := uuid.NewString()

	// 直接写入一条早已过期的记录
	expired := &model.Note{
		Content:   "stale",
		Owner:     identity,
		CreatedAt: timex.Time(time.Now().Add(-time.Hour)),
	}
	require.NoError(t, db.Create(expired).Error)

	// 任意请求都会异步触发清理
	doJSON(r, http.MethodGet, "/api/version", "", "")

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&model.Note{}).Count(&count)
		return count == 0
	}, 3*time.Second, 50*time.Millisecond)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
