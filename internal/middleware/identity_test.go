package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/ephemeral-notes-service/pkg/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityRouter(cfg IdentityConfig, captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(cfg))
	r.GET("/", func(c *gin.Context) {
		*captured = app.GetIdentity(c)
		c.Status(http.StatusOK)
	})
	return r
}

func findCookie(res *http.Response, name string) *http.Cookie {
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestIdentity_MintsWhenMissing(t *testing.T) {
	var identity string
	r := newIdentityRouter(IdentityConfig{CookieName: "user_id"}, &identity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	_, err := uuid.Parse(identity)
	require.NoError(t, err)

	ck := findCookie(w.Result(), "user_id")
	require.NotNil(t, ck)
	assert.Equal(t, identity, ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.True(t, ck.HttpOnly)
}

func TestIdentity_ReusesValidCookie(t *testing.T) {
	var identity string
	r := newIdentityRouter(IdentityConfig{CookieName: "user_id"}, &identity)

	existing := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "user_id="+existing)
	r.ServeHTTP(w, req)

	assert.Equal(t, existing, identity)
	// refresh 关闭时不重复下发
	assert.Nil(t, findCookie(w.Result(), "user_id"))
}

func TestIdentity_RefreshReissuesCookie(t *testing.T) {
	var identity string
	r := newIdentityRouter(IdentityConfig{CookieName: "user_id", Refresh: true}, &identity)

	existing := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "user_id="+existing)
	r.ServeHTTP(w, req)

	assert.Equal(t, existing, identity)

	ck := findCookie(w.Result(), "user_id")
	require.NotNil(t, ck)
	assert.Equal(t, existing, ck.Value)
}

func TestIdentity_OpaqueValueReusedVerbatim(t *testing.T) {
	var identity string
	r := newIdentityRouter(IdentityConfig{CookieName: "user_id"}, &identity)

	// 值不做服务端校验，任意非空值原样复用
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "user_id=opaque-legacy-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, "opaque-legacy-token", identity)
	assert.Nil(t, findCookie(w.Result(), "user_id"))
}

func TestIdentity_EmptyValueReplaced(t *testing.T) {
	var identity string
	r := newIdentityRouter(IdentityConfig{CookieName: "user_id"}, &identity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "user_id=")
	r.ServeHTTP(w, req)

	require.NotEmpty(t, identity)
	_, err := uuid.Parse(identity)
	require.NoError(t, err)

	ck := findCookie(w.Result(), "user_id")
	require.NotNil(t, ck)
	assert.Equal(t, identity, ck.Value)
}

func TestIdentity_IdentityReachesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(IdentityConfig{CookieName: "user_id"}))

	var fromCtx string
	r.GET("/", func(c *gin.Context) {
		fromCtx = app.IdentityFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	existing := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "user_id="+existing)
	r.ServeHTTP(w, req)

	assert.Equal(t, existing, fromCtx)
}

func TestParseCookieHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantValue string
		wantFound bool
	}{
		{"empty header", "", "", false},
		{"single cookie", "user_id=abc", "abc", true},
		{"among others", "theme=dark; user_id=abc; lang=en", "abc", true},
		{"extra whitespace", "  user_id =x; user_id= abc ", "abc", true},
		{"malformed segment ignored", "garbage; user_id=abc", "abc", true},
		{"name mismatch", "userid=abc", "", false},
		{"empty value", "user_id=", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := parseCookieHeader(tt.header, "user_id")
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantValue, got)
			}
		})
	}
}
