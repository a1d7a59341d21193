package middleware

import (
	"net/http"
	"strings"

	"github.com/haierkeys/ephemeral-notes-service/pkg/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityConfig 匿名身份 Cookie 配置
type IdentityConfig struct {
	// CookieName 身份 Cookie 名称
	CookieName string
	// Refresh 为 true 时每次请求都重新下发 Cookie，延长浏览器端存活时间
	Refresh bool
}

// Identity 创建匿名身份中间件
// 从 Cookie 读取身份标识；缺失或非法时铸造新的 UUID 并下发
// 身份写入 gin.Context 与 request.Context，供下游处理器与服务层使用
func Identity(cfg IdentityConfig) gin.HandlerFunc {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = app.IdentityKey
	}

	return func(c *gin.Context) {
		identity, minted := resolveIdentity(c.Request.Header.Get("Cookie"), cookieName)

		if minted || cfg.Refresh {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cookieName,
				Value:    identity,
				Path:     "/",
				HttpOnly: true,
			})
		}

		c.Set(app.IdentityKey, identity)
		c.Request = c.Request.WithContext(app.WithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

// resolveIdentity 从 Cookie 头中解析身份，返回身份值和是否为新铸造
// 已有的非空值原样复用，不做服务端校验；缺失或为空时铸造新的 UUID
func resolveIdentity(cookieHeader string, cookieName string) (string, bool) {
	if value, ok := parseCookieHeader(cookieHeader, cookieName); ok && value != "" {
		return value, false
	}
	return uuid.NewString(), true
}

// parseCookieHeader 在 Cookie 头中查找指定名称的值
// 手工解析以容忍不规范的分隔和空白
func parseCookieHeader(header string, name string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		if k == name {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
