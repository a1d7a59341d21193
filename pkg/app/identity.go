package app

import (
	"context"

	"github.com/gin-gonic/gin"
)

// IdentityKey 请求上下文中存放身份令牌的键
const IdentityKey = "user_id"

type identityCtxKey struct{}

// WithIdentity returns a context carrying the identity token
// WithIdentity 返回携带身份令牌的 context
func WithIdentity(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, token)
}

// IdentityFromContext reads the identity token from a plain context
// IdentityFromContext 从普通 context 读取身份令牌
func IdentityFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if token, ok := ctx.Value(identityCtxKey{}).(string); ok {
		return token
	}
	return ""
}

// GetIdentity gets the resolved identity token for the current request
// GetIdentity 获取当前请求解析出的身份令牌
func GetIdentity(c *gin.Context) string {
	if v, exists := c.Get(IdentityKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
