package middleware

import (
	"Atlania/internal/pkg/consts"
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
)

// CommonMiddleware 计算对外访问的 base URL，OAuth 回调地址缺省时使用
func CommonMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		host := c.GetHeader("X-Forwarded-Host")
		if host == "" {
			host = c.Request.Host
		}
		baseURL := fmt.Sprintf("%s://%s", scheme, host)

		c.Set(consts.BaseURL, baseURL)
		newCtx := context.WithValue(c.Request.Context(), consts.BaseURL, baseURL)
		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}
