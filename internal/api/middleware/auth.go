package middleware

import (
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// AuthMiddleware 校验令牌，把当前用户注入 Context
func AuthMiddleware(sessionSvc service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			response.Fail(c, response.Unauthorized, "Not authenticated")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])

		user, err := sessionSvc.ValidateSession(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(consts.IdentityKey, user)
		c.Set(consts.UserIDKey, user.ID)
		c.Set(consts.RoleKey, string(user.Role))
		c.Set(consts.TokenKey, tokenString)

		newCtx := context.WithValue(c.Request.Context(), consts.UserIDKey, user.ID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
