package middleware

import (
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireGates 依次执行准入检查，须挂在 AuthMiddleware 之后
func RequireGates(gates ...service.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := c.MustGet(consts.IdentityKey).(*model.User)
		if err := service.Authorize(caller, gates...); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
