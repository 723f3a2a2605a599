package api

import (
	"Atlania/internal/api/handler"
	"Atlania/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	OAuthHandler      *handler.OAuthHandler
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	CategoryHandler   *handler.CategoryHandler
	AdminHandler      *handler.AdminHandler
	MediaHandler      *handler.MediaHandler

	// SessionService 供鉴权中间件使用
	SessionService service.SessionService
}
