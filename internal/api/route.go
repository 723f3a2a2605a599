package api

import (
	"Atlania/internal/api/config"
	"Atlania/internal/api/middleware"
	"Atlania/internal/pkg/logger"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	logger.SetupGin(r, cfg.Log)
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.Origins))
	r.Use(middleware.CommonMiddleware())

	r.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "Welcome to " + cfg.Server.ProjectName})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := middleware.AuthMiddleware(group.SessionService)
	active := middleware.RequireGates(service.RequireActive)

	apiGroup := r.Group(cfg.Server.APIPrefix)
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong")
		})

		authGroup := apiGroup.Group("/auth")
		{
			// 无需登录即可访问的接口
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)
			authGroup.GET("/google/login", group.OAuthHandler.GoogleLogin)
			authGroup.GET("/google/callback", group.OAuthHandler.GoogleCallback)

			sessionGroup := authGroup.Group("")
			sessionGroup.Use(auth)
			{
				sessionGroup.POST("/logout", group.UserHandler.Logout)
				sessionGroup.GET("/me", active, group.UserHandler.GetUserInfo)
				sessionGroup.POST("/test-token", active, group.UserHandler.GetUserInfo)
			}
		}

		apiGroup.GET("/categories", group.CategoryHandler.GetCategories)

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/my-posts", auth, active, group.PostHandler.GetPostSelf)
			postGroup.GET("/:slug", group.PostHandler.GetPostBySlug)
			postGroup.POST("", auth, middleware.RequireGates(service.RequireActive, service.RequireWriter), group.PostHandler.CreatePost)
		}

		interactionGroup := apiGroup.Group("/interactions")
		{
			interactionGroup.GET("/posts/:post_id/comments", group.PostActionHandler.GetComments)

			authActionGroup := interactionGroup.Group("")
			authActionGroup.Use(auth, active)
			{
				authActionGroup.POST("/comments", group.PostActionHandler.CreateComment)
				authActionGroup.POST("/posts/:post_id/like", group.PostActionHandler.LikePost)
				authActionGroup.DELETE("/posts/:post_id/like", group.PostActionHandler.UnlikePost)
			}
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, middleware.RequireGates(service.RequireActive, service.RequireAdmin))
		{
			adminGroup.GET("/users", group.AdminHandler.ListUsers)
			adminGroup.PUT("/users/:user_id/role", group.AdminHandler.UpdateUserRole)
			adminGroup.GET("/posts/pending", group.AdminHandler.GetPendingPosts)
			adminGroup.PUT("/posts/:post_id/status", group.AdminHandler.UpdatePostStatus)
		}

		mediaGroup := apiGroup.Group("/upload")
		mediaGroup.Use(auth, active)
		{
			mediaGroup.POST("/image", group.MediaHandler.UploadImage)
			mediaGroup.POST("/video", group.MediaHandler.UploadVideo)
			mediaGroup.POST("/file", group.MediaHandler.UploadFile)
			mediaGroup.DELETE("/:file_id", group.MediaHandler.Delete)
		}
	}

	return r
}
