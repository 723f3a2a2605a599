package wire

import (
	"Atlania/internal/api"
	"Atlania/internal/api/config"
	"Atlania/internal/api/handler"
	"Atlania/internal/pkg/security"
	"Atlania/internal/repository"
	"Atlania/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// Infra 外部依赖，OAuth 为 nil 表示未配置 Google 登录
type Infra struct {
	DB    *gorm.DB
	Store service.KVStore
	Media service.MediaHost
	OAuth service.OAuthProvider
}

func BuildApplication(infra *Infra, cfg *config.Config) (*ApplicationContainer, error) {
	codec, err := security.NewTokenCodec(cfg.Security.SecretKey, cfg.Security.Algorithm, cfg.Security.TokenLifetime())
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepo(infra.DB)
	postRepo := repository.NewPostRepository(infra.DB)
	postActionRepo := repository.NewPostActionRepo(infra.DB)
	categoryRepo := repository.NewCategoryRepository(infra.DB)

	sessionService := service.NewSessionService(codec, userRepo, infra.Store)
	userService := service.NewUserService(userRepo, sessionService)
	oauthService := service.NewOAuthService(infra.OAuth, infra.Store, userService, sessionService)
	userRolesService := service.NewUserRolesService(userRepo)
	postService := service.NewPostService(postRepo, postActionRepo, categoryRepo)
	postActionService := service.NewPostActionService(postActionRepo, postRepo)
	categoryService := service.NewCategoryService(categoryRepo, infra.Store)
	mediaService := service.NewMediaService(infra.Media)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		OAuthHandler:      handler.NewOAuthHandler(oauthService, cfg.Frontend.URL, cfg.Server.APIPrefix),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		CategoryHandler:   handler.NewCategoryHandler(categoryService),
		AdminHandler:      handler.NewAdminHandler(userRolesService, postService),
		MediaHandler:      handler.NewMediaHandler(mediaService),
		SessionService:    sessionService,
	}

	router := api.SetupRouter(handlers, cfg)

	return &ApplicationContainer{
		Router: router,
		DB:     infra.DB,
	}, nil
}
