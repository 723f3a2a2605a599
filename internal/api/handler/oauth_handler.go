package handler

import (
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/response"
	"Atlania/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const googleCallbackPath = "/auth/google/callback"

type OAuthHandler struct {
	oauthSvc    service.OAuthService
	frontendURL string
	apiPrefix   string
}

func NewOAuthHandler(oauthSvc service.OAuthService, frontendURL, apiPrefix string) *OAuthHandler {
	return &OAuthHandler{
		oauthSvc:    oauthSvc,
		frontendURL: frontendURL,
		apiPrefix:   apiPrefix,
	}
}

// GoogleLogin 跳转到 Google 授权页
func (s *OAuthHandler) GoogleLogin(c *gin.Context) {
	fallback := c.GetString(consts.BaseURL) + s.apiPrefix + googleCallbackPath
	authURL, err := s.oauthSvc.BeginGoogleLogin(c.Request.Context(), fallback)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback 登录结果通过重定向交给前端
func (s *OAuthHandler) GoogleCallback(c *gin.Context) {
	if !s.oauthSvc.Enabled() {
		response.Error(c, service.ErrOAuthNotConfigured)
		return
	}
	if providerErr := c.Query("error"); providerErr != "" {
		s.redirect(c, "error", providerErr)
		return
	}

	token, err := s.oauthSvc.CompleteGoogleLogin(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		if _, known := service.CodeOf(err); !known {
			log.ErrorContext(c.Request.Context(), "google login failed", "err", err)
			err = service.UnExpectedError
		}
		var ue *service.UpstreamError
		if errors.As(err, &ue) {
			err = ue.Err
		}
		s.redirect(c, "error", err.Error())
		return
	}
	s.redirect(c, "token", token.AccessToken)
}

func (s *OAuthHandler) redirect(c *gin.Context, key, value string) {
	sep := "?"
	if strings.Contains(s.frontendURL, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, s.frontendURL+sep+key+"="+url.QueryEscape(value))
}
