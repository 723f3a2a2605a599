package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/oauth"
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// OAuthProvider 第三方登录提供方
type OAuthProvider interface {
	RedirectURI(fallback string) string
	BeginAuth(state, redirectURI string) (authURL string, session string, err error)
	Exchange(session, redirectURI, code string) (*oauth.ExternalIdentity, error)
}

type OAuthService interface {
	Enabled() bool
	BeginGoogleLogin(ctx context.Context, fallbackRedirectURI string) (string, error)
	CompleteGoogleLogin(ctx context.Context, state, code string) (*dto.TokenDTO, error)
}

type oauthState struct {
	Session     string `json:"session"`
	RedirectURI string `json:"redirect_uri"`
}

type oauthServiceImpl struct {
	provider   OAuthProvider
	store      KVStore
	userSvc    UserService
	sessionSvc SessionService
}

// NewOAuthService provider 为 nil 表示未配置 Google 登录
func NewOAuthService(provider OAuthProvider, store KVStore, userSvc UserService, sessionSvc SessionService) OAuthService {
	return &oauthServiceImpl{
		provider:   provider,
		store:      store,
		userSvc:    userSvc,
		sessionSvc: sessionSvc,
	}
}

func (s *oauthServiceImpl) Enabled() bool {
	return s.provider != nil
}

// BeginGoogleLogin 生成一次性 state 并返回授权地址
func (s *oauthServiceImpl) BeginGoogleLogin(ctx context.Context, fallbackRedirectURI string) (string, error) {
	if !s.Enabled() {
		return "", ErrOAuthNotConfigured
	}

	state := uuid.NewString()
	redirectURI := s.provider.RedirectURI(fallbackRedirectURI)

	authURL, session, err := s.provider.BeginAuth(state, redirectURI)
	if err != nil {
		return "", upstream("google", err)
	}

	payload, err := json.Marshal(&oauthState{Session: session, RedirectURI: redirectURI})
	if err != nil {
		return "", err
	}
	if err = s.store.SetWithExpiration(ctx, consts.OAuthStateKey+state, string(payload), consts.OAuthStateTTL); err != nil {
		return "", err
	}
	return authURL, nil
}

// CompleteGoogleLogin 校验 state，换取用户信息后签发会话
func (s *oauthServiceImpl) CompleteGoogleLogin(ctx context.Context, state, code string) (*dto.TokenDTO, error) {
	if !s.Enabled() {
		return nil, ErrOAuthNotConfigured
	}
	if state == "" || code == "" {
		return nil, ErrOAuthStateInvalid
	}

	raw, err := s.store.GetAndDelete(ctx, consts.OAuthStateKey+state)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrOAuthStateInvalid
	}
	var saved oauthState
	if err = json.Unmarshal([]byte(raw), &saved); err != nil {
		return nil, ErrOAuthStateInvalid
	}

	identity, err := s.provider.Exchange(saved.Session, saved.RedirectURI, code)
	if err != nil {
		log.WarnContext(ctx, "google exchange failed", "err", err)
		return nil, upstream("google", err)
	}

	user, err := s.userSvc.GetOrCreateOAuthUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.sessionSvc.IssueSession(ctx, user, 0)
}
