package oauth

import (
	"Atlania/internal/api/config"
	"net/http"
	"net/url"
	"time"

	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
	"github.com/pkg/errors"
)

// ExternalIdentity 第三方账号断言
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleProvider 每次登录按回调地址构造 goth provider，会话序列化后由调用方保存
type GoogleProvider struct {
	clientID     string
	clientSecret string
	redirectURI  string
	client       *http.Client
}

// NewGoogleProvider 未配置 client_id/secret 时返回 nil
func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	if !cfg.Enabled() {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		client:       &http.Client{Timeout: timeout},
	}
}

// RedirectURI 配置值优先，否则使用请求推导出的回调地址
func (p *GoogleProvider) RedirectURI(fallback string) string {
	if p.redirectURI != "" {
		return p.redirectURI
	}
	return fallback
}

func (p *GoogleProvider) provider(redirectURI string) *google.Provider {
	gp := google.New(p.clientID, p.clientSecret, redirectURI, "openid", "email", "profile")
	gp.HTTPClient = p.client
	return gp
}

// BeginAuth 返回授权地址与需要暂存的会话
func (p *GoogleProvider) BeginAuth(state, redirectURI string) (authURL string, session string, err error) {
	sess, err := p.provider(redirectURI).BeginAuth(state)
	if err != nil {
		return "", "", errors.Wrap(err, "google begin auth")
	}
	authURL, err = sess.GetAuthURL()
	if err != nil {
		return "", "", errors.Wrap(err, "google auth url")
	}
	return authURL, sess.Marshal(), nil
}

// Exchange 用授权码换取令牌并拉取用户信息
func (p *GoogleProvider) Exchange(session, redirectURI, code string) (*ExternalIdentity, error) {
	gp := p.provider(redirectURI)

	sess, err := gp.UnmarshalSession(session)
	if err != nil {
		return nil, errors.Wrap(err, "google session")
	}
	if _, err = sess.Authorize(gp, url.Values{"code": {code}}); err != nil {
		return nil, errors.Wrap(err, "google token exchange")
	}

	user, err := gp.FetchUser(sess)
	if err != nil {
		return nil, errors.Wrap(err, "google userinfo")
	}
	return fromGothUser(user), nil
}

func fromGothUser(u goth.User) *ExternalIdentity {
	return &ExternalIdentity{
		Subject: u.UserID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.AvatarURL,
	}
}
