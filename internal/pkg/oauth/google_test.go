package oauth

import (
	"Atlania/internal/api/config"
	"net/url"
	"strings"
	"testing"

	"github.com/markbates/goth"
)

func TestNewGoogleProviderDisabled(t *testing.T) {
	if p := NewGoogleProvider(config.GoogleConfig{}); p != nil {
		t.Error("provider created without credentials")
	}
}

func TestRedirectURI(t *testing.T) {
	p := NewGoogleProvider(config.GoogleConfig{ClientID: "id", ClientSecret: "secret"})
	if got := p.RedirectURI("http://api.local/cb"); got != "http://api.local/cb" {
		t.Errorf("fallback not used: %q", got)
	}

	p = NewGoogleProvider(config.GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "https://atlania.studio/cb"})
	if got := p.RedirectURI("http://api.local/cb"); got != "https://atlania.studio/cb" {
		t.Errorf("configured redirect ignored: %q", got)
	}
}

func TestBeginAuthCarriesState(t *testing.T) {
	p := NewGoogleProvider(config.GoogleConfig{ClientID: "client-1", ClientSecret: "secret"})

	authURL, session, err := p.BeginAuth("state-xyz", "http://api.local/cb")
	if err != nil {
		t.Fatalf("BeginAuth: %v", err)
	}
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("auth url: %v", err)
	}
	q := u.Query()
	if q.Get("state") != "state-xyz" {
		t.Errorf("state = %q", q.Get("state"))
	}
	if q.Get("client_id") != "client-1" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "http://api.local/cb" {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("scope = %q", q.Get("scope"))
	}
	if session == "" {
		t.Error("empty session")
	}
}

func TestFromGothUser(t *testing.T) {
	got := fromGothUser(goth.User{UserID: "g-1", Email: "a@b.co", Name: "A", AvatarURL: "http://img"})
	if got.Subject != "g-1" || got.Email != "a@b.co" || got.Name != "A" || got.Picture != "http://img" {
		t.Errorf("fromGothUser = %+v", got)
	}
}
