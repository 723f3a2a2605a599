package service

import (
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/oauth"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
)

func newOAuthEnv(t *testing.T, provider *fakeOAuthProvider) (*testEnv, OAuthService) {
	t.Helper()
	env := newTestEnv(t)
	var p OAuthProvider
	if provider != nil {
		p = provider
	}
	return env, NewOAuthService(p, env.store, env.userSvc, env.sessionSvc)
}

func stateFrom(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatal(err)
	}
	return u.Query().Get("state")
}

func TestOAuthNotConfigured(t *testing.T) {
	_, svc := newOAuthEnv(t, nil)
	ctx := context.Background()
	if svc.Enabled() {
		t.Fatal("service should be disabled")
	}
	if _, err := svc.BeginGoogleLogin(ctx, "http://localhost/cb"); !errors.Is(err, ErrOAuthNotConfigured) {
		t.Errorf("begin err = %v", err)
	}
	if _, err := svc.CompleteGoogleLogin(ctx, "s", "c"); !errors.Is(err, ErrOAuthNotConfigured) {
		t.Errorf("complete err = %v", err)
	}
}

func TestOAuthLoginFlow(t *testing.T) {
	provider := &fakeOAuthProvider{identity: &oauth.ExternalIdentity{Subject: "g-1", Email: "sso@example.com", Name: "SSO"}}
	env, svc := newOAuthEnv(t, provider)
	ctx := context.Background()

	authURL, err := svc.BeginGoogleLogin(ctx, "http://localhost:8000/api/v1/auth/google/callback")
	if err != nil {
		t.Fatal(err)
	}
	state := stateFrom(t, authURL)
	if state == "" {
		t.Fatalf("no state in %s", authURL)
	}
	if ttl := env.store.ttls[consts.OAuthStateKey+state]; ttl != consts.OAuthStateTTL {
		t.Errorf("state ttl = %v", ttl)
	}

	token, err := svc.CompleteGoogleLogin(ctx, state, "code-1")
	if err != nil {
		t.Fatal(err)
	}
	if provider.gotSession != "session-"+state || !strings.HasSuffix(provider.gotRedirect, "/auth/google/callback") {
		t.Errorf("exchange got session=%q redirect=%q", provider.gotSession, provider.gotRedirect)
	}
	user, err := env.sessionSvc.ValidateSession(ctx, token.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "sso@example.com" || user.GoogleID == nil || *user.GoogleID != "g-1" {
		t.Errorf("user = %+v", user)
	}

	if _, err = svc.CompleteGoogleLogin(ctx, state, "code-1"); !errors.Is(err, ErrOAuthStateInvalid) {
		t.Errorf("replayed state err = %v, want ErrOAuthStateInvalid", err)
	}
}

func TestOAuthCompleteErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown state", func(t *testing.T) {
		_, svc := newOAuthEnv(t, &fakeOAuthProvider{})
		if _, err := svc.CompleteGoogleLogin(ctx, "forged", "code"); !errors.Is(err, ErrOAuthStateInvalid) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("missing code", func(t *testing.T) {
		_, svc := newOAuthEnv(t, &fakeOAuthProvider{})
		if _, err := svc.CompleteGoogleLogin(ctx, "state", ""); !errors.Is(err, ErrOAuthStateInvalid) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("exchange failure", func(t *testing.T) {
		provider := &fakeOAuthProvider{exchangeErr: errors.New("invalid_grant")}
		env, svc := newOAuthEnv(t, provider)
		authURL, err := svc.BeginGoogleLogin(ctx, "http://localhost/cb")
		if err != nil {
			t.Fatal(err)
		}
		_, err = svc.CompleteGoogleLogin(ctx, stateFrom(t, authURL), "code")
		var ue *UpstreamError
		if !errors.As(err, &ue) || ue.Provider != "google" {
			t.Fatalf("err = %v, want UpstreamError", err)
		}
		if !strings.Contains(err.Error(), "invalid_grant") {
			t.Errorf("provider message lost: %v", err)
		}
		if code, _ := CodeOf(err); code != InternalServerError {
			t.Errorf("code = %d", code)
		}
		if len(env.users.users) != 0 {
			t.Error("user created despite failed exchange")
		}
	})

	t.Run("missing email", func(t *testing.T) {
		provider := &fakeOAuthProvider{identity: &oauth.ExternalIdentity{Subject: "g-9"}}
		_, svc := newOAuthEnv(t, provider)
		authURL, err := svc.BeginGoogleLogin(ctx, "http://localhost/cb")
		if err != nil {
			t.Fatal(err)
		}
		if _, err = svc.CompleteGoogleLogin(ctx, stateFrom(t, authURL), "code"); !errors.Is(err, ErrOAuthEmailMissing) {
			t.Errorf("err = %v", err)
		}
	})
}
