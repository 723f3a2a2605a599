package middleware

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/logger"
	"Atlania/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSessionService struct {
	users map[string]*model.User
	err   error
}

func (s *stubSessionService) IssueSession(context.Context, *model.User, time.Duration) (*dto.TokenDTO, error) {
	return nil, nil
}

func (s *stubSessionService) ValidateSession(_ context.Context, token string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, service.ErrInvalidToken
}

func (s *stubSessionService) RevokeSession(context.Context, string) error {
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var res dto.Response
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return res
}

func newAuthRouter(sessions service.SessionService, gates ...service.Gate) *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(sessions), RequireGates(gates...), func(c *gin.Context) {
		user := c.MustGet(consts.IdentityKey).(*model.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "token": c.GetString(consts.TokenKey)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	sessions := &stubSessionService{users: map[string]*model.User{
		"good":     {ID: 1, Role: model.RoleReader, IsActive: true},
		"admin":    {ID: 2, Role: model.RoleAdmin, IsActive: true},
		"inactive": {ID: 3, Role: model.RoleAdmin, IsActive: false},
	}}

	tests := []struct {
		name   string
		header string
		gates  []service.Gate
		want   int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", nil, http.StatusUnauthorized},
		{"unknown token", "Bearer nope", nil, http.StatusUnauthorized},
		{"valid", "Bearer good", nil, http.StatusOK},
		{"lowercase scheme", "bearer good", nil, http.StatusOK},
		{"active gate inactive user", "Bearer inactive", []service.Gate{service.RequireActive}, http.StatusBadRequest},
		{"admin gate reader", "Bearer good", []service.Gate{service.RequireActive, service.RequireAdmin}, http.StatusForbidden},
		{"admin gate admin", "Bearer admin", []service.Gate{service.RequireActive, service.RequireAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(sessions, tt.gates...)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if w.Code == http.StatusUnauthorized {
				if w.Header().Get("WWW-Authenticate") != "Bearer" {
					t.Error("missing WWW-Authenticate header")
				}
				if res := decode(t, w); res.Code != http.StatusUnauthorized {
					t.Errorf("body code = %d", res.Code)
				}
			}
		})
	}
}

func TestAuthMiddlewareStoreFailure(t *testing.T) {
	r := newAuthRouter(&stubSessionService{err: context.DeadlineExceeded})
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		allowed   []string
		origin    string
		method    string
		wantAllow string
		wantCreds string
		wantCode  int
	}{
		{"echo when unrestricted", nil, "http://a.example", http.MethodGet, "http://a.example", "", http.StatusOK},
		{"allowed origin", []string{"http://a.example"}, "http://a.example", http.MethodGet, "http://a.example", "true", http.StatusOK},
		{"blocked origin", []string{"http://a.example"}, "http://evil.example", http.MethodGet, "", "", http.StatusOK},
		{"preflight", []string{"http://a.example"}, "http://a.example", http.MethodOptions, "http://a.example", "true", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tt.allowed))
			r.Any("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow origin = %q, want %q", got, tt.wantAllow)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("allow credentials = %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, logger.TraceIDFrom(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Trace-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Trace-ID") != "abc-123" {
		t.Errorf("trace id not propagated: body=%q header=%q", w.Body.String(), w.Header().Get("X-Trace-ID"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Body.String() == "" || w.Body.String() != w.Header().Get("X-Trace-ID") {
		t.Errorf("generated trace id mismatch: %q", w.Body.String())
	}
}

func TestCommonMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CommonMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(consts.BaseURL)) })

	req := httptest.NewRequest(http.MethodGet, "http://api.local:8000/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "http://api.local:8000" {
		t.Errorf("base url = %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "http://api.local:8000/x", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "blog.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "https://blog.example.com" {
		t.Errorf("proxied base url = %q", w.Body.String())
	}
}

func TestMaskBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		mustHide    string
		mustKeep    string
	}{
		{"json", "application/json", `{"email":"a@example.com","password":"hunter2"}`, "hunter2", "a@example.com"},
		{"nested json", "application/json; charset=utf-8", `{"data":{"access_token":"eyJ.abc.def","token_type":"bearer"}}`, "eyJ.abc.def", "bearer"},
		{"form", "application/x-www-form-urlencoded", "username=a%40example.com&password=hunter2", "hunter2", "a@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskBody(tt.contentType, []byte(tt.body))
			if strings.Contains(got, tt.mustHide) {
				t.Errorf("secret leaked: %s", got)
			}
			if !strings.Contains(got, tt.mustKeep) {
				t.Errorf("field lost: %s", got)
			}
		})
	}
	if got := MaskBody("text/plain", []byte("raw")); got != "raw" {
		t.Errorf("plain body = %q", got)
	}
}
