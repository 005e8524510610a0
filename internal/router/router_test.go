package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"desaweb/internal/auth"
	"desaweb/internal/config"
	"desaweb/internal/model"
)

func newSessions(t *testing.T) *auth.SessionManager {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret")
	require.NoError(t, err)
	return auth.NewSessionManager(jwtService, nil, false, zap.NewNop())
}

func protectedEcho(sessions *auth.SessionManager) *echo.Echo {
	e := echo.New()
	e.GET("/api/admin/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, auth.PrincipalFrom(c).Username)
	}, TokenMiddleware(sessions))
	return e
}

func TestTokenMiddleware(t *testing.T) {
	sessions := newSessions(t)
	token, _, err := sessions.Issue(auth.Principal{ID: 1, Username: "kades", Role: "admin"})
	require.NoError(t, err)
	e := protectedEcho(sessions)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
		}, http.StatusOK, "kades"},
		{"bearer header", func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}, http.StatusOK, "kades"},
		{"garbage bearer", func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer nope")
		}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, "10M", bodyLimit(0))
	assert.Equal(t, "6144K", bodyLimit(5<<20))
}

// Every case below is settled by routing or middleware, so no handler runs.
func TestRegister_Routes(t *testing.T) {
	sessions := newSessions(t)
	editor, _, err := sessions.Issue(auth.Principal{ID: 2, Username: "sekdes", Role: model.RoleEditor})
	require.NoError(t, err)
	admin, _, err := sessions.Issue(auth.Principal{ID: 1, Username: "kades", Role: model.RoleAdmin})
	require.NoError(t, err)

	e := echo.New()
	cfg := &config.Config{Env: "development", Storage: config.StorageConfig{MaxUploadBytes: 1}}
	Register(e, cfg, zap.NewNop(), sessions, Handlers{})

	bearer := func(token string) func(*http.Request) {
		return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) }
	}
	// bodyLimit(1) allows 1025K
	oversized := bytes.Repeat([]byte("x"), 1025*1024+1)

	tests := []struct {
		name     string
		method   string
		path     string
		body     []byte
		setup    func(*http.Request)
		status   int
		contains string
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", status: http.StatusOK, contains: "ok"},
		{name: "unknown api path", method: http.MethodGet, path: "/api/nope", status: http.StatusNotFound},
		{name: "unknown api post", method: http.MethodPost, path: "/api/nope", status: http.StatusNotFound},
		{name: "unknown site path", method: http.MethodGet, path: "/berita/lama", status: http.StatusNotFound},
		{name: "unknown delete", method: http.MethodDelete, path: "/whatever", status: http.StatusNotFound},
		{name: "admin api without token", method: http.MethodGet, path: "/api/admin/news", status: http.StatusUnauthorized, contains: "UNAUTHENTICATED"},
		{name: "unknown admin api without token", method: http.MethodGet, path: "/api/admin/nope", status: http.StatusUnauthorized},
		{name: "users as editor", method: http.MethodGet, path: "/api/admin/users", setup: bearer(editor), status: http.StatusForbidden},
		{name: "user delete as editor", method: http.MethodDelete, path: "/api/admin/users/3", setup: bearer(editor), status: http.StatusForbidden},
		{name: "login form without csrf", method: http.MethodPost, path: "/login", body: []byte("username=kades&password=x"), setup: func(r *http.Request) {
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		}, status: http.StatusBadRequest},
		{name: "dashboard without session", method: http.MethodGet, path: "/admin", status: http.StatusFound},
		{name: "upload over limit", method: http.MethodPost, path: "/api/admin/media/news/1", body: oversized, setup: bearer(admin), status: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(tt.body))
			if tt.setup != nil {
				tt.setup(req)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
		})
	}

	t.Run("dashboard redirect keeps target", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, "/login?next=%2Fadmin", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("unmatched paths set no csrf cookie", func(t *testing.T) {
		for _, path := range []string{"/api/nope", "/berita/lama", "/favicon.ico"} {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code, path)
			for _, c := range rec.Result().Cookies() {
				assert.NotEqual(t, "_csrf", c.Name, path)
			}
		}
	})

	t.Run("page routes set a csrf cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "_csrf=")
	})
}
