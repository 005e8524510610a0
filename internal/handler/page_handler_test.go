package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"desaweb/internal/auth"
	apperr "desaweb/internal/errors"
)

func loginForm(username, password, next string) *strings.Reader {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("next", next)
	return strings.NewReader(form.Encode())
}

func TestPageHandler_LoginForm(t *testing.T) {
	h := NewPageHandler(new(MockAuthService), newSessions(t), zap.NewNop())
	e := newEcho()

	c, rec := newRequest(e, http.MethodGet, "/login?next=/admin", nil, "")
	c.Set("csrf", "csrf-token")
	require.NoError(t, h.LoginForm(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="_csrf" value="csrf-token"`)
	assert.Contains(t, rec.Body.String(), `name="next" value="/admin"`)
}

func TestPageHandler_LoginFormRedirectsSignedIn(t *testing.T) {
	sessions := newSessions(t)
	h := NewPageHandler(new(MockAuthService), sessions, zap.NewNop())
	res := loginResult(t, sessions)

	e := newEcho()
	c, rec := newRequest(e, http.MethodGet, "/login", nil, "")
	c.Request().AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: res.Token})
	require.NoError(t, h.LoginForm(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, DashboardPath, rec.Header().Get(echo.HeaderLocation))
}

func TestPageHandler_LoginSubmit(t *testing.T) {
	sessions := newSessions(t)
	res := loginResult(t, sessions)
	authSvc := new(MockAuthService)
	authSvc.On("Login", mock.Anything, "kades", "rahasia123").Return(res, nil)
	authSvc.On("Login", mock.Anything, "kades", "salah").Return(nil, apperr.ErrInvalidCredentials)
	h := NewPageHandler(authSvc, sessions, zap.NewNop())
	e := newEcho()

	t.Run("success", func(t *testing.T) {
		c, rec := newRequest(e, http.MethodPost, "/login", loginForm("kades", "rahasia123", "/admin"), echo.MIMEApplicationForm)
		require.NoError(t, h.LoginSubmit(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get(echo.HeaderLocation))

		cookie := findCookie(rec, auth.SessionCookieName)
		require.NotNil(t, cookie)
		assert.Equal(t, res.Token, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		c, rec := newRequest(e, http.MethodPost, "/login", loginForm("kades", "salah", "/admin"), echo.MIMEApplicationForm)
		require.NoError(t, h.LoginSubmit(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "username or password incorrect")
		assert.Nil(t, findCookie(rec, auth.SessionCookieName))
	})

	t.Run("offsite next is ignored", func(t *testing.T) {
		c, rec := newRequest(e, http.MethodPost, "/login", loginForm("kades", "rahasia123", "//evil.example"), echo.MIMEApplicationForm)
		require.NoError(t, h.LoginSubmit(c))
		assert.Equal(t, DashboardPath, rec.Header().Get(echo.HeaderLocation))
	})
}

func TestPageHandler_LogoutAndDashboard(t *testing.T) {
	h := NewPageHandler(new(MockAuthService), newSessions(t), zap.NewNop())
	e := newEcho()

	c, rec := newRequest(e, http.MethodPost, "/logout", nil, "")
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
	assert.Less(t, findCookie(rec, auth.SessionCookieName).MaxAge, 0)

	c, rec = newRequest(e, http.MethodGet, "/admin", nil, "")
	p := kades
	c.Set(auth.PrincipalContextKey, &p)
	require.NoError(t, h.Dashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kepala Desa")
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                   DashboardPath,
		"/admin/news":        "/admin/news",
		"https://evil.test":  DashboardPath,
		"//evil.test":        DashboardPath,
		"/\\evil.test":       DashboardPath,
		"admin":              DashboardPath,
		"/admin?page=2#top":  "/admin?page=2#top",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}
