package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"desaweb/internal/auth"
	apperr "desaweb/internal/errors"
	"desaweb/internal/service"
)

// Page paths.
const (
	LoginPath     = "/login"
	LogoutPath    = "/logout"
	DashboardPath = "/admin"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	for _, page := range []string{"login.html", "dashboard.html"} {
		templates[page] = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+page))
	}
	return templates
}

// PageHandler renders the server-side admin login and dashboard pages.
type PageHandler struct {
	authService service.AuthService
	sessions    *auth.SessionManager
	templates   map[string]*template.Template
	log         *zap.Logger
}

// NewPageHandler creates a page handler.
func NewPageHandler(authService service.AuthService, sessions *auth.SessionManager, log *zap.Logger) *PageHandler {
	return &PageHandler{
		authService: authService,
		sessions:    sessions,
		templates:   loadTemplates(),
		log:         log,
	}
}

type loginPage struct {
	CSRF     string
	Next     string
	Username string
	Error    string
}

type dashboardPage struct {
	CSRF      string
	Principal *auth.Principal
}

func (h *PageHandler) render(c echo.Context, status int, page string, data interface{}) error {
	var buf bytes.Buffer
	if err := h.templates[page].ExecuteTemplate(&buf, "base", data); err != nil {
		h.log.Error("render page", zap.String("page", page), zap.Error(err))
		return echo.ErrInternalServerError
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return DashboardPath
	}
	return next
}

// LoginForm renders the login page, or sends signed-in users on to the dashboard.
func (h *PageHandler) LoginForm(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	if _, ok := h.sessions.CurrentSession(c); ok {
		return c.Redirect(http.StatusFound, next)
	}
	return h.render(c, http.StatusOK, "login.html", loginPage{CSRF: csrfToken(c), Next: next})
}

// LoginSubmit handles the login form.
func (h *PageHandler) LoginSubmit(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	next := safeNext(c.FormValue("next"))

	res, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		status := http.StatusUnauthorized
		msg := apperr.ErrInvalidCredentials.Error()
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			h.log.Error("login failed", zap.Error(err))
			status = http.StatusInternalServerError
			msg = "login is temporarily unavailable"
		}
		return h.render(c, status, "login.html", loginPage{
			CSRF:     csrfToken(c),
			Next:     next,
			Username: username,
			Error:    msg,
		})
	}

	h.sessions.SetSessionCookie(c, res.Token, res.ExpiresAt)
	return c.Redirect(http.StatusFound, next)
}

// Logout ends the session and returns to the login page.
func (h *PageHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c)
	return c.Redirect(http.StatusFound, LoginPath)
}

// Dashboard renders the admin landing page. It expects the session
// middleware to have stored the principal.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return h.render(c, http.StatusOK, "dashboard.html", dashboardPage{
		CSRF:      csrfToken(c),
		Principal: auth.PrincipalFrom(c),
	})
}
