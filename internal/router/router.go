package router

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"desaweb/internal/auth"
	"desaweb/internal/config"
	apperr "desaweb/internal/errors"
	"desaweb/internal/handler"
	"desaweb/internal/model"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Pages   *handler.PageHandler
	News    *handler.ContentHandler[model.News]
	Events  *handler.ContentHandler[model.Event]
	Gallery *handler.ContentHandler[model.GalleryAlbum]
	Tourism *handler.ContentHandler[model.TourPackage]
	UMKM    *handler.ContentHandler[model.UMKM]
	Media   *handler.MediaHandler
	Profile *handler.ProfileHandler
	Users   *handler.UserHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *zap.Logger, sessions *auth.SessionManager, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Server-rendered admin pages. CSRF is attached per route: a group with
	// an empty prefix would also catch every unmatched path on the site.
	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.SecureCookies(),
		CookieSameSite: http.SameSiteStrictMode,
	})
	e.GET(handler.LoginPath, h.Pages.LoginForm, csrf)
	e.POST(handler.LoginPath, h.Pages.LoginSubmit, csrf)
	e.POST(handler.LogoutPath, h.Pages.Logout, csrf)
	e.GET(handler.DashboardPath, h.Pages.Dashboard, csrf, sessions.RequireSessionMiddleware(handler.LoginPath))

	api := e.Group("/api")
	requireToken := TokenMiddleware(sessions)

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me, requireToken)

	h.News.RegisterPublic(api, "/news")
	h.Events.RegisterPublic(api, "/events")
	h.Gallery.RegisterPublic(api, "/gallery")
	h.Tourism.RegisterPublic(api, "/tourism")
	h.UMKM.RegisterPublic(api, "/umkm")
	api.GET("/media/:entityType/:entityId", h.Media.List)
	api.GET("/profile", h.Profile.Get)

	// Admin routes (cookie or bearer token)
	admin := api.Group("/admin", requireToken)

	h.News.RegisterAdmin(admin, "/news")
	h.Events.RegisterAdmin(admin, "/events")
	h.Gallery.RegisterAdmin(admin, "/gallery")
	h.Tourism.RegisterAdmin(admin, "/tourism")
	h.UMKM.RegisterAdmin(admin, "/umkm")

	uploadLimit := middleware.BodyLimit(bodyLimit(cfg.Storage.MaxUploadBytes))
	admin.GET("/media/:entityType/:entityId", h.Media.AdminList)
	admin.POST("/media/:entityType/:entityId", h.Media.Upload, uploadLimit)
	admin.DELETE("/media/:id", h.Media.Delete)
	admin.PUT("/profile", h.Profile.Update)

	users := admin.Group("/users", auth.RequireRole(model.RoleAdmin))
	users.GET("", h.Users.ListUsers)
	users.POST("", h.Users.CreateUser)
	users.DELETE("/:id", h.Users.DeleteUser)
	users.PUT("/:id/password", h.Users.ChangePassword)
}

// TokenMiddleware accepts the session token from the session cookie or an
// Authorization bearer header and stores the principal on the context.
func TokenMiddleware(sessions *auth.SessionManager) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     auth.PrincipalContextKey,
		TokenLookup:    "cookie:" + auth.SessionCookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: sessions.ParseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperr.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// bodyLimit renders a byte count for middleware.BodyLimit, leaving room for
// the multipart envelope.
func bodyLimit(maxUpload int64) string {
	const envelope = 1 << 20
	if maxUpload <= 0 {
		return "10M"
	}
	kb := (maxUpload + envelope + 1023) / 1024
	return strconv.FormatInt(kb, 10) + "K"
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
