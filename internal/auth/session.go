package auth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// SessionCookieName is the cookie holding the session token.
	SessionCookieName = "session_token"
	// PrincipalContextKey is the echo context key for the authenticated principal.
	PrincipalContextKey = "principal"
)

// SessionStatus is the outcome of a session requirement check.
type SessionStatus int

const (
	Unauthenticated SessionStatus = iota
	Authenticated
)

// SessionResult is returned by RequireSession. Principal is set only when
// Status is Authenticated.
type SessionResult struct {
	Status    SessionStatus
	Principal *Principal
}

// SessionManager ties signed tokens to the request cookie store.
type SessionManager struct {
	jwt    *JWTService
	store  TokenStoreInterface
	secure bool
	log    *zap.Logger
}

// NewSessionManager creates a session manager. secure controls the cookie
// Secure flag and should be false only in local development.
func NewSessionManager(jwtService *JWTService, store TokenStoreInterface, secure bool, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionManager{jwt: jwtService, store: store, secure: secure, log: log}
}

// Issue signs a session token for p.
func (m *SessionManager) Issue(p Principal) (string, time.Time, error) {
	return m.jwt.Issue(p)
}

// SetSessionCookie stores token in an HTTP-only, SameSite=Lax cookie that
// expires together with the token.
func (m *SessionManager) SetSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL.Seconds()),
		Expires:  expiresAt,
	})
}

// ClearSessionCookie removes the session cookie.
func (m *SessionManager) ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Authenticate verifies token and rejects revoked tokens.
func (m *SessionManager) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.jwt.Verify(token)
	if err != nil {
		return nil, err
	}
	if m.store != nil {
		revoked, err := m.store.IsRevoked(ctx, claims.RegisteredClaims.ID)
		if err == nil && revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// CurrentSession returns the principal of the request's session cookie, or
// false when the cookie is missing or the token is invalid.
func (m *SessionManager) CurrentSession(c echo.Context) (*Principal, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := m.Authenticate(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil, false
	}
	p := claims.Principal
	return &p, true
}

// RequireSession reports whether the request carries a valid session.
func (m *SessionManager) RequireSession(c echo.Context) SessionResult {
	p, ok := m.CurrentSession(c)
	if !ok {
		return SessionResult{Status: Unauthenticated}
	}
	return SessionResult{Status: Authenticated, Principal: p}
}

// Logout revokes the current token, if any, and clears the cookie.
func (m *SessionManager) Logout(c echo.Context) {
	defer m.ClearSessionCookie(c)

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" || m.store == nil {
		return
	}
	claims, err := m.jwt.Verify(cookie.Value)
	if err != nil {
		return
	}
	ttl := claims.ExpiresAt.Time.Sub(m.jwt.now())
	if err := m.store.RevokeToken(c.Request().Context(), claims.RegisteredClaims.ID, ttl); err != nil {
		m.log.Warn("failed to revoke session token", zap.Uint("user_id", claims.Principal.ID), zap.Error(err))
	}
}

// ParseToken adapts Authenticate to echo-jwt's ParseTokenFunc. The returned
// value is stored under PrincipalContextKey.
func (m *SessionManager) ParseToken(c echo.Context, token string) (interface{}, error) {
	claims, err := m.Authenticate(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	p := claims.Principal
	return &p, nil
}

// RequireSessionMiddleware redirects requests without a valid session to
// loginPath, carrying the original path in the "next" query parameter.
func (m *SessionManager) RequireSessionMiddleware(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := m.RequireSession(c)
			if res.Status != Authenticated {
				target := loginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}
			c.Set(PrincipalContextKey, res.Principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored on c by the session middlewares.
func PrincipalFrom(c echo.Context) *Principal {
	p, _ := c.Get(PrincipalContextKey).(*Principal)
	return p
}

// RequireRole rejects principals whose role is not in roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
