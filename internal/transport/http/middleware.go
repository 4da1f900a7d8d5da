package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matmind-server-go/internal/domain/auth"
	"matmind-server-go/internal/platform/config"
)

const identityKey = "auth.identity"

// contentSecurityPolicy locks page content to the server's own origin.
// Inline scripts and styles stay allowed for the bundled frontend.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; " +
	"font-src 'self' data:; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none'"

// SecurityHeaders attaches the CSP and related headers to every response,
// including redirects.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", contentSecurityPolicy)
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// PageGuard applies the route guard to page navigations. API routes,
// asset paths and non-GET requests pass through untouched.
func PageGuard(guard *auth.Guard, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || !auth.Guarded(path) {
			c.Next()
			return
		}

		cookie, _ := c.Cookie(cfg.CookieName)
		decision := guard.Decide(cookie, path)
		if decision.ClearCookie {
			ClearSessionCookie(c, cfg)
		}

		switch decision.Action {
		case auth.RedirectToLogin:
			c.Redirect(http.StatusFound, auth.LoginPath)
			c.Abort()
		case auth.RedirectToHome:
			c.Redirect(http.StatusFound, auth.HomePath)
			c.Abort()
		default:
			if decision.Identity.ID != "" {
				c.Set(identityKey, decision.Identity)
			}
			c.Next()
		}
	}
}

// RequireAuth protects API routes. Unlike the page guard it never
// redirects; a missing or invalid session is a plain 401.
func RequireAuth(tokens *auth.TokenService, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.CookieName)
		if err != nil || cookie == "" {
			RespondError(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		identity, err := tokens.Verify(cookie)
		if err != nil {
			ClearSessionCookie(c, cfg)
			RespondError(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity stored by RequireAuth
// or the page guard.
func IdentityFrom(c *gin.Context) (auth.UserIdentity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return auth.UserIdentity{}, false
	}
	identity, ok := value.(auth.UserIdentity)
	return identity, ok
}

// SetSessionCookie writes the session token cookie. HttpOnly and
// SameSite=Strict always; Secure only when configured for production.
func SetSessionCookie(c *gin.Context, cfg config.AuthConfig, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.CookieName, token, int(cfg.SessionTTL.Std().Seconds()), "/", "", cfg.SecureCookie, true)
}

// ClearSessionCookie expires the session token cookie immediately.
func ClearSessionCookie(c *gin.Context, cfg config.AuthConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.SecureCookie, true)
}
