package auth

import "strings"

// Action is the routing decision the guard hands to the HTTP layer.
type Action int

const (
	// Allow lets the request through to the page.
	Allow Action = iota
	// RedirectToLogin sends the client to the login page.
	RedirectToLogin
	// RedirectToHome sends an already-authenticated client to the
	// protected landing page.
	RedirectToHome
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToHome:
		return "redirect-to-home"
	default:
		return "unknown"
	}
}

const (
	// PublicPath is the unauthenticated landing page.
	PublicPath = "/"
	// LoginPath renders the login form.
	LoginPath = "/login"
	// HomePath is where authenticated clients land.
	HomePath = "/dashboard"
)

// Decision is the guard output for one request. ClearCookie is set when a
// present cookie failed verification and should not be replayed.
type Decision struct {
	Action      Action
	Identity    UserIdentity
	ClearCookie bool
}

// Guard decides, per request, whether a page may render. It holds no
// mutable state: the same cookie and path always produce the same decision.
type Guard struct {
	tokens *TokenService
}

// NewGuard builds a guard around the token service.
func NewGuard(tokens *TokenService) *Guard {
	return &Guard{tokens: tokens}
}

// Guarded reports whether the path is subject to the page guard at all.
// API routes, static assets (any path with a dot) and internal prefixes
// are handled elsewhere.
func Guarded(path string) bool {
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return false
	}
	if strings.HasPrefix(path, "/_") {
		return false
	}
	if strings.Contains(path, ".") {
		return false
	}
	return true
}

// Decide evaluates the request cookie against the target path.
func (g *Guard) Decide(cookieValue, path string) Decision {
	if path == PublicPath {
		return Decision{Action: Allow}
	}

	if path == LoginPath {
		if cookieValue == "" {
			return Decision{Action: Allow}
		}
		identity, err := g.tokens.Verify(cookieValue)
		if err != nil {
			// Stale cookie on the login page: render the form and
			// clear the cookie rather than surface the failure.
			return Decision{Action: Allow, ClearCookie: true}
		}
		return Decision{Action: RedirectToHome, Identity: identity}
	}

	if cookieValue == "" {
		return Decision{Action: RedirectToLogin}
	}
	identity, err := g.tokens.Verify(cookieValue)
	if err != nil {
		return Decision{Action: RedirectToLogin, ClearCookie: true}
	}
	return Decision{Action: Allow, Identity: identity}
}
