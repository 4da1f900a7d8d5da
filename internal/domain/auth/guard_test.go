package auth

import (
	"testing"
	"time"
)

func newTestGuard(t *testing.T) (*Guard, *TokenService) {
	t.Helper()
	ts, err := NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return NewGuard(ts), ts
}

func TestGuardDecisions(t *testing.T) {
	guard, ts := newTestGuard(t)

	validToken, err := ts.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	expiredTS, _ := NewTokenService(testSecret, time.Hour)
	expiredTS.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expiredToken, err := expiredTS.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tests := []struct {
		name        string
		cookie      string
		path        string
		wantAction  Action
		wantClear   bool
	}{
		{name: "public page without cookie", cookie: "", path: "/", wantAction: Allow},
		{name: "public page with valid cookie", cookie: validToken, path: "/", wantAction: Allow},
		{name: "login page without cookie", cookie: "", path: "/login", wantAction: Allow},
		{name: "login page with valid cookie", cookie: validToken, path: "/login", wantAction: RedirectToHome},
		{name: "login page with garbage cookie", cookie: "garbage", path: "/login", wantAction: Allow, wantClear: true},
		{name: "login page with expired cookie", cookie: expiredToken, path: "/login", wantAction: Allow, wantClear: true},
		{name: "protected page without cookie", cookie: "", path: "/dashboard", wantAction: RedirectToLogin},
		{name: "protected page with expired cookie", cookie: expiredToken, path: "/dashboard", wantAction: RedirectToLogin, wantClear: true},
		{name: "protected page with valid cookie", cookie: validToken, path: "/dashboard", wantAction: Allow},
		{name: "deep protected page without cookie", cookie: "", path: "/onboarding", wantAction: RedirectToLogin},
		{name: "plan page with valid cookie", cookie: validToken, path: "/plan", wantAction: Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := guard.Decide(tt.cookie, tt.path)
			if decision.Action != tt.wantAction {
				t.Fatalf("Decide(%q, %q) = %s, want %s",
					tt.cookie, tt.path, decision.Action, tt.wantAction)
			}
			if decision.ClearCookie != tt.wantClear {
				t.Fatalf("ClearCookie = %v, want %v", decision.ClearCookie, tt.wantClear)
			}
			if tt.wantAction == Allow && tt.cookie == validToken && tt.path != "/" {
				if decision.Identity.Email != testIdentity().Email {
					t.Fatalf("expected identity on allowed request, got %+v", decision.Identity)
				}
			}
		})
	}
}

func TestGuardIsIdempotent(t *testing.T) {
	guard, ts := newTestGuard(t)

	token, err := ts.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	first := guard.Decide(token, "/dashboard")
	second := guard.Decide(token, "/dashboard")
	if first != second {
		t.Fatalf("guard is not idempotent: %+v vs %+v", first, second)
	}
}

func TestGuarded(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/", want: true},
		{path: "/login", want: true},
		{path: "/dashboard", want: true},
		{path: "/onboarding", want: true},
		{path: "/api/auth/login", want: false},
		{path: "/api", want: false},
		{path: "/favicon.ico", want: false},
		{path: "/assets/app.js", want: false},
		{path: "/_internal/health", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Guarded(tt.path); got != tt.want {
				t.Errorf("Guarded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
