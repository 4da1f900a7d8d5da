package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"matmind-server-go/internal/domain/auth"
	"matmind-server-go/internal/domain/auth/model"
	"matmind-server-go/internal/domain/auth/store"
	"matmind-server-go/internal/platform/config"
	"matmind-server-go/internal/platform/logging"
	httptransport "matmind-server-go/internal/transport/http"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "correct-horse-battery"
)

type failingStore struct{}

func (failingStore) FindByEmail(context.Context, string) (model.UserRecord, bool, error) {
	return model.UserRecord{}, false, errors.New("store unavailable")
}
func (failingStore) Create(context.Context, model.UserRecord) error { return errors.New("down") }
func (failingStore) Count(context.Context) (int64, error)          { return 0, errors.New("down") }
func (failingStore) Close(context.Context) error                   { return nil }

func newTestServer(t *testing.T, users store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	t.Cleanup(logger.Close)

	if users == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		memory := store.NewMemory()
		err = memory.Create(context.Background(), model.UserRecord{
			ID:           "user-1",
			Email:        "roller@example.com",
			Name:         "Roller",
			PasswordHash: string(hash),
		})
		if err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
		users = memory
	}

	verifier, err := auth.NewVerifier(users, logger)
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	cookies := config.AuthConfig{
		CookieName: "token",
		SessionTTL: config.Duration(time.Hour),
	}
	service, err := NewService(verifier, tokens, cookies, nil, logger)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	engine := gin.New()
	api := engine.Group("/api")
	if err := service.Register(context.Background(), api); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestLoginHappyPath(t *testing.T) {
	engine := newTestServer(t, nil)

	rec := postJSON(engine, "/api/auth/login",
		`{"email":" Roller@Example.com ","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp httptransport.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success envelope: %+v", resp)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape: %T", resp.Data)
	}
	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user in response: %+v", data)
	}
	if user["email"] != "roller@example.com" {
		t.Fatalf("unexpected user email: %v", user["email"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("password hash must never appear in the response")
	}

	setCookie := rec.Header().Get("Set-Cookie")
	for _, want := range []string{"token=", "HttpOnly", "SameSite=Strict", "Max-Age=3600"} {
		if !strings.Contains(setCookie, want) {
			t.Errorf("Set-Cookie missing %q: %q", want, setCookie)
		}
	}
}

func TestLoginFailuresAnswer401(t *testing.T) {
	engine := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"email":"roller@example.com","password":"correct-horse-batterz"}`},
		{name: "unknown email", body: `{"email":"nobody@example.com","password":"` + testPassword + `"}`},
		{name: "invalid email", body: `{"email":"not-an-email","password":"` + testPassword + `"}`},
		{name: "malformed body", body: `{"email":`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(engine, "/api/auth/login", tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Invalid credentials") {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
			if strings.Contains(rec.Header().Get("Set-Cookie"), "token=") &&
				!strings.Contains(rec.Header().Get("Set-Cookie"), "Max-Age=0") {
				t.Fatal("failed login must not issue a session cookie")
			}
		})
	}
}

func TestLoginStoreFaultAnswers500(t *testing.T) {
	engine := newTestServer(t, failingStore{})

	rec := postJSON(engine, "/api/auth/login",
		`{"email":"roller@example.com","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "store unavailable") {
		t.Fatal("internal error details must not leak to the client")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	engine := newTestServer(t, nil)

	rec := postJSON(engine, "/api/auth/logout", ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	setCookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected expired cookie, got %q", setCookie)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	engine := newTestServer(t, nil)

	rec := postJSON(engine, "/api/auth/register",
		`{"email":"newguy@example.com","name":"New Guy","password":"a-solid-password"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "token=") {
		t.Fatal("register must log the user in")
	}

	login := postJSON(engine, "/api/auth/login",
		`{"email":"newguy@example.com","password":"a-solid-password"}`)
	if login.Code != http.StatusOK {
		t.Fatalf("login after register: status = %d, want 200", login.Code)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	engine := newTestServer(t, nil)

	rec := postJSON(engine, "/api/auth/register",
		`{"email":"bad-email","name":"X","password":"a-solid-password"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
