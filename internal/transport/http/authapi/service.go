// Package authapi exposes the login, logout and registration endpoints.
package authapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matmind-server-go/internal/domain/auth"
	"matmind-server-go/internal/domain/eventbus"
	"matmind-server-go/internal/platform/config"
	"matmind-server-go/internal/platform/errors"
	"matmind-server-go/internal/platform/logging"
	httptransport "matmind-server-go/internal/transport/http"
)

// Service is the HTTP transport for the auth domain.
type Service struct {
	verifier *auth.Verifier
	tokens   *auth.TokenService
	cookies  config.AuthConfig
	bus      *eventbus.Bus
	logger   *logging.Logger
}

// NewService wires the auth endpoints.
func NewService(
	verifier *auth.Verifier,
	tokens *auth.TokenService,
	cookies config.AuthConfig,
	bus *eventbus.Bus,
	logger *logging.Logger,
) (*Service, error) {
	if verifier == nil {
		return nil, errors.New(errors.KindConfig, "authapi.new", "verifier is required")
	}
	if tokens == nil {
		return nil, errors.New(errors.KindConfig, "authapi.new", "token service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "authapi.new", "logger is required")
	}

	return &Service{
		verifier: verifier,
		tokens:   tokens,
		cookies:  cookies,
		bus:      bus,
		logger:   logger,
	}, nil
}

// Register mounts the auth routes on the public API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/auth/login", s.handleLogin)
	router.POST("/auth/logout", s.handleLogout)
	router.POST("/auth/register", s.handleRegister)

	s.logger.InfoTag("HTTP", "auth routes registered")
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and issues the session cookie. Every
// credential problem, including a malformed body, answers the same 401.
func (s *Service) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	identity, err := s.verifier.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			httptransport.RespondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		s.logger.Error("login failed on store fault: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.logger.Error("token issuance failed: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	httptransport.SetSessionCookie(c, s.cookies, token)
	s.publishAuthEvent(eventbus.EventAuthLogin, identity, c.ClientIP())

	httptransport.RespondSuccess(c, http.StatusOK, gin.H{"user": identity}, "User logged in")
}

// handleLogout clears the session cookie. The response is the same whether
// or not a valid session was presented.
func (s *Service) handleLogout(c *gin.Context) {
	if cookie, err := c.Cookie(s.cookies.CookieName); err == nil && cookie != "" {
		if identity, err := s.tokens.Verify(cookie); err == nil {
			s.publishAuthEvent(eventbus.EventAuthLogout, identity, c.ClientIP())
		}
	}

	httptransport.ClearSessionCookie(c, s.cookies)
	httptransport.RespondSuccess(c, http.StatusOK, nil, "User logged out")
}

// handleRegister creates an account and logs the new user straight in.
func (s *Service) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid registration details", nil)
		return
	}

	identity, err := s.verifier.Register(
		c.Request.Context(), uuid.NewString(), req.Email, req.Name, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			httptransport.RespondError(c, http.StatusBadRequest, "Invalid registration details", nil)
			return
		}
		// Duplicate emails and store faults both land here; the response
		// stays generic so the endpoint cannot be used to probe accounts.
		s.logger.Error("registration failed: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.logger.Error("token issuance failed: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}

	httptransport.SetSessionCookie(c, s.cookies, token)
	s.publishAuthEvent(eventbus.EventAuthLogin, identity, c.ClientIP())

	httptransport.RespondSuccess(c, http.StatusCreated, gin.H{"user": identity}, "User registered")
}

func (s *Service) publishAuthEvent(topic string, identity auth.UserIdentity, ip string) {
	if s.bus == nil {
		return
	}
	s.bus.PublishAsync(topic, eventbus.AuthEventData{
		UserID: identity.ID,
		Email:  identity.Email,
		IP:     ip,
	})
}
