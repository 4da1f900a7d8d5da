// Package planapi exposes the training-plan endpoints. All routes require
// an authenticated session.
package planapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"matmind-server-go/internal/domain/plan"
	"matmind-server-go/internal/platform/errors"
	"matmind-server-go/internal/platform/logging"
	httptransport "matmind-server-go/internal/transport/http"
)

// Service is the HTTP transport for the plan domain.
type Service struct {
	plans  *plan.Service
	logger *logging.Logger
}

// NewService wires the plan endpoints.
func NewService(plans *plan.Service, logger *logging.Logger) (*Service, error) {
	if plans == nil {
		return nil, errors.New(errors.KindConfig, "planapi.new", "plan service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "planapi.new", "logger is required")
	}
	return &Service{plans: plans, logger: logger}, nil
}

// Register mounts the plan routes on the secured API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/plan/generate", s.handleGenerate)
	router.GET("/plan/latest", s.handleLatest)

	s.logger.InfoTag("HTTP", "plan routes registered")
	return nil
}

func (s *Service) handleGenerate(c *gin.Context) {
	identity, ok := httptransport.IdentityFrom(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var profile plan.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid profile", nil)
		return
	}

	result, err := s.plans.Generate(c.Request.Context(), identity, profile)
	if err != nil {
		if err == plan.ErrInvalidProfile {
			httptransport.RespondError(c, http.StatusBadRequest, "Invalid profile", nil)
			return
		}
		s.logger.Error("plan generation failed: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Failed to generate training plan", nil)
		return
	}

	httptransport.RespondSuccess(c, http.StatusOK, result, "Plan generated")
}

func (s *Service) handleLatest(c *gin.Context) {
	identity, ok := httptransport.IdentityFrom(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	result, err := s.plans.Latest(c.Request.Context(), identity.ID)
	if err != nil {
		s.logger.Error("plan lookup failed: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Failed to load training plan", nil)
		return
	}
	if result == nil {
		httptransport.RespondError(c, http.StatusNotFound, "No plan generated yet", nil)
		return
	}

	httptransport.RespondSuccess(c, http.StatusOK, result, "")
}
