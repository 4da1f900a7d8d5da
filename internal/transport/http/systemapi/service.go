// Package systemapi exposes a status endpoint with host metrics and
// basic product counters.
package systemapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"matmind-server-go/internal/domain/auth/store"
	"matmind-server-go/internal/platform/errors"
	"matmind-server-go/internal/platform/logging"
	"matmind-server-go/internal/platform/storage"
	httptransport "matmind-server-go/internal/transport/http"
)

// Service reports server health for the admin status page.
type Service struct {
	users   store.Store
	plans   *storage.PlanRepository
	logger  *logging.Logger
	started time.Time
}

// NewService wires the status endpoint. plans may be nil when persistence
// is disabled.
func NewService(users store.Store, plans *storage.PlanRepository, logger *logging.Logger) (*Service, error) {
	if users == nil {
		return nil, errors.New(errors.KindConfig, "systemapi.new", "user store is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "systemapi.new", "logger is required")
	}
	return &Service{
		users:   users,
		plans:   plans,
		logger:  logger,
		started: time.Now(),
	}, nil
}

// Register mounts the status route on the secured API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/system/status", s.handleStatus)

	s.logger.InfoTag("HTTP", "system routes registered")
	return nil
}

type statusResponse struct {
	UptimeSeconds  int64   `json:"uptime_seconds"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemUsedPercent float64 `json:"mem_used_percent"`
	HostUptime     uint64  `json:"host_uptime_seconds"`
	Users          int64   `json:"users"`
	Plans          int64   `json:"plans"`
}

func (s *Service) handleStatus(c *gin.Context) {
	ctx := c.Request.Context()
	resp := statusResponse{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		resp.MemUsedPercent = vm.UsedPercent
	}
	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		resp.HostUptime = uptime
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		s.logger.Error("user count failed: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "Failed to read status", nil)
		return
	}
	resp.Users = users

	if s.plans != nil {
		plans, err := s.plans.Count(ctx)
		if err != nil {
			s.logger.Error("plan count failed: %v", err)
			httptransport.RespondError(c, http.StatusInternalServerError, "Failed to read status", nil)
			return
		}
		resp.Plans = plans
	}

	httptransport.RespondSuccess(c, http.StatusOK, resp, "")
}
