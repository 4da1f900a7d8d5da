// Package bootstrap wires configuration, storage, domain services and the
// HTTP transport into a running server with graceful shutdown.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	domainauth "matmind-server-go/internal/domain/auth"
	authstore "matmind-server-go/internal/domain/auth/store"
	"matmind-server-go/internal/domain/eventbus"
	domainplan "matmind-server-go/internal/domain/plan"
	planopenai "matmind-server-go/internal/domain/plan/openai"
	platformconfig "matmind-server-go/internal/platform/config"
	platformerrors "matmind-server-go/internal/platform/errors"
	platformlogging "matmind-server-go/internal/platform/logging"
	platformstorage "matmind-server-go/internal/platform/storage"
	httptransport "matmind-server-go/internal/transport/http"
	httpauthapi "matmind-server-go/internal/transport/http/authapi"
	httpplanapi "matmind-server-go/internal/transport/http/planapi"
	httpsystemapi "matmind-server-go/internal/transport/http/systemapi"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config      *platformconfig.Config
	logger      *platformlogging.Logger
	db          *gorm.DB
	users       authstore.Store
	planRepo    *platformstorage.PlanRepository
	verifier    *domainauth.Verifier
	tokens      *domainauth.TokenService
	guard       *domainauth.Guard
	bus         *eventbus.Bus
	redisClient *redis.Client
	planService *domainplan.Service
}

// Run starts the whole service lifecycle: loading configuration,
// initialising dependencies and shutting down gracefully on SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	state := &appState{}

	if err := executeInitSteps(ctx, InitGraph(), state); err != nil {
		return err
	}

	config := state.config
	logger := state.logger
	if config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}

	defer logger.Close()
	defer func() {
		if state.users != nil {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := state.users.Close(closeCtx); err != nil {
				logger.ErrorTag("auth", "user store did not close cleanly: %v", err)
			}
		}
	}()
	defer func() {
		if state.redisClient != nil {
			if err := state.redisClient.Close(); err != nil {
				logger.WarnTag("redis", "client did not close cleanly: %v", err)
			}
		}
	}()
	defer func() {
		if state.bus != nil {
			state.bus.Stop()
		}
	}()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return err
	}

	logger.InfoTag("bootstrap", "server started")

	return waitForShutdown(signalCtx, cancel, logger, group)
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"execute init steps",
			"nil bootstrap state",
		)
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(
				platformerrors.KindBootstrap,
				step.ID,
				"missing execute function",
			)
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

// InitGraph lists the initialisation steps in dependency order.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "storage:init-database",
			Title:     "Initialise database",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   initDatabaseStep,
		},
		{
			ID:        "eventbus:start",
			Title:     "Start event bus",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   startEventBusStep,
		},
		{
			ID:        "auth:init-domain",
			Title:     "Initialise auth domain",
			DependsOn: []string{"storage:init-database"},
			Kind:      platformerrors.KindAuth,
			Execute:   initAuthStep,
		},
		{
			ID:        "redis:init-client",
			Title:     "Initialise Redis client",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initRedisStep,
		},
		{
			ID:        "plan:init-service",
			Title:     "Initialise plan service",
			DependsOn: []string{"auth:init-domain", "redis:init-client", "eventbus:start"},
			Kind:      platformerrors.KindPlan,
			Execute:   initPlanServiceStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	config, err := platformconfig.NewLoader().Load()
	if err != nil {
		return err
	}
	state.config = config
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(
			platformerrors.KindBootstrap, "logging:init-provider",
			"failed to initialize logging provider", err)
	}

	state.logger = logger
	logger.InfoTag("bootstrap", "logging ready [%s]", state.config.Log.Level)
	return nil
}

func initDatabaseStep(_ context.Context, state *appState) error {
	dsn := state.config.Database.DSN
	if dsn == "" {
		state.logger.WarnTag("storage", "no DSN configured, user accounts are kept in memory")
		return nil
	}

	db, err := platformstorage.Open(dsn)
	if err != nil {
		return err
	}
	state.db = db
	state.planRepo = platformstorage.NewPlanRepository(db)
	state.logger.InfoTag("storage", "database ready at %s", dsn)
	return nil
}

func startEventBusStep(_ context.Context, state *appState) error {
	bus := eventbus.New(4)
	bus.Start()
	state.bus = bus

	if _, err := eventbus.NewAuditSubscriber(bus, state.logger); err != nil {
		return platformerrors.Wrap(
			platformerrors.KindBootstrap, "eventbus:start",
			"failed to attach audit subscriber", err)
	}
	return nil
}

func initAuthStep(_ context.Context, state *appState) error {
	driver := "memory"
	if state.db != nil {
		driver = "sqlite"
	}
	users, err := authstore.New(authstore.Config{Driver: driver}, state.db)
	if err != nil {
		return platformerrors.Wrap(
			platformerrors.KindAuth, "auth:init-domain",
			"failed to create user store", err)
	}
	state.users = users

	verifier, err := domainauth.NewVerifier(users, state.logger)
	if err != nil {
		return platformerrors.Wrap(
			platformerrors.KindAuth, "auth:init-domain",
			"failed to create credential verifier", err)
	}
	state.verifier = verifier

	tokens, err := domainauth.NewTokenService(
		state.config.Auth.Secret, state.config.Auth.SessionTTL.Std())
	if err != nil {
		return platformerrors.Wrap(
			platformerrors.KindAuth, "auth:init-domain",
			"failed to create token service", err)
	}
	state.tokens = tokens
	state.guard = domainauth.NewGuard(tokens)

	state.logger.InfoTag("auth", "auth domain ready (store=%s, session ttl=%s)",
		driver, state.config.Auth.SessionTTL.Std())
	return nil
}

func initRedisStep(ctx context.Context, state *appState) error {
	if !state.config.Redis.Enabled {
		state.logger.InfoTag("redis", "disabled, plan caching is off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     state.config.Redis.Addr,
		Username: state.config.Redis.Username,
		Password: state.config.Redis.Password,
		DB:       state.config.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// The cache is an optimisation; a dead Redis must not block startup.
		state.logger.WarnTag("redis", "unreachable at %s, plan caching is off: %v",
			state.config.Redis.Addr, err)
		_ = client.Close()
		return nil
	}

	state.redisClient = client
	state.logger.InfoTag("redis", "connected to %s", state.config.Redis.Addr)
	return nil
}

// fallbackOnlyProvider stands in when no LLM credentials are configured;
// every generation then serves the built-in plan.
type fallbackOnlyProvider struct{}

func (fallbackOnlyProvider) GeneratePlan(context.Context, domainplan.Profile) (*domainplan.TrainingPlan, error) {
	return nil, platformerrors.New(platformerrors.KindPlan, "plan.provider", "no model configured")
}

func (fallbackOnlyProvider) Model() string { return "fallback" }

func initPlanServiceStep(_ context.Context, state *appState) error {
	var provider domainplan.Provider
	if state.config.LLM.APIKey != "" {
		p, err := planopenai.New(planopenai.Config{
			APIKey:      state.config.LLM.APIKey,
			BaseURL:     state.config.LLM.BaseURL,
			Model:       state.config.LLM.Model,
			MaxTokens:   state.config.LLM.MaxTokens,
			Temperature: state.config.LLM.Temperature,
			Timeout:     state.config.LLM.Timeout.Std(),
		})
		if err != nil {
			return err
		}
		provider = p
		state.logger.InfoTag("plan", "model provider ready (model=%s)", state.config.LLM.Model)
	} else {
		provider = fallbackOnlyProvider{}
		state.logger.WarnTag("plan", "no LLM API key configured, serving built-in plans")
	}

	var cache *domainplan.Cache
	if state.redisClient != nil {
		cache = domainplan.NewCache(
			state.redisClient, state.config.Redis.Prefix, state.config.Redis.PlanTTL.Std())
	}

	service, err := domainplan.NewService(provider, cache, state.planRepo, state.bus, state.logger)
	if err != nil {
		return err
	}
	state.planService = service
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) (*http.Server, error) {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config:         config,
		Logger:         logger,
		PageGuard:      httptransport.PageGuard(state.guard, config.Auth),
		AuthMiddleware: httptransport.RequireAuth(state.tokens, config.Auth),
	})
	if err != nil {
		return nil, err
	}
	router := httpRouter.Engine

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, httptransport.APIResponse{
				Success: false,
				Data:    gin.H{},
				Message: "api not found",
				Code:    http.StatusNotFound,
			})
			return
		}

		// Client-side routing: unknown pages fall through to the SPA shell.
		c.File(config.Web.StaticDir + "/index.html")
	})

	authService, err := httpauthapi.NewService(
		state.verifier, state.tokens, config.Auth, state.bus, logger)
	if err != nil {
		return nil, err
	}
	planService, err := httpplanapi.NewService(state.planService, logger)
	if err != nil {
		return nil, err
	}
	systemService, err := httpsystemapi.NewService(state.users, state.planRepo, logger)
	if err != nil {
		return nil, err
	}

	if err := authService.Register(groupCtx, httpRouter.API); err != nil {
		return nil, err
	}
	if err := planService.Register(groupCtx, httpRouter.Secured); err != nil {
		return nil, err
	}
	if err := systemService.Register(groupCtx, httpRouter.Secured); err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Server.IP, config.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://%s", httpServer.Addr)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "server shut down gracefully")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "server failed: %v", err)
			return err
		}
		return nil
	})

	return httpServer, nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("bootstrap", "shutdown signal received, cleaning up")

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("bootstrap", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("bootstrap", "all services stopped")
	case <-time.After(15 * time.Second):
		logger.ErrorTag("bootstrap", "shutdown timed out, forcing exit")
		return errors.New("shutdown timed out")
	}
	return nil
}
