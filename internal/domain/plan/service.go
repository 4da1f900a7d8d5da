package plan

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"matmind-server-go/internal/domain/auth/model"
	"matmind-server-go/internal/domain/eventbus"
	"matmind-server-go/internal/platform/errors"
	"matmind-server-go/internal/platform/storage"
)

// ErrInvalidProfile is returned when the submitted questionnaire is missing
// required answers.
var ErrInvalidProfile = errors.New(errors.KindPlan, "plan.validate", "profile is incomplete")

// Logger is the logging contract the service depends on.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Service orchestrates plan generation: cache lookup, model call with
// fallback, persistence, and event publication.
type Service struct {
	provider Provider
	cache    *Cache
	plans    *storage.PlanRepository
	bus      *eventbus.Bus
	logger   Logger
}

// NewService wires the plan pipeline. cache, plans and bus may be nil; the
// corresponding steps are skipped.
func NewService(provider Provider, cache *Cache, plans *storage.PlanRepository, bus *eventbus.Bus, logger Logger) (*Service, error) {
	if provider == nil {
		return nil, errors.New(errors.KindPlan, "plan.new_service", "provider is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindPlan, "plan.new_service", "logger is required")
	}
	return &Service{
		provider: provider,
		cache:    cache,
		plans:    plans,
		bus:      bus,
		logger:   logger,
	}, nil
}

// Validate checks that the profile carries the answers the prompt needs.
func Validate(profile Profile) error {
	p := profile.Sanitized()
	if p.BeltRank == "" || p.PrimaryGoal == "" || p.Timeframe == "" {
		return ErrInvalidProfile
	}
	return nil
}

// Generate produces a training plan for the user. Cache hits short-circuit
// the provider; provider failures degrade to the built-in fallback plan
// rather than failing the request.
func (s *Service) Generate(ctx context.Context, identity model.UserIdentity, profile Profile) (*Result, error) {
	if err := Validate(profile); err != nil {
		return nil, err
	}
	profile = profile.Sanitized()

	if cached := s.lookupCache(ctx, identity.ID, profile); cached != nil {
		s.logger.Debug("plan cache hit for user %s", identity.ID)
		s.publish(identity.ID, s.provider.Model(), false, true)
		return &Result{Plan: cached, Model: s.provider.Model(), Cached: true}, nil
	}

	result := &Result{Model: s.provider.Model()}
	generated, err := s.provider.GeneratePlan(ctx, profile)
	if err != nil {
		s.logger.Warn("plan provider failed, serving fallback: %v", err)
		if s.bus != nil {
			s.bus.PublishAsync(eventbus.EventSystemError, eventbus.SystemEventData{
				Component: "plan.provider",
				Message:   err.Error(),
			})
		}
		generated = FallbackPlan(profile)
		result.Fallback = true
		result.Model = "fallback"
	}
	result.Plan = generated
	s.logger.Info("generated plan for user %s (model=%s): %s",
		identity.ID, result.Model, SummaryPreview(generated.Summary))

	if !result.Fallback {
		s.storeCache(ctx, identity.ID, profile, generated)
	}
	s.persist(ctx, identity.ID, profile, result)
	s.publish(identity.ID, result.Model, result.Fallback, false)

	return result, nil
}

// Latest restores the most recently generated plan for the user, or nil
// when none has been generated yet.
func (s *Service) Latest(ctx context.Context, userID string) (*Result, error) {
	if s.plans == nil {
		return nil, nil
	}

	record, err := s.plans.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	var restored TrainingPlan
	if err := sonic.Unmarshal(record.Plan, &restored); err != nil {
		return nil, errors.Wrap(errors.KindPlan, "plan.latest", "stored plan is corrupt", err)
	}
	return &Result{Plan: &restored, Model: record.Model, Fallback: record.Fallback}, nil
}

func (s *Service) lookupCache(ctx context.Context, userID string, profile Profile) *TrainingPlan {
	if s.cache == nil {
		return nil
	}
	key, err := s.cache.Key(userID, profile)
	if err != nil {
		s.logger.Warn("plan cache key derivation failed: %v", err)
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("plan cache read failed: %v", err)
		return nil
	}
	return cached
}

func (s *Service) storeCache(ctx context.Context, userID string, profile Profile, generated *TrainingPlan) {
	if s.cache == nil {
		return
	}
	key, err := s.cache.Key(userID, profile)
	if err != nil {
		s.logger.Warn("plan cache key derivation failed: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, generated); err != nil {
		s.logger.Warn("plan cache write failed: %v", err)
	}
}

func (s *Service) persist(ctx context.Context, userID string, profile Profile, result *Result) {
	if s.plans == nil {
		return
	}

	profileJSON, err := sonic.Marshal(profile)
	if err != nil {
		s.logger.Error("failed to encode profile for persistence: %v", err)
		return
	}
	planJSON, err := sonic.Marshal(result.Plan)
	if err != nil {
		s.logger.Error("failed to encode plan for persistence: %v", err)
		return
	}

	record := &storage.PlanRecord{
		UserID:   userID,
		Profile:  datatypes.JSON(profileJSON),
		Plan:     datatypes.JSON(planJSON),
		Model:    result.Model,
		Fallback: result.Fallback,
	}
	if err := s.plans.Save(ctx, record); err != nil {
		// Persistence is best effort; the generated plan is still returned.
		s.logger.Error("failed to persist plan record: %v", err)
	}
}

func (s *Service) publish(userID, modelName string, fallback, cached bool) {
	if s.bus == nil {
		return
	}
	s.bus.PublishAsync(eventbus.EventPlanGenerated, eventbus.PlanEventData{
		UserID:   userID,
		Model:    modelName,
		Fallback: fallback,
		Cached:   cached,
	})
}

// SummaryPreview trims a plan summary for log lines.
func SummaryPreview(summary string) string {
	const max = 80
	summary = strings.TrimSpace(summary)
	if len(summary) <= max {
		return summary
	}
	return summary[:max] + "..."
}
