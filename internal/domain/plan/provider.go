package plan

import "context"

// Provider generates a structured training plan for a sanitized profile.
// Implementations live under provider-specific subpackages.
type Provider interface {
	GeneratePlan(ctx context.Context, profile Profile) (*TrainingPlan, error)
	Model() string
}
