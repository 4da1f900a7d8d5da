package bootstrap

import (
	"context"
	"errors"
	"testing"

	platformerrors "matmind-server-go/internal/platform/errors"
)

func TestInitGraphDependenciesAreOrdered(t *testing.T) {
	steps := InitGraph()
	seen := make(map[string]struct{}, len(steps))

	for _, step := range steps {
		if step.ID == "" {
			t.Fatal("step with empty ID")
		}
		if step.Execute == nil {
			t.Fatalf("step %s has no execute function", step.ID)
		}
		for _, dep := range step.DependsOn {
			if _, ok := seen[dep]; !ok {
				t.Fatalf("step %s depends on %s before it is defined", step.ID, dep)
			}
		}
		seen[step.ID] = struct{}{}
	}
}

func TestExecuteInitStepsStopsOnFailure(t *testing.T) {
	var ran []string
	steps := []initStep{
		{
			ID: "first",
			Execute: func(context.Context, *appState) error {
				ran = append(ran, "first")
				return nil
			},
		},
		{
			ID:   "second",
			Kind: platformerrors.KindConfig,
			Execute: func(context.Context, *appState) error {
				return errors.New("boom")
			},
		},
		{
			ID: "third",
			Execute: func(context.Context, *appState) error {
				ran = append(ran, "third")
				return nil
			},
		},
	}

	err := executeInitSteps(context.Background(), steps, &appState{})
	if err == nil {
		t.Fatal("expected failure from second step")
	}
	if !platformerrors.IsKind(err, platformerrors.KindConfig) {
		t.Fatalf("expected step kind on wrapped error, got %v", err)
	}
	if len(ran) != 1 || ran[0] != "first" {
		t.Fatalf("steps after a failure must not run, ran: %v", ran)
	}
}

func TestExecuteInitStepsRejectsUnsatisfiedDependency(t *testing.T) {
	steps := []initStep{
		{
			ID:        "late",
			DependsOn: []string{"missing"},
			Execute:   func(context.Context, *appState) error { return nil },
		},
	}

	if err := executeInitSteps(context.Background(), steps, &appState{}); err == nil {
		t.Fatal("expected unsatisfied dependency error")
	}
}
