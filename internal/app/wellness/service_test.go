package wellness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
)

type plannerFunc func(ctx context.Context, in domain.SleepPlanInput) (*domain.SleepPlan, error)

func (f plannerFunc) PlanSleep(ctx context.Context, in domain.SleepPlanInput) (*domain.SleepPlan, error) {
	return f(ctx, in)
}

func TestPlanSleepDelegates(t *testing.T) {
	planner := plannerFunc(func(_ context.Context, in domain.SleepPlanInput) (*domain.SleepPlan, error) {
		return &domain.SleepPlan{Summary: "custom", Steps: []domain.SleepPlanStep{{Title: "step"}}}, nil
	})
	svc := NewService(planner, time.Second)

	plan, err := svc.PlanSleep(context.Background(), domain.SleepPlanInput{StressLevel: 5, Bedtime: "23:00"})
	if err != nil {
		t.Fatalf("PlanSleep: %v", err)
	}
	if plan.Summary != "custom" {
		t.Errorf("summary = %q", plan.Summary)
	}
}

func TestPlanSleepFallsBackWhenModelFails(t *testing.T) {
	planner := plannerFunc(func(context.Context, domain.SleepPlanInput) (*domain.SleepPlan, error) {
		return nil, errors.New("unavailable")
	})
	svc := NewService(planner, time.Second)

	plan, err := svc.PlanSleep(context.Background(), domain.SleepPlanInput{StressLevel: 8, Bedtime: "22:30"})
	if err != nil {
		t.Fatalf("PlanSleep: %v", err)
	}
	if plan == nil || len(plan.Steps) == 0 {
		t.Fatal("expected the generic plan on failure")
	}
}

func TestPlanSleepValidatesStressLevel(t *testing.T) {
	svc := NewService(plannerFunc(func(context.Context, domain.SleepPlanInput) (*domain.SleepPlan, error) {
		return &domain.SleepPlan{}, nil
	}), time.Second)

	for _, level := range []int{0, -1, 11} {
		if _, err := svc.PlanSleep(context.Background(), domain.SleepPlanInput{StressLevel: level}); err == nil {
			t.Errorf("stress level %d accepted", level)
		}
	}
}
