// Package wellness produces the personalized wind-down plan from a short
// sleep intake.
package wellness

import (
	"context"
	"fmt"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/observability"
)

type Service struct {
	planner domain.SleepPlanner
	timeout time.Duration
}

func NewService(planner domain.SleepPlanner, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Service{planner: planner, timeout: timeout}
}

// PlanSleep asks the model for a wind-down plan tailored to the intake.
// When the model is unreachable a generic plan is returned instead, so
// the user never leaves the intake empty-handed.
func (s *Service) PlanSleep(ctx context.Context, in domain.SleepPlanInput) (*domain.SleepPlan, error) {
	if in.StressLevel < 1 || in.StressLevel > 10 {
		return nil, fmt.Errorf("wellness: stress level must be between 1 and 10, got %d", in.StressLevel)
	}

	planCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	plan, err := s.planner.PlanSleep(planCtx, in)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("sleep planner unavailable, serving generic plan", "error", err)
		return genericPlan(in), nil
	}
	return plan, nil
}

func genericPlan(in domain.SleepPlanInput) *domain.SleepPlan {
	return &domain.SleepPlan{
		Summary: fmt.Sprintf("A gentle wind-down routine leading up to your %s bedtime.", in.Bedtime),
		Steps: []domain.SleepPlanStep{
			{Offset: "90 minutes before", Title: "Dim the lights", Description: "Lower the lights in your space to cue your body that the day is ending."},
			{Offset: "60 minutes before", Title: "Put screens away", Description: "Switch off phones and laptops. If that feels hard, move them to another room."},
			{Offset: "30 minutes before", Title: "Slow breathing", Description: "Sit comfortably and take ten slow breaths, exhaling longer than you inhale."},
			{Offset: "At bedtime", Title: "Settle in", Description: "Get into bed even if you do not feel sleepy yet. Resting with your eyes closed still counts."},
		},
	}
}
