package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
)

// MockProvider is a fully offline stand-in for every model port. It keeps
// local development and the CLI usable without credentials, and gives tests
// deterministic outputs.
type MockProvider struct {
	now func() time.Time
}

func NewMockProvider() *MockProvider {
	return &MockProvider{now: time.Now}
}

func (m *MockProvider) Complete(_ context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	input := req.InputText
	if input == "" && req.Audio != nil {
		input = "(voice message)"
	}
	return domain.ChatReply{
		Text: fmt.Sprintf("I hear you. You said %q. Can you tell me a bit more about how that feels for you right now?", input),
	}, nil
}

func (m *MockProvider) Analyze(_ context.Context, text string) (*domain.RiskAssessment, error) {
	lower := strings.ToLower(text)
	level := domain.RiskLow
	sentiment := 0.0
	var flags []string
	switch {
	case strings.Contains(lower, "suicide") || strings.Contains(lower, "end it"):
		level = domain.RiskCritical
		sentiment = -9
		flags = []string{"Suicidal Ideation"}
	case strings.Contains(lower, "hopeless") || strings.Contains(lower, "hurt myself"):
		level = domain.RiskHigh
		sentiment = -7
		flags = []string{"Self-Harm Risk"}
	case strings.Contains(lower, "anxious") || strings.Contains(lower, "lonely"):
		level = domain.RiskMedium
		sentiment = -4
		flags = []string{"Anxiety"}
	}
	return &domain.RiskAssessment{
		Level:      level,
		Sentiment:  sentiment,
		Flags:      flags,
		Rationale:  "Keyword-based offline assessment.",
		AssessedAt: m.now(),
	}, nil
}

func (m *MockProvider) Synthesize(_ context.Context, text string, _ domain.VoiceID) ([]byte, error) {
	// One 16-bit sample per character keeps durations proportional to the
	// text so playback timing remains testable offline.
	buf := make([]byte, 2*len(text))
	for i := range text {
		buf[2*i] = byte(i)
		buf[2*i+1] = byte(i >> 8)
	}
	return buf, nil
}

func (m *MockProvider) Headlines(_ context.Context) ([]domain.NewsItem, error) {
	return []domain.NewsItem{
		{
			ID:       "mock-1",
			Title:    "The Global Crisis of Connection",
			Summary:  "New studies indicate that loneliness is now a critical global health threat, with impacts comparable to smoking 15 cigarettes a day.",
			Source:   "World Health Organization / Global Health",
			Date:     "Oct 2023",
			Category: domain.NewsResearch,
			ReadTime: "5 min read",
		},
		{
			ID:       "mock-2",
			Title:    "Sleep Hygiene as First-Line Defense",
			Summary:  "Before medication, doctors are increasingly prescribing rigorous sleep protocols. Evidence suggests fixing circadian rhythms can reduce depressive symptoms by up to 40%.",
			Source:   "Sleep Foundation",
			Date:     "Nov 2023",
			Category: domain.NewsWellness,
			ReadTime: "7 min read",
		},
	}, nil
}

func (m *MockProvider) ArticleBody(_ context.Context, title string) (*domain.Article, error) {
	return &domain.Article{
		HTML: fmt.Sprintf("<p>This is an offline placeholder body for %q.</p>", title),
	}, nil
}

func (m *MockProvider) Reflect(_ context.Context, entryText string) (string, []string, error) {
	return fmt.Sprintf("Thank you for writing this down. What you shared, %q, sounds important. What would you want to tell yourself about it tomorrow?",
		firstWords(entryText, 12)), []string{"reflective"}, nil
}

func (m *MockProvider) PlanSleep(_ context.Context, in domain.SleepPlanInput) (*domain.SleepPlan, error) {
	return &domain.SleepPlan{
		Summary: fmt.Sprintf("A simple wind-down for a stress level of %d, aiming for a %s bedtime.", in.StressLevel, in.Bedtime),
		Steps: []domain.SleepPlanStep{
			{Offset: "90 minutes before bed", Title: "Last caffeine check", Description: "Switch to water or herbal tea."},
			{Offset: "60 minutes before bed", Title: "Screens down", Description: "Put devices out of reach and dim the lights."},
			{Offset: "At bedtime", Title: "Box breathing", Description: "Four rounds of 4-4-4-4 breathing in bed."},
		},
	}, nil
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
		return strings.Join(fields, " ") + "…"
	}
	return strings.Join(fields, " ")
}
