// Package gateway wraps every remote model call behind fail-soft semantics:
// the chat surface must always have something to show, so no provider error
// ever escapes upward. Failures are logged and replaced with safe defaults.
package gateway

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/observability"
)

// FallbackChatText is shown when the primary chat call itself fails. It is
// the one failure the user must be told about.
const FallbackChatText = "I apologize, but I am unable to access the response module at the moment. If you are in crisis, please call 988 immediately."

const (
	fallbackRiskRationale = "Automated safety check incomplete due to network latency."
	fallbackArticleHTML   = "<p>The full story could not be loaded right now. Please follow the source link or check back in a few minutes.</p>"
)

// Gateway fronts the model provider ports.
type Gateway struct {
	chat   domain.ChatModel
	risk   domain.RiskAnalyzer
	speech domain.SpeechSynthesizer
	news   domain.NewsProvider

	now func() time.Time

	// Time-boxed headline cache shared across sessions.
	cacheTTL time.Duration
	flight   singleflight.Group
	mu       sync.Mutex
	cached   []domain.NewsItem
	cachedAt time.Time
}

func New(chat domain.ChatModel, risk domain.RiskAnalyzer, speech domain.SpeechSynthesizer, news domain.NewsProvider, cacheTTL time.Duration) *Gateway {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Gateway{
		chat:     chat,
		risk:     risk,
		speech:   speech,
		news:     news,
		now:      time.Now,
		cacheTTL: cacheTTL,
	}
}

// CompleteChat runs the primary chat call. ok is false when the provider
// failed and the reply carries the fixed apologetic text; callers skip the
// auxiliary speech and risk work in that case.
func (g *Gateway) CompleteChat(ctx context.Context, req domain.ChatRequest) (reply domain.ChatReply, ok bool) {
	reply, err := g.chat.Complete(ctx, req)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("chat call failed", "error", err)
		return domain.ChatReply{Text: FallbackChatText}, false
	}
	return reply, true
}

// SafeDefaultAssessment is the substitute attached when analysis fails.
func SafeDefaultAssessment(now time.Time) *domain.RiskAssessment {
	return &domain.RiskAssessment{
		Level:      domain.RiskLow,
		Sentiment:  0,
		Flags:      []string{"System Alert"},
		Rationale:  fallbackRiskRationale,
		AssessedAt: now,
	}
}

// AssessRisk classifies one user message, substituting the safe default on
// any transport or validation failure.
func (g *Gateway) AssessRisk(ctx context.Context, text string) *domain.RiskAssessment {
	assessment, err := g.risk.Analyze(ctx, text)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("risk analysis failed", "error", err)
		return SafeDefaultAssessment(g.now())
	}
	return assessment
}

// SynthesizeSpeech returns the raw PCM buffer, or nil when synthesis failed.
// Speech failures are never surfaced to the user.
func (g *Gateway) SynthesizeSpeech(ctx context.Context, text string, voice domain.VoiceID) []byte {
	buf, err := g.speech.Synthesize(ctx, text, voice)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("speech synthesis failed", "error", err)
		return nil
	}
	return buf
}

// FetchHeadlines serves the news feed through a freshness-windowed cache.
// forceRefresh bypasses the window but still falls back to the last good
// cache on failure rather than returning nothing.
func (g *Gateway) FetchHeadlines(ctx context.Context, forceRefresh bool) []domain.NewsItem {
	g.mu.Lock()
	cached := g.cached
	fresh := cached != nil && g.now().Sub(g.cachedAt) < g.cacheTTL
	g.mu.Unlock()

	if !forceRefresh && fresh {
		return cached
	}

	// The fetch is shared between coalesced callers, so it must not die
	// with whichever caller's request context happens to run the closure.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := g.flight.Do("headlines", func() (any, error) {
		return g.news.Headlines(fetchCtx)
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Error("news fetch failed", "error", err)
		return cached
	}

	items := v.([]domain.NewsItem)
	g.mu.Lock()
	g.cached = items
	g.cachedAt = g.now()
	g.mu.Unlock()
	return items
}

// FetchArticleBody enriches one headline, best effort.
func (g *Gateway) FetchArticleBody(ctx context.Context, title string) *domain.Article {
	article, err := g.news.ArticleBody(ctx, title)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("article fetch failed", "title", title, "error", err)
		return &domain.Article{HTML: fallbackArticleHTML}
	}
	return article
}
