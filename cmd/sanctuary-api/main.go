package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	geoip "github.com/mindflow/sanctuary/internal/adapters/geoip"
	httpadapter "github.com/mindflow/sanctuary/internal/adapters/http"
	"github.com/mindflow/sanctuary/internal/adapters/llm"
	"github.com/mindflow/sanctuary/internal/adapters/openaitts"
	memstore "github.com/mindflow/sanctuary/internal/adapters/storage/memory"
	"github.com/mindflow/sanctuary/internal/app/journal"
	"github.com/mindflow/sanctuary/internal/app/session"
	"github.com/mindflow/sanctuary/internal/app/wellness"
	"github.com/mindflow/sanctuary/internal/audio"
	"github.com/mindflow/sanctuary/internal/config"
	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/gateway"
	"github.com/mindflow/sanctuary/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := observability.Logger()

	// Model provider: mock for offline development, Gemini otherwise.
	var (
		chat      domain.ChatModel
		risk      domain.RiskAnalyzer
		speech    domain.SpeechSynthesizer
		news      domain.NewsProvider
		reflector domain.JournalAnalyzer
		sleepGen  domain.SleepPlanner
	)

	if cfg.UseMockModel {
		logger.Info("using mock model provider")
		mock := llm.NewMockProvider()
		chat, risk, speech, news, reflector, sleepGen = mock, mock, mock, mock, mock, mock
	} else {
		gemini, err := llm.NewGeminiProvider(ctx, llm.GeminiConfig{
			APIKey:        cfg.GeminiAPIKey,
			ChatModel:     cfg.ChatModel,
			AnalyzerModel: cfg.AnalyzerModel,
			SpeechModel:   cfg.SpeechModel,
			NewsModel:     cfg.NewsModel,
		})
		if err != nil {
			log.Fatalf("error initializing gemini provider: %v", err)
		}
		chat, risk, speech, news, reflector, sleepGen = gemini, gemini, gemini, gemini, gemini, gemini

		if cfg.Speech == config.SpeechOpenAI {
			logger.Info("using openai speech synthesis", "model", cfg.OpenAIModel)
			speech = openaitts.NewSynthesizer(cfg.OpenAIModel)
		}
	}

	gw := gateway.New(chat, risk, speech, news, cfg.NewsCacheTTL)

	sessionStore := memstore.NewSessionStore()
	journalStore := memstore.NewJournalStore()

	// Synthesized audio is returned to clients, nothing plays server-side.
	player := audio.NewPlayer(&audio.NullOutput{})

	var locator domain.Geolocator
	if cfg.GeolocationURL != "" {
		locator = geoip.NewLocator(cfg.GeolocationURL)
	}

	sessions := session.NewService(gw, sessionStore, locator, player, session.Options{
		PrimaryTimeout:    cfg.PrimaryCallTimeout,
		BackgroundTimeout: cfg.BackgroundCallTimeout,
	})
	journals := journal.NewService(journalStore, reflector, cfg.BackgroundCallTimeout)
	well := wellness.NewService(sleepGen, cfg.BackgroundCallTimeout)

	handler := httpadapter.NewServer(sessions, journals, well, gw)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("sanctuary api listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	// Let in-flight risk and speech tasks land before exit.
	sessions.Wait()
}
