package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type SpeechProvider string

const (
	SpeechGemini SpeechProvider = "gemini"
	SpeechOpenAI SpeechProvider = "openai"
)

type Config struct {
	Port string

	// Model backends
	GeminiAPIKey  string
	ChatModel     string
	AnalyzerModel string
	SpeechModel   string
	NewsModel     string
	UseMockModel  bool // true = run fully offline with the canned provider

	// Speech synthesis provider selection
	Speech      SpeechProvider
	OpenAIModel string

	// Geolocation lookup endpoint; empty disables location resolution.
	GeolocationURL string

	// Remote-call budgets. The primary chat call gets the larger one.
	PrimaryCallTimeout    time.Duration
	BackgroundCallTimeout time.Duration

	// News cache freshness window.
	NewsCacheTTL time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", getEnv("SANCTUARY_PORT", "8080")),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		ChatModel:     getEnv("SANCTUARY_CHAT_MODEL", "gemini-2.5-flash"),
		AnalyzerModel: getEnv("SANCTUARY_ANALYZER_MODEL", "gemini-2.5-flash"),
		SpeechModel:   getEnv("SANCTUARY_SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
		NewsModel:     getEnv("SANCTUARY_NEWS_MODEL", "gemini-2.5-flash"),
		UseMockModel:  getBoolEnv("SANCTUARY_USE_MOCK_MODEL", false),

		OpenAIModel: getEnv("SANCTUARY_OPENAI_SPEECH_MODEL", "tts-1"),

		GeolocationURL: getEnv("SANCTUARY_GEOLOCATION_URL", ""),

		PrimaryCallTimeout:    getDurationEnv("SANCTUARY_PRIMARY_TIMEOUT", 30*time.Second),
		BackgroundCallTimeout: getDurationEnv("SANCTUARY_BACKGROUND_TIMEOUT", 20*time.Second),

		NewsCacheTTL: getDurationEnv("SANCTUARY_NEWS_CACHE_TTL", 5*time.Minute),
	}

	switch getEnv("SANCTUARY_SPEECH_PROVIDER", "gemini") {
	case "openai":
		cfg.Speech = SpeechOpenAI
	default:
		cfg.Speech = SpeechGemini
	}

	if !cfg.UseMockModel && cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY must be set unless SANCTUARY_USE_MOCK_MODEL is enabled")
	}

	return cfg
}
