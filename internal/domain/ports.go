package domain

import "context"

// AudioPayload is one recorded utterance, ready for transport.
type AudioPayload struct {
	// Data is the base64-encoded recording.
	Data string `json:"data"`
	// MIMEType describes the encoding, e.g. "audio/webm;codecs=opus".
	MIMEType string `json:"mime_type"`
}

// ChatRequest carries everything one chat-completion call needs.
type ChatRequest struct {
	History     []*ConversationTurn
	InputText   string
	Audio       *AudioPayload
	Location    *Coordinates
	Instruction string // the active persona's behavioral contract, with any suffixes applied
}

// ChatReply is the model's answer plus any grounding citations.
type ChatReply struct {
	Text      string
	Citations []Citation
}

// ChatModel defines how the application talks to the chat-completion model.
type ChatModel interface {
	Complete(ctx context.Context, req ChatRequest) (ChatReply, error)
}

// RiskAnalyzer classifies one plain-text user message for clinical risk.
type RiskAnalyzer interface {
	Analyze(ctx context.Context, text string) (*RiskAssessment, error)
}

// SpeechSynthesizer turns assistant text into raw audio: single-channel
// 16-bit little-endian PCM at 24kHz.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, voice VoiceID) ([]byte, error)
}

// NewsProvider produces the search-grounded news feed.
type NewsProvider interface {
	Headlines(ctx context.Context) ([]NewsItem, error)
	ArticleBody(ctx context.Context, title string) (*Article, error)
}

// JournalAnalyzer generates a reflection for a journal entry.
type JournalAnalyzer interface {
	Reflect(ctx context.Context, entryText string) (reflection string, moods []string, err error)
}

// SleepPlanner generates a structured wind-down ritual.
type SleepPlanner interface {
	PlanSleep(ctx context.Context, in SleepPlanInput) (*SleepPlan, error)
}

// Geolocator performs a one-shot position lookup. Denial of permission is
// reported as ErrPermissionDenied; callers treat any failure as soft.
type Geolocator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// SessionStore defines session persistence. Every implementation is
// in-memory: the product guarantees conversations are never durably stored.
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
}

// CaptureDevice opens microphone-like input. preferred lists MIME types in
// preference order; the device picks the first one it supports.
type CaptureDevice interface {
	Open(ctx context.Context, preferred []string) (CaptureStream, error)
}

// CaptureStream is one open recording. Chunks is closed when the device
// stops producing data; Close releases the device and must be idempotent.
type CaptureStream interface {
	MIMEType() string
	Chunks() <-chan []byte
	Close() error
}

// PlaybackDevice consumes decoded PCM samples. Stop must be safe to call
// when nothing is playing.
type PlaybackDevice interface {
	Start(samples []float64, sampleRate int) error
	Stop() error
}
