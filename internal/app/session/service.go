// Package session drives one user submission through its full round-trip:
// optimistic user turn, location resolution, the primary chat call, and the
// background risk-analysis and speech-synthesis tasks, while keeping the
// turn list consistent under partial failure.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindflow/sanctuary/internal/audio"
	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/gateway"
	"github.com/mindflow/sanctuary/internal/observability"
)

const welcomeText = "Welcome to MindFlow Sanctuary. I am your AI support companion. I'm here to provide a confidential, non-judgmental space for you to process your thoughts and feelings. \n\nWhile I work alongside clinical protocols, I am an AI, not a human. How are you feeling right now?"

// voicePlaceholderText stands in for a voice-only user turn. The remote
// chat model receives the raw audio; the user's own turn is never
// back-filled with a transcript.
const voicePlaceholderText = "🎤 Voice message"

// voiceConstraintSuffix keeps replies short when they will be spoken.
const voiceConstraintSuffix = "\n\nIMPORTANT: The user is listening to your replies as synthesized speech. Keep responses to 2-4 short sentences, conversational, with no markdown, lists, or headings."

// implicitCheckRationale is attached to voice-only turns, which are never
// sent to the analyzer because there is no text to analyze.
const implicitCheckRationale = "Implicit safety check: voice submission reviewed in conversation, no text available for analysis."

// Service is the conversation orchestrator.
type Service struct {
	gw      *gateway.Gateway
	store   domain.SessionStore
	locator domain.Geolocator
	player  *audio.Player

	locationIntent LocationIntent

	primaryTimeout    time.Duration
	backgroundTimeout time.Duration

	now func() time.Time

	mu    sync.Mutex
	locks map[domain.SessionID]*sessionLock

	// background tracks the risk/speech tasks spawned by submissions so
	// shutdown (and tests) can wait for them.
	background sync.WaitGroup
}

// sessionLock serializes all mutation of one session's turn list and holds
// the session's active playback handle. epoch counts supersession points
// (new submission, persona switch, explicit stop); a speech task stamped
// with an older epoch discards its result instead of playing it.
type sessionLock struct {
	mu         sync.Mutex
	submitting bool
	playback   *audio.Playback
	epoch      uint64
}

type Options struct {
	// LocationKeywords overrides the default location-intent trigger set.
	LocationKeywords []string
	// PrimaryTimeout bounds the chat call; BackgroundTimeout bounds the
	// risk and speech calls. Zero values get sane defaults.
	PrimaryTimeout    time.Duration
	BackgroundTimeout time.Duration
}

func NewService(gw *gateway.Gateway, store domain.SessionStore, locator domain.Geolocator, player *audio.Player, opts Options) *Service {
	if opts.PrimaryTimeout <= 0 {
		opts.PrimaryTimeout = 30 * time.Second
	}
	if opts.BackgroundTimeout <= 0 {
		opts.BackgroundTimeout = 20 * time.Second
	}
	return &Service{
		gw:                gw,
		store:             store,
		locator:           locator,
		player:            player,
		locationIntent:    NewLocationIntent(opts.LocationKeywords),
		primaryTimeout:    opts.PrimaryTimeout,
		backgroundTimeout: opts.BackgroundTimeout,
		now:               time.Now,
		locks:             make(map[domain.SessionID]*sessionLock),
	}
}

func (s *Service) lockFor(id domain.SessionID) *sessionLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	return l
}

// newTurnID is unique, opaque and monotonically orderable.
func (s *Service) newTurnID(now time.Time) domain.TurnID {
	return domain.TurnID(now.UTC().Format("20060102150405.000000000") + "-" + uuid.NewString()[:8])
}

type StartSessionInput struct {
	PersonaID domain.PersonaID
	Voice     domain.VoiceID
}

// StartSession creates a session with the active persona and a welcome
// turn from the assistant.
func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*domain.Session, error) {
	persona := domain.DefaultPersona()
	if in.PersonaID != "" {
		p, ok := domain.PersonaByID(in.PersonaID)
		if !ok {
			return nil, fmt.Errorf("session: unknown persona %q", in.PersonaID)
		}
		persona = p
	}

	voice := domain.DefaultVoice
	if in.Voice != "" {
		if !domain.ValidVoice(in.Voice) {
			return nil, fmt.Errorf("session: unknown voice %q", in.Voice)
		}
		voice = in.Voice
	}

	now := s.now()
	sess := &domain.Session{
		ID:        domain.SessionID(uuid.NewString()),
		CreatedAt: now,
		UpdatedAt: now,
		Context: domain.SessionContext{
			Persona:       persona,
			SelectedVoice: voice,
		},
		Turns: []*domain.ConversationTurn{
			{
				ID:        s.newTurnID(now),
				Role:      domain.RoleAssistant,
				Text:      welcomeText,
				CreatedAt: now,
			},
		},
	}

	if err := s.store.CreateSession(sess); err != nil {
		return nil, fmt.Errorf("session: creating session: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("session started",
		"session_id", sess.ID, "persona", persona.ID)

	return s.snapshot(sess.ID)
}

// GetSession returns a point-in-time copy of the session, safe to encode
// while background tasks keep mutating the original.
func (s *Service) GetSession(_ context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.snapshot(id)
}

// InFlight reports whether the session's primary chat call is outstanding:
// the "typing" indicator.
func (s *Service) InFlight(id domain.SessionID) bool {
	l := s.lockFor(id)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.submitting
}

func (s *Service) snapshot(id domain.SessionID) (*domain.Session, error) {
	sess, err := s.store.GetSession(id)
	if err != nil {
		return nil, err
	}

	l := s.lockFor(id)
	l.mu.Lock()
	defer l.mu.Unlock()

	out := *sess
	out.Turns = make([]*domain.ConversationTurn, len(sess.Turns))
	for i, t := range sess.Turns {
		tc := *t
		out.Turns[i] = &tc
	}
	return &out, nil
}

type SubmitInput struct {
	SessionID domain.SessionID
	Text      string
	Audio     *domain.AudioPayload
	// ForceLocationLookup resolves the position regardless of what the
	// text says (the UI's "share my location" affordance).
	ForceLocationLookup bool
}

type SubmitOutput struct {
	UserTurn      *domain.ConversationTurn
	AssistantTurn *domain.ConversationTurn
	// ChatSucceeded is false when the assistant turn carries the fixed
	// connectivity-failure text.
	ChatSucceeded bool
}

// Submit drives one round-trip. Submissions on one session are serialized;
// an overlapping call fails with domain.ErrSubmissionInFlight. An empty
// submission (no text, no audio) is a no-op returning (nil, nil).
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && in.Audio == nil {
		return nil, nil
	}

	sess, err := s.store.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	l := s.lockFor(in.SessionID)

	l.mu.Lock()
	if l.submitting {
		l.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	l.submitting = true

	// New input supersedes any audio still playing, and any speech task
	// still in flight, from the last round.
	l.epoch++
	gen := l.epoch
	if l.playback != nil {
		l.playback.Cancel()
		l.playback = nil
	}

	defer func() {
		l.mu.Lock()
		l.submitting = false
		l.mu.Unlock()
	}()

	ctx = observability.WithSessionID(ctx, string(in.SessionID))
	log := observability.LoggerFromContext(ctx)

	// Optimistic user turn.
	now := s.now()
	displayText := text
	if displayText == "" {
		displayText = voicePlaceholderText
	}
	userTurn := &domain.ConversationTurn{
		ID:        s.newTurnID(now),
		Role:      domain.RoleUser,
		Text:      displayText,
		CreatedAt: now,
		RiskState: domain.RiskStateUnset,
	}
	history := append([]*domain.ConversationTurn{}, sess.Turns...)
	sess.Turns = append(sess.Turns, userTurn)
	sess.UpdatedAt = now
	persona := sess.Context.Persona
	voiceEnabled := sess.Context.VoiceOutputEnabled
	voice := sess.Context.SelectedVoice
	location := sess.Context.UserLocation
	l.mu.Unlock()

	// Resolve location if the caller forced it or the text asks for
	// something nearby; denial or absence is soft.
	if (in.ForceLocationLookup || s.locationIntent(text)) && location == nil {
		if coords, err := s.resolveLocation(ctx); err == nil {
			location = &coords
			l.mu.Lock()
			sess.Context.UserLocation = location
			l.mu.Unlock()
		} else if errors.Is(err, domain.ErrPermissionDenied) {
			log.Info("location permission denied, continuing without coordinates")
		} else {
			log.Warn("location lookup failed, continuing without coordinates", "error", err)
		}
	}

	instruction := persona.PromptTemplate
	if voiceEnabled || in.Audio != nil {
		instruction += voiceConstraintSuffix
	}

	chatCtx, cancel := context.WithTimeout(ctx, s.primaryTimeout)
	defer cancel()
	reply, ok := s.gw.CompleteChat(chatCtx, domain.ChatRequest{
		History:     history,
		InputText:   text,
		Audio:       in.Audio,
		Location:    location,
		Instruction: instruction,
	})

	now = s.now()
	assistantTurn := &domain.ConversationTurn{
		ID:        s.newTurnID(now),
		Role:      domain.RoleAssistant,
		Text:      reply.Text,
		CreatedAt: now,
	}
	if ok {
		assistantTurn.Citations = reply.Citations
	}

	l.mu.Lock()
	sess.Turns = append(sess.Turns, assistantTurn)
	sess.UpdatedAt = now
	l.mu.Unlock()

	if !ok {
		// The one failure the user is told about. No speech, no analysis.
		log.Error("primary chat call failed, fallback turn appended")
		return &SubmitOutput{UserTurn: cloneTurn(userTurn), AssistantTurn: cloneTurn(assistantTurn)}, nil
	}

	// Auxiliary work runs concurrently and is not awaited. The request
	// context may die with the HTTP response; detach from its cancelation
	// but keep its values for logging.
	bgCtx := context.WithoutCancel(ctx)

	if voiceEnabled {
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			s.speakReply(bgCtx, l, gen, assistantTurn.Text, voice)
		}()
	}

	if text == "" {
		// Voice-only turn: nothing to analyze, attach the placeholder now.
		s.attachAssessment(bgCtx, in.SessionID, userTurn.ID, &domain.RiskAssessment{
			Level:      domain.RiskLow,
			Sentiment:  0,
			Flags:      []string{"Voice Input"},
			Rationale:  implicitCheckRationale,
			AssessedAt: s.now(),
		})
		l.mu.Lock()
		out := &SubmitOutput{
			UserTurn:      cloneTurn(userTurn),
			AssistantTurn: cloneTurn(assistantTurn),
			ChatSucceeded: true,
		}
		l.mu.Unlock()
		return out, nil
	}

	l.mu.Lock()
	userTurn.RiskState = domain.RiskStatePending
	out := &SubmitOutput{
		UserTurn:      cloneTurn(userTurn),
		AssistantTurn: cloneTurn(assistantTurn),
		ChatSucceeded: true,
	}
	l.mu.Unlock()

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		riskCtx, cancel := context.WithTimeout(bgCtx, s.backgroundTimeout)
		defer cancel()
		assessment := s.gw.AssessRisk(riskCtx, text)
		s.attachAssessment(bgCtx, in.SessionID, userTurn.ID, assessment)
	}()

	return out, nil
}

func (s *Service) resolveLocation(ctx context.Context) (domain.Coordinates, error) {
	if s.locator == nil {
		return domain.Coordinates{}, domain.ErrPermissionDenied
	}
	locCtx, cancel := context.WithTimeout(ctx, s.backgroundTimeout)
	defer cancel()
	return s.locator.Locate(locCtx)
}

// speakReply synthesizes and plays the assistant text. Failures are logged
// and swallowed: voice output is never allowed to break the chat. gen is
// the submission's epoch stamp; when the session has moved on (a newer
// submission, persona switch or stop), the synthesized audio is dropped
// rather than played.
func (s *Service) speakReply(ctx context.Context, l *sessionLock, gen uint64, text string, voice domain.VoiceID) {
	speechCtx, cancel := context.WithTimeout(ctx, s.backgroundTimeout)
	defer cancel()

	buf := s.gw.SynthesizeSpeech(speechCtx, text, voice)
	if buf == nil {
		return
	}

	l.mu.Lock()
	if l.epoch != gen {
		l.mu.Unlock()
		return
	}
	if l.playback != nil {
		l.playback.Cancel()
		l.playback = nil
	}
	l.mu.Unlock()

	pb, err := s.player.Play(buf)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("speech playback failed", "error", err)
		return
	}

	l.mu.Lock()
	if l.epoch != gen {
		l.mu.Unlock()
		pb.Cancel()
		return
	}
	l.playback = pb
	l.mu.Unlock()
}

// attachAssessment applies a risk result to its originating turn by id.
// The turn may be gone (persona switched mid-flight); that is a no-op.
// A turn is assessed at most once.
func (s *Service) attachAssessment(ctx context.Context, sessionID domain.SessionID, turnID domain.TurnID, assessment *domain.RiskAssessment) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("risk result for unknown session dropped", "error", err)
		return
	}

	l := s.lockFor(sessionID)
	l.mu.Lock()
	defer l.mu.Unlock()

	var turn *domain.ConversationTurn
	for _, t := range sess.Turns {
		if t.ID == turnID {
			turn = t
			break
		}
	}
	if turn == nil || turn.Assessment != nil {
		return
	}

	turn.Assessment = assessment
	turn.RiskState = domain.RiskStateResolved
	if assessment.Level.RequiresCrisisAlert() {
		sess.CrisisAlert = true
	}
	sess.UpdatedAt = s.now()
}

// SwitchPersona activates a different persona and starts a new
// conversation: persona identity and turn history are coupled 1:1.
// The crisis alert, if raised, stays raised until explicitly dismissed.
func (s *Service) SwitchPersona(ctx context.Context, id domain.SessionID, personaID domain.PersonaID) (*domain.Session, error) {
	persona, okPersona := domain.PersonaByID(personaID)
	if !okPersona {
		return nil, fmt.Errorf("session: unknown persona %q", personaID)
	}

	sess, err := s.store.GetSession(id)
	if err != nil {
		return nil, err
	}

	l := s.lockFor(id)
	l.mu.Lock()
	l.epoch++
	if l.playback != nil {
		l.playback.Cancel()
		l.playback = nil
	}
	now := s.now()
	sess.Context.Persona = persona
	sess.Turns = []*domain.ConversationTurn{
		{
			ID:        s.newTurnID(now),
			Role:      domain.RoleAssistant,
			Text:      welcomeText,
			CreatedAt: now,
		},
	}
	sess.UpdatedAt = now
	l.mu.Unlock()

	observability.LoggerFromContext(ctx).Info("persona switched",
		"session_id", id, "persona", personaID)

	return s.snapshot(id)
}

// SetVoiceOutput toggles spoken replies.
func (s *Service) SetVoiceOutput(_ context.Context, id domain.SessionID, enabled bool) error {
	sess, err := s.store.GetSession(id)
	if err != nil {
		return err
	}
	l := s.lockFor(id)
	l.mu.Lock()
	defer l.mu.Unlock()
	sess.Context.VoiceOutputEnabled = enabled
	sess.UpdatedAt = s.now()
	return nil
}

// SetVoice selects the synthesis voice for subsequent replies.
func (s *Service) SetVoice(_ context.Context, id domain.SessionID, voice domain.VoiceID) error {
	if !domain.ValidVoice(voice) {
		return fmt.Errorf("session: unknown voice %q", voice)
	}
	sess, err := s.store.GetSession(id)
	if err != nil {
		return err
	}
	l := s.lockFor(id)
	l.mu.Lock()
	defer l.mu.Unlock()
	sess.Context.SelectedVoice = voice
	sess.UpdatedAt = s.now()
	return nil
}

// DismissCrisisAlert clears the sticky crisis flag. Only an explicit user
// action lands here.
func (s *Service) DismissCrisisAlert(_ context.Context, id domain.SessionID) error {
	sess, err := s.store.GetSession(id)
	if err != nil {
		return err
	}
	l := s.lockFor(id)
	l.mu.Lock()
	defer l.mu.Unlock()
	sess.CrisisAlert = false
	sess.UpdatedAt = s.now()
	return nil
}

// StopPlayback cancels the session's active speech playback, if any.
// Idempotent.
func (s *Service) StopPlayback(_ context.Context, id domain.SessionID) {
	l := s.lockFor(id)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	if l.playback != nil {
		l.playback.Cancel()
		l.playback = nil
	}
}

// Wait blocks until all outstanding background risk/speech tasks finish.
// Used on shutdown and by tests.
func (s *Service) Wait() {
	s.background.Wait()
}

func cloneTurn(t *domain.ConversationTurn) *domain.ConversationTurn {
	tc := *t
	return &tc
}
