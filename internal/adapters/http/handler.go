package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mindflow/sanctuary/internal/app/journal"
	"github.com/mindflow/sanctuary/internal/app/session"
	"github.com/mindflow/sanctuary/internal/app/wellness"
	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/gateway"
)

type Server struct {
	sessions *session.Service
	journals *journal.Service
	wellness *wellness.Service
	gw       *gateway.Gateway
}

func NewServer(sessions *session.Service, journals *journal.Service, well *wellness.Service, gw *gateway.Gateway) http.Handler {
	s := &Server{sessions: sessions, journals: journals, wellness: well, gw: gw}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(withCORS)

	r.Get("/healthz", s.handleHealth)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/messages", s.handleSubmit)
			r.Post("/persona", s.handleSwitchPersona)
			r.Patch("/settings", s.handleSettings)
			r.Post("/crisis/dismiss", s.handleDismissCrisis)
			r.Post("/playback/stop", s.handleStopPlayback)
		})
	})

	r.Get("/news", s.handleNews)
	r.Get("/news/article", s.handleArticle)
	r.Get("/resources", s.handleResources)
	r.Get("/personas", s.handlePersonas)
	r.Get("/voices", s.handleVoices)

	r.Post("/journal", s.handleAddJournalEntry)
	r.Get("/journal", s.handleListJournalEntries)

	r.Post("/sleep-plan", s.handleSleepPlan)

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	Persona string `json:"persona,omitempty"`
	Voice   string `json:"voice,omitempty"`
}

type sessionResponse struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Persona     personaResponse `json:"persona"`
	VoiceOutput bool            `json:"voice_output"`
	Voice       string          `json:"voice"`
	CrisisAlert bool            `json:"crisis_alert"`
	Turns       []turnResponse  `json:"turns"`
}

type personaResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ThemeColor  string `json:"theme_color"`
	AvatarRef   string `json:"avatar_ref"`
}

type turnResponse struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
	RiskState string            `json:"risk_state,omitempty"`
	Risk      *riskResponse     `json:"risk,omitempty"`
	Citations []citationPayload `json:"citations,omitempty"`
}

type riskResponse struct {
	Level      string    `json:"level"`
	Sentiment  float64   `json:"sentiment"`
	Flags      []string  `json:"flags"`
	Rationale  string    `json:"rationale"`
	AssessedAt time.Time `json:"assessed_at"`
}

type citationPayload struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	URI     string `json:"uri,omitempty"`
	PlaceID string `json:"place_id,omitempty"`
}

type submitRequest struct {
	Text string `json:"text,omitempty"`
	// Audio carries a base64-encoded voice recording.
	Audio         *audioPayload `json:"audio,omitempty"`
	ShareLocation bool          `json:"share_location,omitempty"`
}

type audioPayload struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

type submitResponse struct {
	UserTurn      turnResponse `json:"user_turn"`
	AssistantTurn turnResponse `json:"assistant_turn"`
	ChatSucceeded bool         `json:"chat_succeeded"`
}

type switchPersonaRequest struct {
	Persona string `json:"persona"`
}

type settingsRequest struct {
	VoiceOutput *bool   `json:"voice_output,omitempty"`
	Voice       *string `json:"voice,omitempty"`
}

type newsItemResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	ReadTime string `json:"read_time"`
	URL      string `json:"url,omitempty"`
}

type articleResponse struct {
	Title     string `json:"title"`
	HTML      string `json:"html"`
	SourceURL string `json:"source_url,omitempty"`
}

type addJournalRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

type journalEntryResponse struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Text       string    `json:"text"`
	Reflection string    `json:"reflection,omitempty"`
	Moods      []string  `json:"moods,omitempty"`
}

type sleepPlanRequest struct {
	StressLevel int    `json:"stress_level"`
	Caffeine    string `json:"caffeine"`
	Screens     string `json:"screens"`
	Bedtime     string `json:"bedtime"`
}

type sleepPlanResponse struct {
	Summary string             `json:"summary"`
	Steps   []sleepStepPayload `json:"steps"`
}

type sleepStepPayload struct {
	Offset      string `json:"offset"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ─────────────────────────────────────────────
// Session handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	}

	sess, err := s.sessions.StartSession(r.Context(), session.StartSessionInput{
		PersonaID: domain.PersonaID(req.Persona),
		Voice:     domain.VoiceID(req.Voice),
	})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.GetSession(r.Context(), sessionIDParam(r))
	if err != nil {
		notFoundOrInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	in := session.SubmitInput{
		SessionID:           sessionIDParam(r),
		Text:                req.Text,
		ForceLocationLookup: req.ShareLocation,
	}
	if req.Audio != nil {
		if req.Audio.Data == "" {
			badRequest(w, "audio.data is required when audio is present")
			return
		}
		in.Audio = &domain.AudioPayload{Data: req.Audio.Data, MIMEType: req.Audio.MIMEType}
	}

	out, err := s.sessions.Submit(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			http.NotFound(w, r)
		case errors.Is(err, domain.ErrSubmissionInFlight):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "a submission is already in flight for this session",
			})
		default:
			internalError(w, err)
		}
		return
	}
	if out == nil {
		// Empty submission is a no-op.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		UserTurn:      toTurnResponse(out.UserTurn),
		AssistantTurn: toTurnResponse(out.AssistantTurn),
		ChatSucceeded: out.ChatSucceeded,
	})
}

func (s *Server) handleSwitchPersona(w http.ResponseWriter, r *http.Request) {
	var req switchPersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Persona == "" {
		badRequest(w, "persona is required")
		return
	}

	sess, err := s.sessions.SwitchPersona(r.Context(), sessionIDParam(r), domain.PersonaID(req.Persona))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	id := sessionIDParam(r)

	if req.VoiceOutput != nil {
		if err := s.sessions.SetVoiceOutput(r.Context(), id, *req.VoiceOutput); err != nil {
			notFoundOrInternal(w, err)
			return
		}
	}
	if req.Voice != nil {
		if err := s.sessions.SetVoice(r.Context(), id, domain.VoiceID(*req.Voice)); err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				http.NotFound(w, r)
				return
			}
			badRequest(w, err.Error())
			return
		}
	}

	sess, err := s.sessions.GetSession(r.Context(), id)
	if err != nil {
		notFoundOrInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleDismissCrisis(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.DismissCrisisAlert(r.Context(), sessionIDParam(r)); err != nil {
		notFoundOrInternal(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStopPlayback(w http.ResponseWriter, r *http.Request) {
	s.sessions.StopPlayback(r.Context(), sessionIDParam(r))
	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// News and resources
// ─────────────────────────────────────────────

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	rawCategory := strings.TrimSpace(r.URL.Query().Get("category"))

	items := s.gw.FetchHeadlines(r.Context(), force)
	out := make([]newsItemResponse, 0, len(items))
	for _, it := range items {
		if rawCategory != "" && it.Category != domain.ParseNewsCategory(rawCategory) {
			continue
		}
		out = append(out, newsItemResponse{
			ID:       string(it.ID),
			Title:    it.Title,
			Source:   it.Source,
			Date:     it.Date,
			Category: string(it.Category),
			Summary:  it.Summary,
			ReadTime: it.ReadTime,
			URL:      it.URL,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		badRequest(w, "title is required")
		return
	}

	article := s.gw.FetchArticleBody(r.Context(), title)
	writeJSON(w, http.StatusOK, articleResponse{
		Title:     title,
		HTML:      article.HTML,
		SourceURL: article.SourceURL,
	})
}

func (s *Server) handleResources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"resources": domain.CrisisResources})
}

func (s *Server) handlePersonas(w http.ResponseWriter, _ *http.Request) {
	out := make([]personaResponse, 0, len(domain.Personas))
	for _, p := range domain.Personas {
		out = append(out, toPersonaResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"personas": out})
}

func (s *Server) handleVoices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"voices": domain.AvailableVoices})
}

// ─────────────────────────────────────────────
// Journal and sleep plan
// ─────────────────────────────────────────────

func (s *Server) handleAddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req addJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	entry, err := s.journals.AddEntry(r.Context(), journal.AddEntryInput{
		SessionID: domain.SessionID(req.SessionID),
		Text:      req.Text,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJournalEntryResponse(entry))
}

func (s *Server) handleListJournalEntries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.journals.ListEntries(r.Context(), limit)
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]journalEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

func (s *Server) handleSleepPlan(w http.ResponseWriter, r *http.Request) {
	var req sleepPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	plan, err := s.wellness.PlanSleep(r.Context(), domain.SleepPlanInput{
		StressLevel: req.StressLevel,
		Caffeine:    req.Caffeine,
		Screens:     req.Screens,
		Bedtime:     req.Bedtime,
	})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	steps := make([]sleepStepPayload, 0, len(plan.Steps))
	for _, st := range plan.Steps {
		steps = append(steps, sleepStepPayload{Offset: st.Offset, Title: st.Title, Description: st.Description})
	}
	writeJSON(w, http.StatusOK, sleepPlanResponse{Summary: plan.Summary, Steps: steps})
}

// ─────────────────────────────────────────────
// Response mapping
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	turns := make([]turnResponse, 0, len(s.Turns))
	for _, t := range s.Turns {
		turns = append(turns, toTurnResponse(t))
	}
	return sessionResponse{
		ID:          string(s.ID),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Persona:     toPersonaResponse(s.Context.Persona),
		VoiceOutput: s.Context.VoiceOutputEnabled,
		Voice:       string(s.Context.SelectedVoice),
		CrisisAlert: s.CrisisAlert,
		Turns:       turns,
	}
}

func toPersonaResponse(p domain.Persona) personaResponse {
	return personaResponse{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		ThemeColor:  p.ThemeColor,
		AvatarRef:   p.AvatarRef,
	}
}

func toTurnResponse(t *domain.ConversationTurn) turnResponse {
	out := turnResponse{
		ID:        string(t.ID),
		Role:      string(t.Role),
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
	}
	if t.Role == domain.RoleUser {
		out.RiskState = string(t.RiskState)
	}
	if t.Assessment != nil {
		out.Risk = &riskResponse{
			Level:      string(t.Assessment.Level),
			Sentiment:  t.Assessment.Sentiment,
			Flags:      t.Assessment.Flags,
			Rationale:  t.Assessment.Rationale,
			AssessedAt: t.Assessment.AssessedAt,
		}
	}
	for _, c := range t.Citations {
		switch {
		case c.Web != nil:
			out.Citations = append(out.Citations, citationPayload{Kind: "web", Title: c.Web.Title, URI: c.Web.URI})
		case c.Place != nil:
			out.Citations = append(out.Citations, citationPayload{Kind: "place", Title: c.Place.Title, URI: c.Place.URI, PlaceID: c.Place.PlaceID})
		}
	}
	return out
}

func toJournalEntryResponse(e *domain.JournalEntry) journalEntryResponse {
	return journalEntryResponse{
		ID:         string(e.ID),
		CreatedAt:  e.CreatedAt,
		Text:       e.Text,
		Reflection: e.Reflection,
		Moods:      e.Moods,
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func sessionIDParam(r *http.Request) domain.SessionID {
	return domain.SessionID(chi.URLParam(r, "sessionID"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, _ error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func notFoundOrInternal(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	internalError(w, err)
}
