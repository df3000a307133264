package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mindflow/sanctuary/internal/adapters/llm"
	memstore "github.com/mindflow/sanctuary/internal/adapters/storage/memory"
	"github.com/mindflow/sanctuary/internal/app/journal"
	"github.com/mindflow/sanctuary/internal/app/session"
	"github.com/mindflow/sanctuary/internal/app/wellness"
	"github.com/mindflow/sanctuary/internal/audio"
	"github.com/mindflow/sanctuary/internal/gateway"
)

func newTestServer(t *testing.T) (http.Handler, *session.Service) {
	t.Helper()

	mock := llm.NewMockProvider()
	gw := gateway.New(mock, mock, mock, mock, time.Minute)

	sessions := session.NewService(gw, memstore.NewSessionStore(), nil, audio.NewPlayer(&audio.NullOutput{}), session.Options{
		PrimaryTimeout:    time.Second,
		BackgroundTimeout: time.Second,
	})
	journals := journal.NewService(memstore.NewJournalStore(), mock, time.Second)
	well := wellness.NewService(mock, time.Second)

	return NewServer(sessions, journals, well, gw), sessions
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func createSession(t *testing.T, h http.Handler) sessionResponse {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/sessions", createSessionRequest{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d: %s", rec.Code, rec.Body)
	}
	return decode[sessionResponse](t, rec)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateAndGetSession(t *testing.T) {
	h, _ := newTestServer(t)
	sess := createSession(t, h)

	if sess.ID == "" {
		t.Fatal("session id missing")
	}
	if len(sess.Turns) != 1 || sess.Turns[0].Role != "assistant" {
		t.Fatalf("expected one welcome turn, got %+v", sess.Turns)
	}

	rec := doJSON(t, h, http.MethodGet, "/sessions/"+sess.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get session status = %d", rec.Code)
	}
	got := decode[sessionResponse](t, rec)
	if got.ID != sess.ID {
		t.Errorf("id = %q, want %q", got.ID, sess.ID)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/sessions/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitMessage(t *testing.T) {
	h, svc := newTestServer(t)
	sess := createSession(t, h)

	rec := doJSON(t, h, http.MethodPost, "/sessions/"+sess.ID+"/messages", submitRequest{Text: "feeling anxious lately"})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body)
	}
	out := decode[submitResponse](t, rec)
	if !out.ChatSucceeded {
		t.Error("chat_succeeded = false")
	}
	if out.UserTurn.Text != "feeling anxious lately" {
		t.Errorf("user turn = %q", out.UserTurn.Text)
	}
	if out.AssistantTurn.Text == "" {
		t.Error("assistant turn empty")
	}

	// The mock analyzer tags "anxious" as medium risk; wait for it to land.
	svc.Wait()
	got := decode[sessionResponse](t, doJSON(t, h, http.MethodGet, "/sessions/"+sess.ID, nil))
	var userTurn *turnResponse
	for i := range got.Turns {
		if got.Turns[i].ID == out.UserTurn.ID {
			userTurn = &got.Turns[i]
		}
	}
	if userTurn == nil {
		t.Fatal("user turn missing from session")
	}
	if userTurn.RiskState != "resolved" {
		t.Errorf("risk_state = %q, want resolved", userTurn.RiskState)
	}
	if userTurn.Risk == nil || userTurn.Risk.Level != "Medium" {
		t.Errorf("risk = %+v, want Medium", userTurn.Risk)
	}
	if got.CrisisAlert {
		t.Error("crisis alert raised for medium risk")
	}
}

func TestSubmitEmptyBodyReturnsNoContent(t *testing.T) {
	h, _ := newTestServer(t)
	sess := createSession(t, h)

	rec := doJSON(t, h, http.MethodPost, "/sessions/"+sess.ID+"/messages", submitRequest{Text: "   "})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestCrisisFlow(t *testing.T) {
	h, svc := newTestServer(t)
	sess := createSession(t, h)

	rec := doJSON(t, h, http.MethodPost, "/sessions/"+sess.ID+"/messages", submitRequest{Text: "I feel hopeless"})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d", rec.Code)
	}
	svc.Wait()

	got := decode[sessionResponse](t, doJSON(t, h, http.MethodGet, "/sessions/"+sess.ID, nil))
	if !got.CrisisAlert {
		t.Fatal("crisis alert not raised")
	}

	rec = doJSON(t, h, http.MethodPost, "/sessions/"+sess.ID+"/crisis/dismiss", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("dismiss status = %d", rec.Code)
	}
	got = decode[sessionResponse](t, doJSON(t, h, http.MethodGet, "/sessions/"+sess.ID, nil))
	if got.CrisisAlert {
		t.Fatal("crisis alert still set after dismiss")
	}
}

func TestSwitchPersona(t *testing.T) {
	h, _ := newTestServer(t)
	sess := createSession(t, h)

	rec := doJSON(t, h, http.MethodPost, "/sessions/"+sess.ID+"/persona", switchPersonaRequest{Persona: "grounding"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[sessionResponse](t, rec)
	if got.Persona.ID != "grounding" {
		t.Errorf("persona = %q", got.Persona.ID)
	}
	if len(got.Turns) != 1 {
		t.Errorf("turns = %d, want fresh welcome only", len(got.Turns))
	}

	rec = doJSON(t, h, http.MethodPost, "/sessions/"+sess.ID+"/persona", switchPersonaRequest{Persona: "unknown"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown persona status = %d, want 400", rec.Code)
	}
}

func TestSettings(t *testing.T) {
	h, _ := newTestServer(t)
	sess := createSession(t, h)

	enabled := true
	voice := "Puck"
	rec := doJSON(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/settings", settingsRequest{VoiceOutput: &enabled, Voice: &voice})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[sessionResponse](t, rec)
	if !got.VoiceOutput {
		t.Error("voice_output not enabled")
	}
	if got.Voice != "Puck" {
		t.Errorf("voice = %q, want Puck", got.Voice)
	}

	bad := "Robotron"
	rec = doJSON(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/settings", settingsRequest{Voice: &bad})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid voice status = %d, want 400", rec.Code)
	}
}

func TestNewsFeed(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/news", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[map[string][]newsItemResponse](t, rec)
	if len(got["items"]) == 0 {
		t.Fatal("no news items")
	}

	rec = doJSON(t, h, http.MethodGet, "/news?category=Research", nil)
	got = decode[map[string][]newsItemResponse](t, rec)
	for _, item := range got["items"] {
		if item.Category != "Research" {
			t.Errorf("item %q category = %q, want Research", item.Title, item.Category)
		}
	}
}

func TestArticleRequiresTitle(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/news/article", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/news/article?title=Sleep+Hygiene", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[articleResponse](t, rec)
	if got.HTML == "" {
		t.Error("article body empty")
	}
}

func TestResources(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/resources", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "988") {
		t.Error("crisis resources missing the 988 lifeline")
	}
}

func TestJournalRoundTrip(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/journal", addJournalRequest{Text: "Today was heavy but I got through it."})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add entry status = %d: %s", rec.Code, rec.Body)
	}
	entry := decode[journalEntryResponse](t, rec)
	if entry.Reflection == "" {
		t.Error("reflection missing")
	}

	rec = doJSON(t, h, http.MethodGet, "/journal", nil)
	got := decode[map[string][]journalEntryResponse](t, rec)
	if len(got["entries"]) != 1 {
		t.Fatalf("entries = %d, want 1", len(got["entries"]))
	}

	rec = doJSON(t, h, http.MethodPost, "/journal", addJournalRequest{Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty entry status = %d, want 400", rec.Code)
	}
}

func TestSleepPlan(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/sleep-plan", sleepPlanRequest{
		StressLevel: 7,
		Caffeine:    "two coffees",
		Screens:     "until midnight",
		Bedtime:     "23:30",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[sleepPlanResponse](t, rec)
	if got.Summary == "" || len(got.Steps) == 0 {
		t.Fatalf("plan incomplete: %+v", got)
	}

	rec = doJSON(t, h, http.MethodPost, "/sleep-plan", sleepPlanRequest{StressLevel: 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid intake status = %d, want 400", rec.Code)
	}
}
