// sanctuary-cli is a terminal chat client against the in-process services.
// It runs the whole stack without HTTP, so it is the quickest way to try a
// persona or exercise the risk pipeline from a shell.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/mindflow/sanctuary/internal/adapters/llm"
	memstore "github.com/mindflow/sanctuary/internal/adapters/storage/memory"
	"github.com/mindflow/sanctuary/internal/app/session"
	"github.com/mindflow/sanctuary/internal/audio"
	"github.com/mindflow/sanctuary/internal/config"
	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/gateway"
)

var (
	personaFlag = flag.String("persona", string(domain.DefaultPersona().ID), "Persona to start with (counselor, grounding, wellness)")
	mockFlag    = flag.Bool("mock", false, "Use the offline mock provider instead of Gemini")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nTake care of yourself.")
		cancel()
		os.Exit(0)
	}()

	if *mockFlag {
		os.Setenv("SANCTUARY_USE_MOCK_MODEL", "1")
	}
	cfg := config.Load()

	var (
		chat domain.ChatModel
		risk domain.RiskAnalyzer
	)
	if cfg.UseMockModel {
		mock := llm.NewMockProvider()
		chat, risk = mock, mock
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
		chat, risk = gemini, gemini
	}

	// The terminal has no speaker or news pane; those ports stay on the mock.
	mock := llm.NewMockProvider()
	gw := gateway.New(chat, risk, mock, mock, cfg.NewsCacheTTL)

	svc := session.NewService(gw, memstore.NewSessionStore(), nil, audio.NewPlayer(&audio.NullOutput{}), session.Options{
		PrimaryTimeout:    cfg.PrimaryCallTimeout,
		BackgroundTimeout: cfg.BackgroundCallTimeout,
	})

	sess, err := svc.StartSession(ctx, session.StartSessionInput{
		PersonaID: domain.PersonaID(*personaFlag),
	})
	if err != nil {
		log.Fatalf("error starting session: %v", err)
	}

	boldTeal := color.New(color.FgCyan, color.Bold).SprintFunc()
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldRed := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println(boldTeal("MindFlow Sanctuary"))
	fmt.Printf("Persona: %s %s\n", sess.Context.Persona.Name, dim("("+sess.Context.Persona.Description+")"))
	fmt.Println("Type your message and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()
	fmt.Println(boldTeal("Companion: ") + sess.Turns[0].Text)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()

		if strings.ToLower(strings.TrimSpace(input)) == "exit" {
			break
		}

		out, err := svc.Submit(ctx, session.SubmitInput{
			SessionID: sess.ID,
			Text:      input,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if out == nil {
			continue
		}

		fmt.Println(boldTeal("Companion: ") + out.AssistantTurn.Text)
		fmt.Println()

		// Risk analysis runs behind the reply; give it a moment and show the
		// crisis banner the way the web client would.
		waitForRisk(svc, sess.ID, out.UserTurn.ID, cfg.BackgroundCallTimeout)
		snap, err := svc.GetSession(ctx, sess.ID)
		if err == nil && snap.CrisisAlert {
			fmt.Println(boldRed("⚠ If you are in crisis, please call 988 or text HOME to 741741."))
			fmt.Println()
		}
	}
}

// waitForRisk polls until the submitted turn's assessment resolves or the
// budget runs out. The web client gets this for free by re-rendering.
func waitForRisk(svc *session.Service, id domain.SessionID, turnID domain.TurnID, budget time.Duration) {
	deadline := time.Now().Add(budget)
	for time.Now().Before(deadline) {
		snap, err := svc.GetSession(context.Background(), id)
		if err != nil {
			return
		}
		for _, t := range snap.Turns {
			if t.ID == turnID && t.RiskState != domain.RiskStatePending {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}
