package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

// GeminiConfig selects the models used for each concern.
type GeminiConfig struct {
	APIKey        string
	ChatModel     string
	AnalyzerModel string
	SpeechModel   string
	NewsModel     string
}

// GeminiProvider implements the chat, risk-analysis, speech, news, journal
// and sleep-plan ports on top of the Gemini API.
type GeminiProvider struct {
	client *genai.Client

	chatModel     string
	analyzerModel string
	speechModel   string
	newsModel     string

	now func() time.Time
}

// NewGeminiProvider creates a provider backed by the hosted Gemini API.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: creating genai client: %w", err)
	}

	return &GeminiProvider{
		client:        client,
		chatModel:     cfg.ChatModel,
		analyzerModel: cfg.AnalyzerModel,
		speechModel:   cfg.SpeechModel,
		newsModel:     cfg.NewsModel,
		now:           time.Now,
	}, nil
}

// Complete implements domain.ChatModel. The request's instruction text is
// the active persona's behavioral contract, already suffixed by the caller
// when voice output is in play.
func (g *GeminiProvider) Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	contents := historyContents(req.History)

	var parts []*genai.Part
	if req.InputText != "" {
		parts = append(parts, &genai.Part{Text: req.InputText})
	}
	if req.Audio != nil {
		raw, err := base64.StdEncoding.DecodeString(req.Audio.Data)
		if err != nil {
			return domain.ChatReply{}, fmt.Errorf("llm: decoding audio payload: %w", err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Audio.MIMEType, Data: raw},
		})
	}
	if req.Location != nil {
		parts = append(parts, &genai.Part{
			Text: fmt.Sprintf("[Context: the user is located at latitude %.4f, longitude %.4f. Use this for any nearby-resource suggestions.]",
				req.Location.Latitude, req.Location.Longitude),
		})
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	// Lower temperature for more professional/consistent responses.
	temp := float32(0.5)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instruction, genai.RoleUser),
		Temperature:       &temp,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	res, err := g.client.Models.GenerateContent(ctx, g.chatModel, contents, cfg)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("llm: chat generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return domain.ChatReply{}, fmt.Errorf("llm: chat returned empty text")
	}

	return domain.ChatReply{
		Text:      text,
		Citations: extractCitations(res),
	}, nil
}

// historyContents maps prior conversation turns onto the provider's
// role model: user turns keep the user role, assistant turns become the
// model role.
func historyContents(history []*domain.ConversationTurn) []*genai.Content {
	var contents []*genai.Content
	for _, t := range history {
		var role genai.Role
		switch t.Role {
		case domain.RoleAssistant:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}
