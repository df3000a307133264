package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

type journalJSON struct {
	Reflection *string  `json:"reflection"`
	Moods      []string `json:"moods"`
}

var journalSchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"reflection": {Type: "string"},
		"moods": {
			Type:  "array",
			Items: &genai.Schema{Type: "string"},
		},
	},
	Required: []string{"reflection", "moods"},
}

// Reflect implements domain.JournalAnalyzer.
func (g *GeminiProvider) Reflect(ctx context.Context, entryText string) (string, []string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(entryText, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.analyzerModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(journalInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    journalSchema,
	})
	if err != nil {
		return "", nil, fmt.Errorf("llm: journal generate content: %w", err)
	}

	out := res.Text()
	if out == "" {
		return "", nil, fmt.Errorf("llm: journal analyzer returned empty text")
	}

	var j journalJSON
	if err := json.Unmarshal([]byte(out), &j); err != nil {
		return "", nil, fmt.Errorf("llm: decoding journal json: %w", err)
	}
	if j.Reflection == nil || *j.Reflection == "" {
		return "", nil, fmt.Errorf("llm: journal json missing reflection")
	}

	return *j.Reflection, j.Moods, nil
}
