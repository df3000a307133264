package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

// riskSchema constrains the analyzer to the exact assessment shape; anything
// the model returns outside it fails parsing and becomes the safe default
// one layer up.
var riskSchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"sentimentScore": {
			Type:        "number",
			Description: "Sentiment between -10 (acute distress) and 10 (thriving).",
		},
		"riskLevel": {
			Type: "string",
			Enum: []string{"Low", "Medium", "High", "Critical"},
		},
		"flags": {
			Type:  "array",
			Items: &genai.Schema{Type: "string"},
		},
		"reasoning": {
			Type: "string",
		},
	},
	Required: []string{"sentimentScore", "riskLevel", "flags", "reasoning"},
}

// Analyze implements domain.RiskAnalyzer.
func (g *GeminiProvider) Analyze(ctx context.Context, text string) (*domain.RiskAssessment, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf("Clinical Analysis Required for: %q", text), genai.RoleUser),
	}

	// Zero temperature for deterministic analysis.
	temp := float32(0)
	res, err := g.client.Models.GenerateContent(ctx, g.analyzerModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(analyzerInstruction, genai.RoleUser),
		Temperature:       &temp,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    riskSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: risk generate content: %w", err)
	}

	out := res.Text()
	if out == "" {
		return nil, fmt.Errorf("llm: risk analyzer returned empty text")
	}

	assessment, err := ParseRiskAssessment([]byte(out), g.now())
	if err != nil {
		return nil, fmt.Errorf("llm: parsing risk assessment: %w", err)
	}
	return assessment, nil
}
