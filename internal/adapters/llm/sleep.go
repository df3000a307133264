package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

var sleepSchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"summary": {Type: "string"},
		"steps": {
			Type: "array",
			Items: &genai.Schema{
				Type: "object",
				Properties: map[string]*genai.Schema{
					"offset":      {Type: "string"},
					"title":       {Type: "string"},
					"description": {Type: "string"},
				},
				Required: []string{"offset", "title", "description"},
			},
		},
	},
	Required: []string{"summary", "steps"},
}

// PlanSleep implements domain.SleepPlanner.
func (g *GeminiProvider) PlanSleep(ctx context.Context, in domain.SleepPlanInput) (*domain.SleepPlan, error) {
	intake, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("llm: marshalling sleep intake: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(string(intake), genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.chatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(sleepInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    sleepSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: sleep generate content: %w", err)
	}

	out := res.Text()
	if out == "" {
		return nil, fmt.Errorf("llm: sleep planner returned empty text")
	}

	var plan domain.SleepPlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		return nil, fmt.Errorf("llm: decoding sleep plan: %w", err)
	}
	if plan.Summary == "" || len(plan.Steps) == 0 {
		return nil, fmt.Errorf("llm: sleep plan missing summary or steps")
	}

	return &plan, nil
}
