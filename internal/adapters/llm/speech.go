package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

// Synthesize implements domain.SpeechSynthesizer. The TTS models return
// single-channel 16-bit PCM at 24kHz, which is exactly the wire contract.
func (g *GeminiProvider) Synthesize(ctx context.Context, text string, voice domain.VoiceID) ([]byte, error) {
	if !domain.ValidVoice(voice) {
		voice = domain.DefaultVoice
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.speechModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: string(voice),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: speech generate content: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("llm: speech returned no parts")
	}
	data := res.Candidates[0].Content.Parts[0].InlineData
	if data == nil || len(data.Data) == 0 {
		return nil, fmt.Errorf("llm: speech returned no audio data")
	}

	return data.Data, nil
}
