// Package openaitts provides an alternative speech-synthesis backend so
// deployments without Gemini TTS access can still enable voice output.
package openaitts

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"

	"github.com/mindflow/sanctuary/internal/domain"
)

// Synthesizer implements domain.SpeechSynthesizer on the OpenAI speech API.
// The PCM response format is 24kHz mono 16-bit, matching the wire contract.
type Synthesizer struct {
	client openai.Client
	model  string
}

// NewSynthesizer creates the synthesizer. The API key is read from the
// standard OPENAI_API_KEY environment variable by the client.
func NewSynthesizer(model string) *Synthesizer {
	return &Synthesizer{
		client: openai.NewClient(),
		model:  model,
	}
}

// voiceFor maps the platform's named voices onto the provider's catalog.
func voiceFor(voice domain.VoiceID) openai.AudioSpeechNewParamsVoice {
	switch voice {
	case "Puck":
		return openai.AudioSpeechNewParamsVoiceEcho
	case "Charon":
		return openai.AudioSpeechNewParamsVoiceBallad
	case "Fenrir":
		return openai.AudioSpeechNewParamsVoiceAsh
	case "Zephyr":
		return openai.AudioSpeechNewParamsVoiceShimmer
	default: // Kore
		return openai.AudioSpeechNewParamsVoiceCoral
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string, voice domain.VoiceID) ([]byte, error) {
	res, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          voiceFor(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, fmt.Errorf("openaitts: speech request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("openaitts: reading speech response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openaitts: empty speech response")
	}
	return data, nil
}
