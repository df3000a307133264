package openaitts

import (
	"testing"

	"github.com/openai/openai-go/v3"

	"github.com/mindflow/sanctuary/internal/domain"
)

func TestVoiceForCoversCatalog(t *testing.T) {
	cases := map[domain.VoiceID]openai.AudioSpeechNewParamsVoice{
		"Kore":   openai.AudioSpeechNewParamsVoiceCoral,
		"Puck":   openai.AudioSpeechNewParamsVoiceEcho,
		"Charon": openai.AudioSpeechNewParamsVoiceBallad,
		"Fenrir": openai.AudioSpeechNewParamsVoiceAsh,
		"Zephyr": openai.AudioSpeechNewParamsVoiceShimmer,
	}
	for id, want := range cases {
		if got := voiceFor(id); got != want {
			t.Errorf("voiceFor(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestVoiceForUnknownFallsBackToDefault(t *testing.T) {
	if got := voiceFor("NotAVoice"); got != openai.AudioSpeechNewParamsVoiceCoral {
		t.Errorf("voiceFor(unknown) = %q, want the default voice", got)
	}
}
