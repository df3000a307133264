package audio

import (
	"math"
	"testing"
	"time"
)

func TestDecodePCMSampleCount(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}
	samples := DecodePCM(pcm)
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	if samples[0] != 0 {
		t.Errorf("samples[0] = %v, want 0", samples[0])
	}
	if samples[1] <= 0.99 || samples[1] > 1 {
		t.Errorf("samples[1] = %v, want close to 1", samples[1])
	}
	if samples[2] != -1 {
		t.Errorf("samples[2] = %v, want -1", samples[2])
	}
}

func TestDecodePCMIgnoresTrailingByte(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0x12}
	if got := len(DecodePCM(pcm)); got != 1 {
		t.Fatalf("got %d samples, want 1", got)
	}
}

func TestPCMRoundTrip(t *testing.T) {
	in := []float64{0, 0.5, -0.5, 0.999, -0.999}
	pcm := EncodePCM(in)
	if len(pcm) != 2*len(in) {
		t.Fatalf("encoded %d bytes, want %d", len(pcm), 2*len(in))
	}

	out := DecodePCM(pcm)
	if len(out) != len(in) {
		t.Fatalf("decoded %d samples, want %d", len(out), len(in))
	}
	for i := range in {
		if math.Abs(out[i]-in[i]) > 1.0/16384 {
			t.Errorf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestEncodePCMClampsOutOfRange(t *testing.T) {
	pcm := EncodePCM([]float64{2.0, -2.0})
	out := DecodePCM(pcm)
	if out[0] <= 0.99 || out[0] > 1 {
		t.Errorf("out[0] = %v, want clamped near 1", out[0])
	}
	if out[1] < -1 || out[1] >= -0.99 {
		t.Errorf("out[1] = %v, want clamped near -1", out[1])
	}
}

func TestDuration(t *testing.T) {
	if d := Duration(SampleRate); d != time.Second {
		t.Errorf("Duration(SampleRate) = %v, want 1s", d)
	}
	if d := Duration(0); d != 0 {
		t.Errorf("Duration(0) = %v, want 0", d)
	}
}
