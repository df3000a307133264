// Package audio holds the capture and playback halves of the voice
// feature: a single-session microphone recorder and a cancellable PCM
// player, both expressed against device ports so they stay independent of
// any particular audio backend.
package audio

import (
	"encoding/binary"
	"time"
)

// SampleRate is the fixed rate of all synthesized speech: 24kHz mono.
const SampleRate = 24000

// DecodePCM reinterprets a raw buffer as 16-bit signed little-endian
// samples normalized to [-1.0, 1.0]. A trailing odd byte is ignored.
func DecodePCM(buf []byte) []float64 {
	n := len(buf) / 2
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(buf[2*i:]))
		samples[i] = float64(v) / 32768.0
	}
	return samples
}

// EncodePCM is the inverse of DecodePCM, clamping samples to [-1.0, 1.0].
func EncodePCM(samples []float64) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return buf
}

// Duration returns the playback time of a sample count at SampleRate.
func Duration(sampleCount int) time.Duration {
	return time.Duration(sampleCount) * time.Second / SampleRate
}
