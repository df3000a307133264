package audio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
)

// PreferredEncodings is the ordered preference list offered to the capture
// device; the first supported one wins.
var PreferredEncodings = []string{
	"audio/webm;codecs=opus",
	"audio/webm",
	"audio/ogg;codecs=opus",
	"audio/mp4",
}

// Recorder manages a single mutable capture session: acquire the device,
// buffer encoded chunks, and assemble one transportable payload on stop.
type Recorder struct {
	device domain.CaptureDevice

	mu        sync.Mutex
	stream    domain.CaptureStream
	chunks    [][]byte
	startedAt time.Time
	collected chan struct{}

	now func() time.Time
}

func NewRecorder(device domain.CaptureDevice) *Recorder {
	return &Recorder{device: device, now: time.Now}
}

// Start requests device access and begins buffering. Starting while a
// recording is active is rejected, never layered. Permission denial is
// reported as domain.ErrPermissionDenied so the caller can show a targeted
// message.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream != nil {
		return domain.ErrAlreadyRecording
	}

	stream, err := r.device.Open(ctx, PreferredEncodings)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return domain.ErrPermissionDenied
		}
		return fmt.Errorf("audio: opening capture device: %w", err)
	}

	r.stream = stream
	r.chunks = nil
	r.startedAt = r.now()
	r.collected = make(chan struct{})

	go func(stream domain.CaptureStream, done chan struct{}) {
		for chunk := range stream.Chunks() {
			r.mu.Lock()
			r.chunks = append(r.chunks, chunk)
			r.mu.Unlock()
		}
		close(done)
	}(stream, r.collected)

	return nil
}

// Recording reports whether a capture session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream != nil
}

// Duration returns how long the active recording has been running, or zero.
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream == nil {
		return 0
	}
	return r.now().Sub(r.startedAt)
}

// Stop finalizes the recording, releases the device deterministically and
// emits the assembled payload exactly once. Stopping when not recording is
// a no-op returning nil.
func (r *Recorder) Stop() (*domain.AudioPayload, error) {
	r.mu.Lock()
	stream := r.stream
	collected := r.collected
	r.stream = nil
	r.mu.Unlock()

	if stream == nil {
		return nil, nil
	}

	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("audio: releasing capture device: %w", err)
	}
	// The chunk channel closes once the device stops producing data.
	<-collected

	r.mu.Lock()
	chunks := r.chunks
	r.chunks = nil
	r.mu.Unlock()

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	raw := make([]byte, 0, total)
	for _, c := range chunks {
		raw = append(raw, c...)
	}

	return &domain.AudioPayload{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MIMEType: stream.MIMEType(),
	}, nil
}
