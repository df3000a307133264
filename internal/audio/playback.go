package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
)

// Player plays one decoded speech buffer at a time. Exclusivity across
// submissions is enforced by the orchestrator, which cancels the prior
// playback before starting a new one.
type Player struct {
	out domain.PlaybackDevice

	mu      sync.Mutex
	current *Playback
}

func NewPlayer(out domain.PlaybackDevice) *Player {
	return &Player{out: out}
}

// Playback is the cancel handle for one active playback.
type Playback struct {
	player *Player

	once    sync.Once
	timer   *time.Timer
	done    chan struct{}
	playing bool
	mu      sync.Mutex
}

// Play decodes the PCM buffer and begins playback. The returned handle
// stops playback immediately when cancelled; if it is never cancelled, the
// playing state still flips to false once the buffer's expected duration
// elapses.
func (p *Player) Play(pcm []byte) (*Playback, error) {
	samples := DecodePCM(pcm)
	if len(samples) == 0 {
		return nil, fmt.Errorf("audio: empty playback buffer")
	}

	if err := p.out.Start(samples, SampleRate); err != nil {
		return nil, fmt.Errorf("audio: starting playback: %w", err)
	}

	pb := &Playback{
		player:  p,
		done:    make(chan struct{}),
		playing: true,
	}
	pb.timer = time.AfterFunc(Duration(len(samples)), pb.finish)

	p.mu.Lock()
	p.current = pb
	p.mu.Unlock()

	return pb, nil
}

// Playing reports whether any playback is currently active.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return false
	}
	return p.current.Playing()
}

// Cancel stops playback and releases the device. Safe to invoke any number
// of times.
func (pb *Playback) Cancel() {
	pb.once.Do(func() {
		pb.timer.Stop()
		pb.stop()
	})
}

// finish runs when the expected duration elapses without cancellation.
func (pb *Playback) finish() {
	pb.once.Do(pb.stop)
}

func (pb *Playback) stop() {
	_ = pb.player.out.Stop()
	pb.mu.Lock()
	pb.playing = false
	pb.mu.Unlock()
	close(pb.done)
}

// Playing reports whether this playback is still audible.
func (pb *Playback) Playing() bool {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.playing
}

// Done is closed when playback completes or is cancelled.
func (pb *Playback) Done() <-chan struct{} {
	return pb.done
}
