package audio

import (
	"context"
	"sync"

	"github.com/mindflow/sanctuary/internal/domain"
)

// FakeDevice is an in-process capture device. It feeds scripted chunks and
// can simulate permission denial or unsupported encodings, standing in for
// a real microphone.
type FakeDevice struct {
	// DenyPermission makes Open fail like a user rejecting the prompt.
	DenyPermission bool
	// Supported restricts which encodings Open accepts; empty means all.
	Supported []string
	// Script is the sequence of chunks the stream will produce.
	Script [][]byte
}

func (d *FakeDevice) Open(_ context.Context, preferred []string) (domain.CaptureStream, error) {
	if d.DenyPermission {
		return nil, domain.ErrPermissionDenied
	}

	mime := ""
	for _, want := range preferred {
		if len(d.Supported) == 0 {
			mime = want
			break
		}
		for _, have := range d.Supported {
			if want == have {
				mime = want
				break
			}
		}
		if mime != "" {
			break
		}
	}
	if mime == "" {
		return nil, domain.ErrUnsupportedEncoding
	}

	s := &fakeStream{mime: mime, chunks: make(chan []byte, len(d.Script))}
	for _, c := range d.Script {
		s.chunks <- c
	}
	return s, nil
}

type fakeStream struct {
	mime   string
	chunks chan []byte
	once   sync.Once
}

func (s *fakeStream) MIMEType() string      { return s.mime }
func (s *fakeStream) Chunks() <-chan []byte { return s.chunks }

func (s *fakeStream) Close() error {
	s.once.Do(func() { close(s.chunks) })
	return nil
}

// NullOutput is a playback device that discards samples. The API server
// uses it: synthesized audio is returned to clients over HTTP, so nothing
// plays server-side, but playback lifecycle state still has to be tracked.
type NullOutput struct {
	mu      sync.Mutex
	started int
	stopped int
}

func (o *NullOutput) Start(_ []float64, _ int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
	return nil
}

func (o *NullOutput) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped++
	return nil
}

// Starts reports how many playbacks were started; used in tests.
func (o *NullOutput) Starts() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started
}
