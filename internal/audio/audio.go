// Package audio presents the APU's mixed sample stream through
// ebiten/v2/audio's streaming player (spec §1: "Audio presentation ...
// consumes a stream of mixed APU samples tagged with CPU cycle counts" —
// an external collaborator, not part of the core's correctness surface).
package audio

import (
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is the output sample rate fed to ebiten's audio context. The
// APU runs at the CPU clock and already emits its buffered samples at
// this rate; Sink.Push does no resampling of its own.
const SampleRate = 44100

// bytesPerSample is 16-bit stereo PCM, ebiten's native player format.
const bytesPerSample = 4

// Sink accepts mixed APU samples and exposes them to ebiten's audio
// context as a streaming io.Reader, converting each pushed float32 sample
// in [-1,1] into interleaved 16-bit stereo PCM on the fly.
type Sink struct {
	mu  sync.Mutex
	buf []byte

	// maxBufferedBytes bounds how far the ring buffer may grow if the
	// audio callback falls behind the emulated machine, so a stalled
	// host audio device cannot grow this without bound.
	maxBufferedBytes int
}

// NewSink creates an empty Sink. bufferedFrames controls how much audio
// the ring buffer holds before Push starts dropping the oldest samples.
func NewSink(bufferedFrames int) *Sink {
	if bufferedFrames <= 0 {
		bufferedFrames = SampleRate / 4
	}
	return &Sink{maxBufferedBytes: bufferedFrames * bytesPerSample}
}

// Push appends one mixed APU sample (spec's console.AudioSample value) to
// the ring buffer as a 16-bit stereo PCM frame.
func (s *Sink) Push(value float32) {
	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	sample := int16(value * 32767)
	lo, hi := byte(sample), byte(sample>>8)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, lo, hi, lo, hi) // left, right (mono duplicated)
	if over := len(s.buf) - s.maxBufferedBytes; over > 0 {
		s.buf = s.buf[over:]
	}
}

// Read implements io.Reader for ebiten/v2/audio.Context.NewPlayer. It
// drains whatever PCM bytes are queued; if the emulator hasn't produced
// enough yet it returns silence rather than blocking, since RunFrame and
// the audio callback run on different cadences.
func (s *Sink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

var _ io.Reader = (*Sink)(nil)

// Player wraps an ebiten audio.Player bound to a Sink.
type Player struct {
	sink   *Sink
	player *audio.Player
}

// NewPlayer creates a streaming ebiten audio player reading from a fresh
// Sink. ctx is the process-wide ebiten audio.Context, which must be
// created with SampleRate.
func NewPlayer(ctx *audio.Context, bufferedFrames int) (*Player, error) {
	sink := NewSink(bufferedFrames)
	p, err := ctx.NewPlayer(sink)
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(0) // let ebiten pick its own internal latency buffer
	return &Player{sink: sink, player: p}, nil
}

// Push feeds one mixed APU sample into the player's ring buffer.
func (p *Player) Push(value float32) { p.sink.Push(value) }

// Start begins playback; ebiten pulls from the Sink as needed.
func (p *Player) Start() { p.player.Play() }

// Close stops playback and releases the underlying ebiten player.
func (p *Player) Close() error { return p.player.Close() }
