// Package audition plays a span of a sample table on the default audio
// device.
package audition

import (
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrNothingToPlay is returned for an empty span.
var ErrNothingToPlay = errors.New("nothing to play")

var (
	globalOtoCtx  *oto.Context
	globalOtoRate int
	otoOnce       sync.Once
	otoInitErr    error
)

// initOto opens the device once per process. oto allows a single context,
// so later calls keep the first sample rate.
func initOto(sampleRate int) (*oto.Context, int, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
			globalOtoRate = sampleRate
		}
	})
	return globalOtoCtx, globalOtoRate, otoInitErr
}

// output is the part of *oto.Player the Player drives.
type output interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// Player plays one buffer of samples.
type Player struct {
	reader   *pcmReader
	out      output
	rate     int
	done     chan struct{}
	doneOnce sync.Once
	mu       sync.Mutex
	closed   bool
}

// Play starts playing samples at sampleRate.
func Play(samples []float32, sampleRate int) (*Player, error) {
	if len(samples) == 0 {
		return nil, ErrNothingToPlay
	}
	ctx, rate, err := initOto(sampleRate)
	if err != nil {
		return nil, err
	}

	r := newPCMReader(samples)
	return start(r, ctx.NewPlayer(r), rate), nil
}

func start(r *pcmReader, out output, rate int) *Player {
	p := &Player{
		reader: r,
		out:    out,
		rate:   rate,
		done:   make(chan struct{}),
	}
	p.out.Play()

	go p.monitor()
	return p
}

func (p *Player) monitor() {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		finished := p.reader.Pos() >= p.reader.Len() && !p.out.IsPlaying()
		p.mu.Unlock()

		if finished {
			p.finish()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (p *Player) finish() {
	p.doneOnce.Do(func() { close(p.done) })
}

// Done returns a channel that closes when playback finishes or the player
// is closed.
func (p *Player) Done() <-chan struct{} { return p.done }

// Position returns the elapsed playback time.
func (p *Player) Position() time.Duration {
	return time.Duration(float64(p.reader.Pos()) / float64(p.rate) * float64(time.Second))
}

// Close stops playback and releases Done.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.out.Pause()
	p.out.Close()
	p.finish()
}
