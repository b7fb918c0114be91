package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Resolver maps asset ids to playable local files.
type Resolver interface {
	Resolve(id string) (string, error)
}

// Options carries the envelope configuration.
type Options struct {
	SampleRate beep.SampleRate
	FadeIn     time.Duration
	FadeOut    time.Duration
	Volume     float64 // target gain, 0..1
}

// Player plays one chime at a time. A new Play preempts the active
// session and releases its resources before starting the next one.
type Player struct {
	out     Output
	library Resolver
	opts    Options

	mu      sync.Mutex
	current *session

	// decode is swappable so tests can inject synthetic streams.
	decode func(path string) (beep.StreamSeekCloser, beep.Format, error)
}

// session is one active playback chain: the decoded source plus its
// release guard. At most one exists at any time.
type session struct {
	source  beep.StreamSeekCloser
	release sync.Once
}

func (s *session) close() {
	s.release.Do(func() {
		if err := s.source.Close(); err != nil {
			log.Printf("⚠️ Audio source close: %v", err)
		}
	})
}

func NewPlayer(out Output, library Resolver, opts Options) (*Player, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = 0.9
	}

	// Buffer of ~100ms keeps latency low without underruns.
	if err := out.Init(opts.SampleRate, opts.SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio init: %w", err)
	}

	return &Player{
		out:     out,
		library: library,
		opts:    opts,
		decode:  decodeFile,
	}, nil
}

// Play starts a chime. duration bounds the whole envelope; the fade-out
// ends exactly at duration after start. Errors leave no dangling session.
func (p *Player) Play(assetID string, duration time.Duration, volume float64) error {
	if duration <= 0 {
		return fmt.Errorf("invalid chime duration %v", duration)
	}
	if volume <= 0 || volume > 1 {
		volume = p.opts.Volume
	}

	path, err := p.library.Resolve(assetID)
	if err != nil {
		return fmt.Errorf("play %q: %w", assetID, err)
	}

	source, format, err := p.decode(path)
	if err != nil {
		return fmt.Errorf("play %q: %w", assetID, err)
	}

	var stream beep.Streamer = source
	if format.SampleRate != p.opts.SampleRate {
		stream = beep.Resample(4, format.SampleRate, p.opts.SampleRate, source)
	}

	env := newEnvelope(stream,
		p.opts.SampleRate.N(duration),
		p.opts.SampleRate.N(p.opts.FadeIn),
		p.opts.SampleRate.N(p.opts.FadeOut),
		volume,
	)

	sess := &session{source: source}

	p.mu.Lock()
	if p.current != nil {
		// No overlapping chimes: stop and release the prior session.
		p.out.Clear()
		p.current.close()
	}
	p.current = sess
	p.mu.Unlock()

	p.out.Play(beep.Seq(env, beep.Callback(func() {
		p.finish(sess)
	})))

	return nil
}

// Stop cancels the active session, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.out.Clear()
		p.current.close()
		p.current = nil
	}
}

// Active reports whether a session is currently playing.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// finish releases a completed session. Sessions preempted by a newer
// Play were already released; the guard on current keeps this from
// touching the wrong session.
func (p *Player) finish(sess *session) {
	p.mu.Lock()
	if p.current == sess {
		p.current = nil
	}
	p.mu.Unlock()
	sess.close()
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err := mp3.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, err
		}
		return stream, format, nil
	case ".wav":
		stream, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, err
		}
		return stream, format, nil
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}
