package audio

import "github.com/faiface/beep"

// envelope shapes a source streamer with the chime's gain curve:
// silence, linear ramp up to the target volume, hold, linear ramp down
// to silence ending exactly at the total length. The streamer also caps
// playback at the total length regardless of how long the source is.
type envelope struct {
	src     beep.Streamer
	pos     int
	total   int // samples
	fadeIn  int // samples
	fadeOut int // samples
	volume  float64
}

func newEnvelope(src beep.Streamer, total, fadeIn, fadeOut int, volume float64) *envelope {
	if fadeIn < 0 {
		fadeIn = 0
	}
	if fadeOut < 0 {
		fadeOut = 0
	}
	return &envelope{
		src:     src,
		total:   total,
		fadeIn:  fadeIn,
		fadeOut: fadeOut,
		volume:  volume,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}

	want := len(samples)
	if remaining := e.total - e.pos; remaining < want {
		want = remaining
	}

	n, ok = e.src.Stream(samples[:want])
	for i := 0; i < n; i++ {
		g := e.gainAt(e.pos + i)
		samples[i][0] *= g
		samples[i][1] *= g
	}
	e.pos += n

	return n, n > 0
}

func (e *envelope) Err() error {
	return e.src.Err()
}

func (e *envelope) gainAt(pos int) float64 {
	g := e.volume

	if e.fadeIn > 0 && pos < e.fadeIn {
		g = e.volume * float64(pos) / float64(e.fadeIn)
	}

	// Ramps can overlap on very short chimes; the quieter one wins.
	if e.fadeOut > 0 && pos >= e.total-e.fadeOut {
		down := e.volume * float64(e.total-pos) / float64(e.fadeOut)
		if down < g {
			g = down
		}
	}

	return g
}
