package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// FakeOutput is a test double that captures streamers instead of playing
// them through a device.
type FakeOutput struct {
	mu       sync.Mutex
	Inited   bool
	Rate     beep.SampleRate
	Playing  []beep.Streamer
	ClearOps int
}

func (f *FakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Inited = true
	f.Rate = sampleRate
	return nil
}

func (f *FakeOutput) Play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Playing = append(f.Playing, s)
}

func (f *FakeOutput) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearOps++
	f.Playing = nil
}

// Drain runs every captured streamer to completion, firing callbacks the
// way the real speaker would.
func (f *FakeOutput) Drain() {
	f.mu.Lock()
	playing := f.Playing
	f.Playing = nil
	f.mu.Unlock()

	buf := make([][2]float64, 512)
	for _, s := range playing {
		for {
			if _, ok := s.Stream(buf); !ok {
				break
			}
		}
	}
}
