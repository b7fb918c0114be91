// Package audio plays bell chimes with a fade envelope.
// The real implementation drives the machine's speaker via faiface/beep.
// The fake implementation allows testing without a sound device.
package audio

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output abstracts the sound device.
type Output interface {
	// Init prepares the device at the given sample rate.
	Init(sampleRate beep.SampleRate, bufferSize int) error

	// Play starts streaming. Streamers from earlier calls keep playing
	// unless Clear is called first.
	Play(s beep.Streamer)

	// Clear drops every streamer currently playing.
	Clear()
}

// SpeakerOutput is the real device, backed by the beep speaker.
type SpeakerOutput struct{}

func (SpeakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (SpeakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (SpeakerOutput) Clear() {
	speaker.Clear()
}
