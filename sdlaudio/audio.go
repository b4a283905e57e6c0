// This file is part of Gophersid.
//
// Gophersid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophersid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophersid.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlaudio outputs rendered samples through an SDL audio device. The
// Audio type implements the render.Sink interface.
//
// Samples are queued with SDL_QueueAudio rather than with a callback. The
// player renders much faster than real time so SetAudio() blocks while the
// queue holds more than a small amount of audio.
package sdlaudio

import (
	"encoding/binary"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/logger"
)

// the number of samples in the device buffer. the precise value is not
// critical
const bufferLength = 1024

// the maximum amount of audio in the queue, in device buffers. more than this
// and SetAudio() will wait for the queue to drain
const maxQueued = 4

// Audio outputs sound using SDL.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// samples converted to bytes for queueing
	buffer []uint8

	// pulses every time a device buffer should have been consumed
	drained chan bool
	quit    chan bool

	paused bool
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(sampleRate int) (*Audio, error) {
	err := sdl.Init(sdl.INIT_AUDIO)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}

	aud := &Audio{
		drained: make(chan bool),
		quit:    make(chan bool),
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  uint16(bufferLength),
	}

	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}
	aud.spec = actualSpec

	logger.Logf(logger.Allow, "sdlaudio", "frequency: %dHz", aud.spec.Freq)
	logger.Logf(logger.Allow, "sdlaudio", "buffer size: %d samples", aud.spec.Samples)

	go func() {
		dur := time.Duration(bufferLength) * time.Second / time.Duration(sampleRate)
		tck := time.NewTicker(dur)
		defer tck.Stop()
		for {
			select {
			case <-tck.C:
				select {
				case aud.drained <- true:
				case <-aud.quit:
					return
				}
			case <-aud.quit:
				return
			}
		}
	}()

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// SetAudio implements the render.Sink interface.
func (aud *Audio) SetAudio(samples []int16) error {
	for sdl.GetQueuedAudioSize(aud.id) > uint32(maxQueued*bufferLength*2) {
		<-aud.drained
	}

	if cap(aud.buffer) < len(samples)*2 {
		aud.buffer = make([]uint8, len(samples)*2)
	}
	aud.buffer = aud.buffer[:len(samples)*2]

	for i, s := range samples {
		binary.LittleEndian.PutUint16(aud.buffer[i*2:], uint16(s))
	}

	err := sdl.QueueAudio(aud.id, aud.buffer)
	if err != nil {
		return curated.Errorf("sdlaudio: %v", err)
	}

	return nil
}

// Pause or resume the audio device. Any queued audio is kept.
func (aud *Audio) Pause(set bool) {
	aud.paused = set
	sdl.PauseAudioDevice(aud.id, set)
}

// IsPaused returns true if the audio device is paused.
func (aud *Audio) IsPaused() bool {
	return aud.paused
}

// EndMixing implements the render.Sink interface. The remaining queued audio
// is played before the device is closed.
func (aud *Audio) EndMixing() error {
	if !aud.paused {
		for sdl.GetQueuedAudioSize(aud.id) > 0 {
			<-aud.drained
		}
	}

	close(aud.quit)
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	sdl.Quit()

	return nil
}
