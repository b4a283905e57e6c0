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

// Package otoaudio outputs rendered samples through the oto audio library. It
// is an alternative to the sdlaudio package for hosts without SDL. The Audio
// type implements the render.Sink interface.
//
// Unlike SDL, oto pulls samples from a reader in its own goroutine. Rendered
// blocks are passed to the reader over a buffered channel and SetAudio()
// blocks while the channel is full.
package otoaudio

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/logger"
)

// the number of rendered blocks that can be waiting to be played
const queueLength = 4

// the amount of audio buffered by oto
const bufferSize = 50 * time.Millisecond

// Audio outputs sound using oto.
type Audio struct {
	ctx    *oto.Context
	player *oto.Player

	blocks chan []int16

	// the block currently being read by the oto player
	crit    sync.Mutex
	pending []int16

	paused bool
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(sampleRate int) (*Audio, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("otoaudio: %v", err)
	}
	<-ready

	aud := &Audio{
		ctx:    ctx,
		blocks: make(chan []int16, queueLength),
	}

	aud.player = ctx.NewPlayer(aud)
	aud.player.Play()

	logger.Logf(logger.Allow, "otoaudio", "frequency: %dHz", sampleRate)

	return aud, nil
}

// Read implements the io.Reader interface. It is called by the oto player.
// Silence is produced if there are no rendered samples waiting.
func (aud *Audio) Read(p []byte) (int, error) {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		if len(aud.pending) == 0 {
			select {
			case b := <-aud.blocks:
				aud.pending = b
			default:
			}
		}

		var s int16
		if len(aud.pending) > 0 {
			s = aud.pending[0]
			aud.pending = aud.pending[1:]
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(s))
	}

	return n, nil
}

// SetAudio implements the render.Sink interface.
func (aud *Audio) SetAudio(samples []int16) error {
	b := make([]int16, len(samples))
	copy(b, samples)
	aud.blocks <- b
	return nil
}

// Pause or resume playback.
func (aud *Audio) Pause(set bool) {
	aud.paused = set
	if set {
		aud.player.Pause()
	} else {
		aud.player.Play()
	}
}

// IsPaused returns true if playback is paused.
func (aud *Audio) IsPaused() bool {
	return aud.paused
}

func (aud *Audio) drained() bool {
	aud.crit.Lock()
	defer aud.crit.Unlock()
	return len(aud.blocks) == 0 && len(aud.pending) == 0
}

// EndMixing implements the render.Sink interface. The remaining rendered
// samples are played before the player is closed.
func (aud *Audio) EndMixing() error {
	if !aud.paused {
		for !aud.drained() {
			time.Sleep(bufferSize)
		}
	}

	err := aud.player.Close()
	if err != nil {
		return curated.Errorf("otoaudio: %v", err)
	}

	return nil
}
