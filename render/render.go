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

package render

import (
	"time"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/player"
)

// Sink implementations receive rendered samples.
type Sink interface {
	// SetAudio is called with every block of rendered samples. The slice is
	// reused between calls.
	SetAudio(samples []int16) error

	// EndMixing is called once all samples have been rendered.
	EndMixing() error
}

// Samples are rendered and passed to the sinks in blocks of this size.
const BlockSize = 1024

// Quit is the error returned by Run() when rendering is stopped by the quit
// channel.
const Quit = "render: quit"

// NumSamples returns the number of samples the player produces in the
// duration.
func NumSamples(p *player.Player, duration time.Duration) int {
	return int(duration * time.Duration(p.SampleRate()) / time.Second)
}

// Run renders the duration of audio from the player, which must already have
// been started. The quit channel can be nil. EndMixing() is called on all
// sinks even if rendering does not complete.
func Run(p *player.Player, duration time.Duration, quit <-chan bool, sinks ...Sink) (rerr error) {
	defer func() {
		for _, s := range sinks {
			if err := s.EndMixing(); err != nil && rerr == nil {
				rerr = curated.Errorf("render: %v", err)
			}
		}
	}()

	buf := make([]int16, BlockSize)
	remaining := NumSamples(p, duration)

	for remaining > 0 {
		select {
		case <-quit:
			return curated.Errorf(Quit)
		default:
		}

		n := BlockSize
		if n > remaining {
			n = remaining
		}

		if err := p.Render(buf[:n]); err != nil {
			return curated.Errorf("render: %v", err)
		}

		for _, s := range sinks {
			if err := s.SetAudio(buf[:n]); err != nil {
				return curated.Errorf("render: %v", err)
			}
		}

		remaining -= n
	}

	return nil
}
