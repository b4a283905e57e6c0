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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophersid/player"
)

// the number of samples rendered between checks of the timer
const blockSize = 4096

// Result of a performance check.
type Result struct {
	Samples  int
	Duration time.Duration

	// the ratio of emulated time to real time
	Speed float64
}

func (r Result) String() string {
	return fmt.Sprintf("%.2fx real time (%d samples in %.2f seconds)", r.Speed, r.Samples, r.Duration.Seconds())
}

// Check the performance of the emulation by rendering samples from the
// player, which must already have been started, for the specified duration.
// The summary is written to output, which can be nil.
func Check(output io.Writer, profile Profile, p *player.Player, duration time.Duration) (Result, error) {
	var res Result

	buf := make([]int16, blockSize)

	runner := func() error {
		timesUp := time.After(duration)
		start := time.Now()

		for {
			select {
			case <-timesUp:
				res.Duration = time.Since(start)
				return nil
			default:
			}

			err := p.Render(buf)
			if err != nil {
				return err
			}
			res.Samples += len(buf)
		}
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return res, err
	}

	if res.Duration > 0 {
		emulated := float64(res.Samples) / float64(p.SampleRate())
		res.Speed = emulated / res.Duration.Seconds()
	}

	if output != nil {
		fmt.Fprintln(output, res.String())
	}

	return res, nil
}
