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

package tracker

import (
	"fmt"
	"math"
	"strings"

	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
)

// LookupWaveform converts the control register value into a text description
// of the selected waveforms. Combined waveforms are joined with a plus sign.
// The test bit is shown as "test" and an empty selection as "-".
func LookupWaveform(reg sid.VoiceRegisters) string {
	if reg.Control&wave.ControlTest == wave.ControlTest {
		return "test"
	}

	var s []string
	if reg.Control&wave.ControlNoise == wave.ControlNoise {
		s = append(s, "noise")
	}
	if reg.Control&wave.ControlPulse == wave.ControlPulse {
		s = append(s, "pulse")
	}
	if reg.Control&wave.ControlSawtooth == wave.ControlSawtooth {
		s = append(s, "saw")
	}
	if reg.Control&wave.ControlTriangle == wave.ControlTriangle {
		if reg.Control&wave.ControlRingMod == wave.ControlRingMod {
			s = append(s, "ring")
		} else {
			s = append(s, "tri")
		}
	}

	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, "+")
}

// MusicalNote is the name and octave of the note nearest to the frequency of a
// voice. For example, "A-4" or "C#3".
type MusicalNote string

// NoMusicalNote is used when the frequency is too low to be heard or the voice
// is silent.
const NoMusicalNote = MusicalNote("-")

var noteNames = [12]string{"C-", "C#", "D-", "D#", "E-", "F-", "F#", "G-", "G#", "A-", "A#", "B-"}

// the lowest frequency to be given a note name. just below C-0
const lowestNote = 16.0

// Frequency returns the frequency of the oscillator in Hz for the clock
// standard. The oscillator is a 24 bit accumulator.
func Frequency(standard clocks.Standard, freq uint16) float64 {
	return float64(freq) * float64(standard.Hz()) / float64(1<<24)
}

// LookupMusicalNote converts the current register values for a voice into a
// musical note. The note is relative to A-4 at 440Hz.
func LookupMusicalNote(standard clocks.Standard, reg sid.VoiceRegisters) MusicalNote {
	if reg.Control&0xf0 == 0 || reg.Control&wave.ControlTest != 0 {
		return NoMusicalNote
	}

	f := Frequency(standard, reg.Freq)
	if f < lowestNote {
		return NoMusicalNote
	}

	// semitones from C-0. A-4 is 57 semitones above C-0
	n := int(math.Round(12*math.Log2(f/440.0))) + 57
	if n < 0 {
		return NoMusicalNote
	}

	return MusicalNote(fmt.Sprintf("%s%d", noteNames[n%12], n/12))
}
