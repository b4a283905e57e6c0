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

// Package clocks defines the values that describe the speed of the main clock
// of the host machine. The SID is clocked at the same rate as the CPU.
//
// The frame rate is the rate at which the play routine of a tune is called
// unless the tune uses the CIA timer.
package clocks

import (
	"strings"

	"github.com/jetsetilly/gophersid/curated"
)

// Sentinal error returned by FromString().
const (
	UnknownStandard = "clocks: unknown standard (%s)"
)

// Standard is the video standard of the host machine. The standard decides the
// speed of the clock.
type Standard int

// List of valid Standard values.
const (
	PAL Standard = iota
	NTSC
)

// Clock rates in Hz.
const (
	PALHz  = 985248
	NTSCHz = 1022727
)

// Number of cycles in one video frame.
const (
	PALFrame  = 63 * 312
	NTSCFrame = 65 * 263
)

func (s Standard) String() string {
	switch s {
	case PAL:
		return "PAL"
	case NTSC:
		return "NTSC"
	}
	return "unknown"
}

// Hz returns the clock rate of the standard.
func (s Standard) Hz() int {
	if s == NTSC {
		return NTSCHz
	}
	return PALHz
}

// CyclesPerFrame returns the number of CPU cycles in one video frame.
func (s Standard) CyclesPerFrame() int {
	if s == NTSC {
		return NTSCFrame
	}
	return PALFrame
}

// FrameRate returns the number of frames per second.
func (s Standard) FrameRate() float64 {
	return float64(s.Hz()) / float64(s.CyclesPerFrame())
}

// FromString converts a string to a Standard. The comparison is not case
// sensitive.
func FromString(s string) (Standard, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAL":
		return PAL, nil
	case "NTSC":
		return NTSC, nil
	}
	return PAL, curated.Errorf(UnknownStandard, s)
}
