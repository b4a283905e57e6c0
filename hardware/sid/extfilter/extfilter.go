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

// Package extfilter implements the RC filters between the SID audio output
// pin and the audio output of the computer.
//
// The low-pass stage (R = 10kOhm, C = 1000pF, w0 = 100000 rad/s, about
// 16kHz) removes high frequency noise. The high-pass stage (R = 1kOhm, C =
// 10uF, w0 = 100 rad/s, about 16Hz) removes the DC level of the SID output.
// Both stages are first order and are the same for both chip models.
package extfilter

import "fmt"

// OutputBits is the width of the value returned by Output().
const OutputBits = 20

// time constants assume a 1MHz clock. the filter state keeps 27 bits of
// signal accuracy at the cost of the accuracy of the cutoff frequencies
var (
	w0lp1S7  = fixedW0(100000, 7)
	w0hp1S17 = fixedW0(100, 17)
)

// w0 in rad/s for one cycle at 1MHz, as a fixed point value with shift bits
// of fraction
func fixedW0(w0 float64, shift uint) int {
	return int(w0*1.0e-6*float64(int(1)<<shift) + 0.5)
}

// number of cycles that can be stepped at once in ClockDelta()
const maxStep = 8

// Filter is the external filter.
type Filter struct {
	enabled bool

	// input scaled by 2^11
	vlp int
	vhp int
}

// NewFilter is the preferred method of initialisation for the Filter type.
// The filter is enabled.
func NewFilter() *Filter {
	return &Filter{enabled: true}
}

func (f *Filter) String() string {
	return fmt.Sprintf("vlp=%d vhp=%d enabled=%v", f.vlp, f.vhp, f.enabled)
}

// Reset clears the filter state.
func (f *Filter) Reset() {
	f.vlp = 0
	f.vhp = 0
}

// Enable or disable the filter. When disabled the input passes straight
// through to the output.
func (f *Filter) Enable(enable bool) {
	f.enabled = enable
}

// Enabled returns true if the filter is enabled.
func (f *Filter) Enabled() bool {
	return f.enabled
}

// Clock the filter by one cycle. The input is the 16 bit output of the SID
// mixer.
func (f *Filter) Clock(vi int) {
	if !f.enabled {
		f.vlp = vi << 11
		f.vhp = 0
		return
	}

	// Vlp = Vlp + w0lp*(Vi - Vlp)*dt
	// Vhp = Vhp + w0hp*(Vlp - Vhp)*dt
	dVlp := (w0lp1S7 * ((vi << 11) - f.vlp)) >> 7
	dVhp := (w0hp1S17 * (f.vlp - f.vhp)) >> 17
	f.vlp += dVlp
	f.vhp += dVhp
}

// ClockDelta clocks the filter by n cycles with a constant input.
func (f *Filter) ClockDelta(n int, vi int) {
	if !f.enabled {
		f.vlp = vi << 11
		f.vhp = 0
		return
	}

	dt := maxStep
	for n > 0 {
		if n < dt {
			dt = n
		}

		dVlp := ((w0lp1S7 * dt) >> 3) * ((vi << 11) - f.vlp) >> 4
		dVhp := ((w0hp1S17 * dt) >> 3) * (f.vlp - f.vhp) >> 14
		f.vlp += dVlp
		f.vhp += dVhp

		n -= dt
	}
}

// Output returns the filter output as a signed value of OutputBits width. The
// value saturates rather than overflowing.
func (f *Filter) Output() int {
	const half = 1 << (OutputBits - 1)

	vo := (f.vlp - f.vhp) >> 7
	if vo >= half {
		return half - 1
	}
	if vo < -half {
		return -half
	}
	return vo
}

// State of the filter.
type State struct {
	Vlp int32
	Vhp int32
}

// State returns the filter state.
func (f *Filter) State() State {
	return State{Vlp: int32(f.vlp), Vhp: int32(f.vhp)}
}

// SetState restores the filter state.
func (f *Filter) SetState(s State) {
	f.vlp = int(s.Vlp)
	f.vhp = int(s.Vhp)
}
