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

// Package dac models the R-2R resistor ladders used by the SID for its
// digital to analog converters. The waveform output (12 bits), the envelope
// output (8 bits) and the filter cutoff (11 bits) all go through a ladder of
// this type.
//
// On the 6581 the ratio between the 2R and R resistors is not exactly two and
// the ladder is missing its termination resistor. This makes the DAC output
// noticeably non-linear, with some codes producing a lower voltage than the
// code below them. The 8580 ladders are correctly proportioned and
// terminated.
package dac

import "math"

// MaxBits is the largest ladder supported by Build().
const MaxBits = 12

// Build returns a lookup table of 2^bits entries mapping a digital code to the
// ladder output, scaled so that an ideal ladder would produce the identity
// mapping (ie. the maximum output is 2^bits-1).
//
// The ratio argument is the value of 2R divided by R. The term argument says
// whether the ladder has a termination resistor.
func Build(bits int, ratio float64, term bool) []uint16 {
	if bits <= 0 || bits > MaxBits {
		return nil
	}

	vbit := make([]float64, bits)

	// voltage contribution of each individual bit in the ladder
	for setBit := 0; setBit < bits; setBit++ {
		vn := 1.0
		r := 1.0
		r2 := ratio * r

		// resistance of the tail of the ladder. an infinite value means the
		// termination resistor is missing
		rn := math.Inf(1)
		if term {
			rn = r2
		}

		// tail resistance by repeated parallel substitution
		bit := 0
		for ; bit < setBit; bit++ {
			if math.IsInf(rn, 1) {
				rn = r + r2
			} else {
				rn = r + r2*rn/(r2+rn)
			}
		}

		// source transformation for the bit voltage
		if math.IsInf(rn, 1) {
			rn = r2
		} else {
			rn = r2 * rn / (r2 + rn)
			vn = vn * rn / r2
		}

		// repeated source transformation from the tail to the output
		for bit++; bit < bits; bit++ {
			rn += r
			i := vn / rn
			rn = r2 * rn / (r2 + rn)
			vn = rn * i
		}

		vbit[setBit] = vn
	}

	// superposition of the bit voltages for every code
	tbl := make([]uint16, 1<<bits)
	scale := float64(int(1)<<bits - 1)
	for i := range tbl {
		vo := 0.0
		for j := 0; j < bits; j++ {
			if i&(1<<j) != 0 {
				vo += vbit[j]
			}
		}
		tbl[i] = uint16(scale*vo + 0.5)
	}

	return tbl
}

// Ladder parameters for each chip revision.
const (
	Ratio6581 = 2.20
	Term6581  = false
	Ratio8580 = 2.00
	Term8580  = true
)
