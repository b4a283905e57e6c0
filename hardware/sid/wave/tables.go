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

package wave

import (
	"math"
	"sync"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/dac"
)

// TableLen is the number of entries in each waveform table. Waveform tables
// are indexed by the top 12 bits of the accumulator.
const TableLen = 1 << 12

// Tables are the read-only lookup tables for one chip model. Tables are shared
// between all generators using the same model and must never be written to
// after construction.
type Tables struct {
	Model chipmodel.Model

	// one table for each of the eight combinations of the triangle, sawtooth
	// and pulse selector bits. the noise selector bit is handled at output time
	// by masking with the noise output
	Wave [8][TableLen]uint16

	// the 12 bit waveform DAC
	DAC []uint16
}

// combination describes how the bits of the selected waveforms interact when
// more than one waveform is selected. the values are fitted to sampled chip
// output
type combination struct {
	// a bit is output as high if the weighted average of itself and its
	// neighbours exceeds this value
	threshold float64

	// the strength of the pulse signal, which acts as a virtual bit above the
	// most significant bit of the accumulator
	pulseStrength float64

	// the weight of a neighbouring bit falls off with these bases, for bits
	// above and below the bit being calculated respectively
	distanceAbove float64
	distanceBelow float64
}

// combinations for each model, indexed by the combined waveform: ST, PT, PS
// and PST
var combinations = [chipmodel.NumModels][4]combination{
	chipmodel.MOS6581: {
		{threshold: 0.862, pulseStrength: 0.0, distanceAbove: 10.896, distanceBelow: 2.508},
		{threshold: 0.933, pulseStrength: 2.071, distanceAbove: 1.392, distanceBelow: 3.037},
		{threshold: 0.860, pulseStrength: 2.435, distanceAbove: 1.108, distanceBelow: 1.201},
		{threshold: 0.984, pulseStrength: 1.145, distanceAbove: 1.102, distanceBelow: 1.303},
	},
	chipmodel.MOS8580: {
		{threshold: 0.956, pulseStrength: 0.0, distanceAbove: 1.224, distanceBelow: 1.872},
		{threshold: 0.924, pulseStrength: 1.228, distanceAbove: 1.603, distanceBelow: 2.012},
		{threshold: 0.911, pulseStrength: 1.592, distanceAbove: 1.403, distanceBelow: 1.517},
		{threshold: 0.941, pulseStrength: 1.311, distanceAbove: 1.118, distanceBelow: 1.624},
	},
}

// triangle output for the 12 bit phase value. the MSB selects whether the
// remaining bits are inverted
func triangle(phase int) uint16 {
	if phase&0x800 != 0 {
		return uint16((phase^0xfff)<<1) & 0xffe
	}
	return uint16(phase<<1) & 0xffe
}

// combined calculates the output of a combined waveform for the phase value.
// the pulse input is assumed to be high. when the pulse is low the output of
// any combination including pulse is zero and is handled at output time
func combined(cfg combination, waveform int, phase int) uint16 {
	var o [12]float64

	// sawtooth bits
	for i := 0; i < 12; i++ {
		if phase&(1<<i) != 0 {
			o[i] = 1.0
		}
	}

	if waveform&0x02 == 0 {
		// triangle bits if sawtooth is not selected
		top := phase&0x800 != 0
		for i := 11; i > 0; i-- {
			if top {
				o[i] = 1.0 - o[i-1]
			} else {
				o[i] = o[i-1]
			}
		}
		o[0] = 0.0
	} else if waveform&0x01 == 0x01 {
		// bottom bit is grounded through the triangle selector
		o[0] = 0.0
	}

	// weight of neighbouring bits by distance. index 12 is the bit itself,
	// lower indices are bits above it
	var dist [25]float64
	dist[12] = 1.0
	for i := 12; i > 0; i-- {
		dist[12-i] = 1.0 / math.Pow(cfg.distanceAbove, float64(i))
		dist[12+i] = 1.0 / math.Pow(cfg.distanceBelow, float64(i))
	}

	var out uint16
	for i := 0; i < 12; i++ {
		avg := 0.0
		n := 0.0
		for j := 0; j < 12; j++ {
			w := dist[i-j+12]
			avg += o[j] * w
			n += w
		}

		// pulse acts as bit 12
		if waveform > 0x04 {
			w := dist[i]
			avg += cfg.pulseStrength * w
			n += w
		}

		if (o[i]+avg/n)*0.5 > cfg.threshold {
			out |= 1 << i
		}
	}

	return out
}

// BuildTables creates new waveform tables for the chip model. Most callers
// should use TablesFor() which shares a single copy of the tables for each
// model.
func BuildTables(model chipmodel.Model) *Tables {
	t := &Tables{Model: model}

	cfg := combinations[model]

	for phase := 0; phase < TableLen; phase++ {
		// noise and pulse on their own pass through the mask unchanged
		t.Wave[0][phase] = 0xfff
		t.Wave[4][phase] = 0xfff

		t.Wave[1][phase] = triangle(phase)
		t.Wave[2][phase] = uint16(phase)

		t.Wave[3][phase] = combined(cfg[0], 0x03, phase)
		t.Wave[5][phase] = combined(cfg[1], 0x05, phase)
		t.Wave[6][phase] = combined(cfg[2], 0x06, phase)
		t.Wave[7][phase] = combined(cfg[3], 0x07, phase)
	}

	switch model {
	case chipmodel.MOS6581:
		t.DAC = dac.Build(12, dac.Ratio6581, dac.Term6581)
	default:
		t.DAC = dac.Build(12, dac.Ratio8580, dac.Term8580)
	}

	return t
}

var shared [chipmodel.NumModels]struct {
	once   sync.Once
	tables *Tables
}

// TablesFor returns the shared tables for the chip model, building them on
// first use. The model must be valid.
func TablesFor(model chipmodel.Model) *Tables {
	s := &shared[model]
	s.once.Do(func() {
		s.tables = BuildTables(model)
	})
	return s.tables
}
