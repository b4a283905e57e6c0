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

package filter

import "github.com/jetsetilly/gophersid/hardware/sid/chipmodel"

// electrical parameters of a chip model. voltages are in volts
type params struct {
	// op-amp transfer curve as (vi, vo) pairs, in order of ascending vi. the
	// first and last points are repeated to straighten the ends of the
	// interpolated curve
	opampVoltage []point

	// peak-to-peak voltage of a single voice and the DC level it rides on
	voiceVoltageRange float64
	voiceDCVoltage    float64

	// integrator capacitor
	c float64

	vdd  float64
	vth  float64
	ut   float64
	k    float64
	uCox float64

	// 6581 integrator. width/length ratios of the VCR and snake transistors
	wlVCR   float64
	wlSnake float64

	// 6581 cutoff DAC
	dacZero   float64
	dacScale  float64
	dac2RDivR float64
	dacTerm   bool

	// 8580 integrator. the gate voltage of the transistor array and the
	// width/length ratio of the smallest transistor in the array
	vref      float64
	wlDACUnit float64
}

var modelParams = [chipmodel.NumModels]params{
	chipmodel.MOS6581: {
		opampVoltage: []point{
			{0.81, 10.31}, // approximate start of actual range
			{0.81, 10.31}, // repeated point
			{2.40, 10.31},
			{2.60, 10.30},
			{2.70, 10.29},
			{2.80, 10.26},
			{2.90, 10.17},
			{3.00, 10.04},
			{3.10, 9.83},
			{3.20, 9.58},
			{3.30, 9.32},
			{3.50, 8.69},
			{3.70, 8.00},
			{4.00, 6.89},
			{4.40, 5.21},
			{4.54, 4.54}, // working point (vi = vo)
			{4.60, 4.19},
			{4.80, 3.00},
			{4.90, 2.30}, // change of curvature
			{4.95, 2.03},
			{5.00, 1.88},
			{5.05, 1.77},
			{5.10, 1.69},
			{5.20, 1.58},
			{5.40, 1.44},
			{5.60, 1.33},
			{5.80, 1.26},
			{6.00, 1.21},
			{6.40, 1.12},
			{7.00, 1.02},
			{7.50, 0.97},
			{8.50, 0.89},
			{10.00, 0.81},
			{10.31, 0.81}, // approximate end of actual range
			{10.31, 0.81}, // repeated end point
		},
		voiceVoltageRange: 1.5,
		voiceDCVoltage:    5.0,
		c:                 470e-12,
		vdd:               12.18,
		vth:               1.31,
		ut:                26.0e-3,
		k:                 1.0,
		uCox:              20e-6,
		wlVCR:             9.0 / 1.0,
		wlSnake:           1.0 / 115.0,
		dacZero:           6.65,
		dacScale:          2.63,
		dac2RDivR:         2.20,
		dacTerm:           false,
	},
	chipmodel.MOS8580: {
		opampVoltage: []point{
			{1.30, 8.91}, // approximate start of actual range
			{1.30, 8.91}, // repeated end point
			{4.76, 8.91},
			{4.77, 8.90},
			{4.78, 8.88},
			{4.785, 8.86},
			{4.79, 8.80},
			{4.795, 8.60},
			{4.80, 8.25},
			{4.805, 7.50},
			{4.81, 6.10},
			{4.815, 4.05}, // change of curvature
			{4.82, 2.27},
			{4.825, 1.65},
			{4.83, 1.55},
			{4.84, 1.47},
			{4.85, 1.43},
			{4.87, 1.37},
			{4.90, 1.34},
			{5.00, 1.30},
			{5.10, 1.30},
			{8.91, 1.30}, // approximate end of actual range
			{8.91, 1.30}, // repeated end point
		},
		voiceVoltageRange: 1.0,
		voiceDCVoltage:    4.75,
		c:                 22e-9,
		vdd:               9.09,
		vth:               0.80,
		ut:                26.0e-3,
		k:                 1.0,
		uCox:              55e-6,
		dac2RDivR:         2.00,
		dacTerm:           true,
		vref:              4.76 * 1.5,
		wlDACUnit:         0.00615,
	},
}
