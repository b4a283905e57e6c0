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

import (
	"fmt"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
)

// Mode register bits.
const (
	ModeLowPass   = 0x10
	ModeBandPass  = 0x20
	ModeHighPass  = 0x40
	ModeVoice3Off = 0x80
)

// Routing bits of the RES/FILT register.
const (
	FiltVoice1 = 0x01
	FiltVoice2 = 0x02
	FiltVoice3 = 0x04
	FiltExtIn  = 0x08
)

// maximum number of cycles for one integrator step in ClockDelta(). the
// fixed point iteration of the filter loop is only stable for small steps
var maxStep = [chipmodel.NumModels]int{
	chipmodel.MOS6581: 2,
	chipmodel.MOS8580: 3,
}

// Filter is the SID filter and output stage.
type Filter struct {
	model  chipmodel.Model
	tables *ModelTables

	enabled bool

	// registers
	fc   uint16
	res  uint8
	filt uint8
	mode uint8
	vol  uint8

	// 0xf0 plus one bit for each of the voices and EXT IN
	voiceMask uint8

	// the resonance register selects gain table ~res
	divQ uint8

	// routing of inputs to the filter summer and to the mixer
	sum uint8
	mix uint8

	// bias of the 6581 VCR gate voltage
	vwBias int

	// (k*(Vdd - Vth) - Vw)^2/2 for the 6581 integrator
	vddtVw2 int

	// DAC current factor for the 8580 integrator
	nDAC int

	// voice and EXT IN voltages
	v1 int
	v2 int
	v3 int
	v4 int

	// filter node voltages and the integrator state
	vhp   int
	vbp   int
	vbpX  int
	vbpVc int
	vlp   int
	vlpX  int
	vlpVc int
}

// NewFilter is the preferred method of initialisation for the Filter type.
func NewFilter(model chipmodel.Model) (*Filter, error) {
	f := &Filter{
		enabled:   true,
		voiceMask: 0xff,
	}

	err := f.SetChipModel(model)
	if err != nil {
		return nil, err
	}

	f.Reset()

	return f, nil
}

// SetChipModel changes the chip model and the tables used by the filter.
// Returns an error if the tables for the model cannot be built, in which case
// the filter is unchanged.
func (f *Filter) SetChipModel(model chipmodel.Model) error {
	t, err := Tables(model)
	if err != nil {
		return err
	}

	f.model = model
	f.tables = t

	f.setW0()
	f.Input(0)

	return nil
}

// Reset the registers and the node voltages.
func (f *Filter) Reset() {
	f.fc = 0
	f.res = 0
	f.filt = 0
	f.mode = 0
	f.vol = 0

	f.vhp = 0
	f.vbp = 0
	f.vbpX = 0
	f.vbpVc = 0
	f.vlp = 0
	f.vlpX = 0
	f.vlpVc = 0

	f.setW0()
	f.setQ()
	f.setSumMix()
}

func (f *Filter) String() string {
	return fmt.Sprintf("fc=%03x res=%x filt=%x mode=%x vol=%x", f.fc, f.res, f.filt, f.mode>>4, f.vol)
}

// Enable or disable the filter. When disabled all voices go straight to the
// mixer.
func (f *Filter) Enable(enable bool) {
	f.enabled = enable
	f.setSumMix()
}

// SetVoiceMask mutes voices. Bits 0 to 2 are the voices and bit 3 is EXT IN.
// A clear bit removes the input from both the filter and the mixer.
func (f *Filter) SetVoiceMask(mask uint8) {
	f.voiceMask = 0xf0 | mask&0x0f
	f.setSumMix()
}

// AdjustBias changes the bias of the VCR gate voltage of the 6581. The value
// is in millivolts. Has no effect on the 8580.
func (f *Filter) AdjustBias(mV float64) {
	f.vwBias = int(mV / 1000.0 * float64(f.tables.VoN16))
	f.setW0()
}

// WriteFcLo sets the low three bits of the cutoff frequency.
func (f *Filter) WriteFcLo(v uint8) {
	f.fc = f.fc&0x7f8 | uint16(v&0x007)
	f.setW0()
}

// WriteFcHi sets the high eight bits of the cutoff frequency.
func (f *Filter) WriteFcHi(v uint8) {
	f.fc = uint16(v)<<3&0x7f8 | f.fc&0x007
	f.setW0()
}

// WriteResFilt sets the resonance (high nibble) and the routing of the voices
// and EXT IN through the filter (low nibble).
func (f *Filter) WriteResFilt(v uint8) {
	f.res = (v >> 4) & 0x0f
	f.setQ()

	f.filt = v & 0x0f
	f.setSumMix()
}

// WriteModeVol sets the filter mode and voice 3 disconnection (high nibble)
// and the master volume (low nibble).
func (f *Filter) WriteModeVol(v uint8) {
	f.mode = v & 0xf0
	f.setSumMix()

	f.vol = v & 0x0f
}

// the integrator resistance depends on the cutoff register
func (f *Filter) setW0() {
	if f.tables == nil {
		return
	}

	switch f.model {
	case chipmodel.MOS6581:
		vw := f.vwBias + int(f.tables.F0DAC[f.fc&fcMask])
		d := f.tables.KVddt - vw
		f.vddtVw2 = (d * d) >> 1
	case chipmodel.MOS8580:
		f.nDAC = f.tables.NDAC[f.fc&fcMask]
	}
}

func (f *Filter) setQ() {
	f.divQ = ^f.res & 0x0f
}

// the filter summer takes the routed voices and EXT IN. the mixer takes the
// remaining voices and the selected filter outputs. voice 3 is disconnected
// from the mixer by the 3OFF bit only if it is not routed through the filter
func (f *Filter) setSumMix() {
	if f.enabled {
		f.sum = f.filt & f.voiceMask
		f.mix = (f.mode&0x70 | (^(f.filt | (f.mode&ModeVoice3Off)>>5) & 0x0f)) & f.voiceMask
	} else {
		f.sum = 0x00
		f.mix = 0x0f & f.voiceMask
	}
}

// scale voice output to the filter input voltage
func (f *Filter) scaleVoice(v int) int {
	return clampIndex((v*f.tables.VoiceScaleS14)>>18 + f.tables.VoiceDC)
}

// Input sets the EXT IN signal. The 16 bit sample is scaled to three times the
// peak-to-peak range of a voice.
//
// The op-amp zero level is added to the input in place of the AC coupling
// capacitor of the real input. This makes the 8580 digi boost work without a
// separate DC input.
func (f *Filter) Input(sample int16) {
	f.v4 = clampIndex((int(sample)*f.tables.VoiceScaleS14*3)>>14 + int(f.tables.Mixer[0]))
}

// sum of the voltages routed to the filter and the offset of the summer table
// for that number of inputs
func (f *Filter) summerInput() (int, int) {
	vi := 0
	n := 0
	in := [4]int{f.v1, f.v2, f.v3, f.v4}
	for i := range in {
		if f.sum&(1<<i) != 0 {
			vi += in[i]
			n++
		}
	}
	return vi, summerOffset[n]
}

func (f *Filter) integrate(dt, vi int, vx, vc *int) int {
	if f.model == chipmodel.MOS6581 {
		return f.solveIntegrate6581(dt, vi, vx, vc)
	}
	return f.solveIntegrate8580(dt, vi, vx, vc)
}

// one step of the filter loop
func (f *Filter) step(dt, vi, offset int) {
	f.vlp = f.integrate(dt, f.vbp, &f.vlpX, &f.vlpVc)
	f.vbp = f.integrate(dt, f.vhp, &f.vbpX, &f.vbpVc)
	f.vhp = int(f.tables.Summer[offset+int(f.tables.Gain[f.divQ][f.vbp])+f.vlp+vi])
}

// Clock the filter by one cycle with the output of the three voices.
func (f *Filter) Clock(voice1, voice2, voice3 int) {
	f.v1 = f.scaleVoice(voice1)
	f.v2 = f.scaleVoice(voice2)
	f.v3 = f.scaleVoice(voice3)

	vi, offset := f.summerInput()
	f.step(1, vi, offset)
}

// ClockDelta clocks the filter by n cycles with the output of the three
// voices. The filter loop is stepped a few cycles at a time.
func (f *Filter) ClockDelta(n int, voice1, voice2, voice3 int) {
	f.v1 = f.scaleVoice(voice1)
	f.v2 = f.scaleVoice(voice2)
	f.v3 = f.scaleVoice(voice3)

	vi, offset := f.summerInput()

	dt := maxStep[f.model]
	for n > 0 {
		if n < dt {
			dt = n
		}
		f.step(dt, vi, offset)
		n -= dt
	}
}

// Output returns the output of the mixer after the master volume as a signed
// 16 bit value.
func (f *Filter) Output() int {
	vi := 0
	n := 0
	in := [7]int{f.v1, f.v2, f.v3, f.v4, f.vlp, f.vbp, f.vhp}
	for i := range in {
		if f.mix&(1<<i) != 0 {
			vi += in[i]
			n++
		}
	}

	return int(f.tables.Gain[f.vol][f.tables.Mixer[mixerOffset[n]+vi]]) - (1 << 15)
}

// Registers returns the values of the cutoff, resonance, routing, mode and
// volume registers.
func (f *Filter) Registers() (fc uint16, res uint8, filt uint8, mode uint8, vol uint8) {
	return f.fc, f.res, f.filt, f.mode >> 4, f.vol
}

// Model returns the current chip model.
func (f *Filter) Model() chipmodel.Model {
	return f.model
}
