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
	"fmt"
	"strings"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
)

// NumGenerators is the number of waveform generators in the sync ring.
const NumGenerators = 3

// SyncSource returns the index of the generator whose accumulator MSB drives
// hard sync and ring modulation for the generator at idx.
func SyncSource(idx int) int {
	return (idx + NumGenerators - 1) % NumGenerators
}

// SyncDest returns the index of the generator that the generator at idx
// synchronises.
func SyncDest(idx int) int {
	return (idx + 1) % NumGenerators
}

// bit widths of generator registers
const (
	AccumulatorMask   = 0xffffff
	ShiftRegisterMask = 0x7fffff
	accumulatorMSB    = 0x800000
	accumulatorBit19  = 0x080000
)

// number of cycles with the test bit held before the shift register has
// faded to all ones
const (
	shiftRegisterReset6581 = 0x8000
	shiftRegisterReset8580 = 0x950000
)

// number of cycles the DAC input stays charged after all waveforms have been
// deselected
const (
	floatingOutputTTL6581 = 182000
	floatingOutputTTL8580 = 4400000
)

// Control register bits.
const (
	ControlGate     = 0x01
	ControlSync     = 0x02
	ControlRingMod  = 0x04
	ControlTest     = 0x08
	ControlTriangle = 0x10
	ControlSawtooth = 0x20
	ControlPulse    = 0x40
	ControlNoise    = 0x80
)

// Generator is the oscillator of a single SID voice. A generator depends on
// one other generator for sync and ring modulation. That dependency is not
// stored in the generator, the caller provides the source generator when
// required. Use SyncSource() and SyncDest() to find the related generators.
type Generator struct {
	model  chipmodel.Model
	tables *Tables

	// table for the currently selected waveform
	wave *[TableLen]uint16

	accumulator uint32

	// registers
	freq     uint16
	pw       uint16
	waveform uint8
	test     bool
	ringMod  bool
	sync     bool

	// MSB went from low to high on the most recent clock
	msbRising bool

	// substitution of the accumulator MSB when ring modulation is set and
	// sawtooth is not selected
	ringMSBMask uint32

	// masks used to include the noise and pulse waveforms in the output only
	// when they are selected
	noNoise              uint16
	noPulse              uint16
	noNoiseOrNoiseOutput uint16

	noiseOutput    uint16
	pulseOutput    uint16
	waveformOutput uint16
	osc3           uint16

	// the 8580 delays triangle and sawtooth output by half a cycle
	triSawPipeline uint16

	shiftRegister      uint32
	shiftRegisterReset int32
	shiftPipeline      uint8

	floatingOutputTTL int32
}

// NewGenerator is the preferred method of initialisation for the Generator
// type.
func NewGenerator(model chipmodel.Model) *Generator {
	g := &Generator{}
	g.SetChipModel(model)
	g.Reset()
	return g
}

// SetChipModel changes the chip model of the generator. Register values and
// internal state are kept.
func (g *Generator) SetChipModel(model chipmodel.Model) {
	g.model = model
	g.tables = TablesFor(model)
	g.wave = &g.tables.Wave[g.waveform&0x07]
}

// Reset the generator to its power-up state.
func (g *Generator) Reset() {
	g.accumulator = 0
	g.freq = 0
	g.pw = 0
	g.msbRising = false
	g.waveform = 0
	g.test = false
	g.ringMod = false
	g.sync = false
	g.wave = &g.tables.Wave[0]
	g.ringMSBMask = 0
	g.noNoise = 0xfff
	g.noPulse = 0xfff
	g.pulseOutput = 0xfff
	g.resetShiftRegister()
	g.shiftPipeline = 0
	g.waveformOutput = 0
	g.osc3 = 0
	g.triSawPipeline = 0x555
	g.floatingOutputTTL = 0
}

func (g *Generator) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("freq=%04x pw=%03x wave=%x", g.freq, g.pw, g.waveform))
	if g.test {
		s.WriteString(" test")
	}
	if g.ringMod {
		s.WriteString(" ring")
	}
	if g.sync {
		s.WriteString(" sync")
	}
	s.WriteString(fmt.Sprintf(" acc=%06x", g.accumulator))
	return s.String()
}

// WriteFreqLo sets the low byte of the frequency register.
func (g *Generator) WriteFreqLo(v uint8) {
	g.freq = g.freq&0xff00 | uint16(v)
}

// WriteFreqHi sets the high byte of the frequency register.
func (g *Generator) WriteFreqHi(v uint8) {
	g.freq = uint16(v)<<8 | g.freq&0x00ff
}

// WritePWLo sets the low byte of the pulse width register.
func (g *Generator) WritePWLo(v uint8) {
	g.pw = g.pw&0xf00 | uint16(v)
}

// WritePWHi sets the high nibble of the pulse width register. The upper nibble
// of the value is ignored.
func (g *Generator) WritePWHi(v uint8) {
	g.pw = uint16(v&0x0f)<<8 | g.pw&0x0ff
}

// WriteControl sets the waveform selector and the test, ring and sync bits.
// The gate bit is not used by the waveform generator.
//
// The source argument is the sync source of this generator. It is needed
// because writing the control register updates the waveform output.
func (g *Generator) WriteControl(v uint8, source *Generator) {
	waveformPrev := g.waveform
	testPrev := g.test

	g.waveform = (v >> 4) & 0x0f
	g.test = v&ControlTest == ControlTest
	g.ringMod = v&ControlRingMod == ControlRingMod
	g.sync = v&ControlSync == ControlSync

	g.wave = &g.tables.Wave[g.waveform&0x07]

	// ring modulation substitutes the MSB only when sawtooth is not selected
	if v&ControlRingMod == ControlRingMod && v&ControlSawtooth == 0 {
		g.ringMSBMask = accumulatorMSB
	} else {
		g.ringMSBMask = 0
	}

	if g.waveform&0x08 == 0x08 {
		g.noNoise = 0x000
	} else {
		g.noNoise = 0xfff
	}
	g.noNoiseOrNoiseOutput = g.noNoise | g.noiseOutput

	if g.waveform&0x04 == 0x04 {
		g.noPulse = 0x000
	} else {
		g.noPulse = 0xfff
	}

	if !testPrev && g.test {
		// test bit rising. the accumulator is cleared and the shift register
		// starts fading towards all ones
		g.accumulator = 0
		g.shiftPipeline = 0
		if g.model == chipmodel.MOS6581 {
			g.shiftRegisterReset = shiftRegisterReset6581
		} else {
			g.shiftRegisterReset = shiftRegisterReset8580
		}
		g.pulseOutput = 0xfff
	} else if testPrev && !g.test {
		// test bit falling completes the second phase of a shift. with the
		// test bit having been high the feedback is the inverse of bit 17
		bit0 := (^g.shiftRegister >> 17) & 0x01
		g.shiftRegister = ((g.shiftRegister << 1) | bit0) & ShiftRegisterMask
		g.setNoiseOutput()
	}

	if g.waveform != 0 {
		g.SetOutput(source)
	} else if waveformPrev != 0 {
		// the DAC input floats
		if g.model == chipmodel.MOS6581 {
			g.floatingOutputTTL = floatingOutputTTL6581
		} else {
			g.floatingOutputTTL = floatingOutputTTL8580
		}
	}
}

// Clock advances the accumulator by one cycle.
func (g *Generator) Clock() {
	if g.test {
		if g.shiftRegisterReset > 0 {
			g.shiftRegisterReset--
			if g.shiftRegisterReset == 0 {
				g.resetShiftRegister()
			}
		}
		g.pulseOutput = 0xfff
		return
	}

	next := (g.accumulator + uint32(g.freq)) & AccumulatorMask
	bitsSet := ^g.accumulator & next
	g.accumulator = next

	g.msbRising = bitsSet&accumulatorMSB == accumulatorMSB

	// the shift register is clocked two cycles after bit 19 goes high
	if bitsSet&accumulatorBit19 == accumulatorBit19 {
		g.shiftPipeline = 2
	} else if g.shiftPipeline > 0 {
		g.shiftPipeline--
		if g.shiftPipeline == 0 {
			g.clockShiftRegister()
		}
	}
}

// ClockDelta advances the accumulator by n cycles. The two cycle delay of the
// shift register and the one cycle delay of the pulse comparison are only
// modelled by single cycle clocking.
func (g *Generator) ClockDelta(n int) {
	if n <= 0 {
		return
	}

	if g.test {
		if g.shiftRegisterReset > 0 {
			g.shiftRegisterReset -= int32(n)
			if g.shiftRegisterReset <= 0 {
				g.resetShiftRegister()
			}
		}
		g.pulseOutput = 0xfff
		return
	}

	// n*freq exceeds 32 bits for long batches
	delta := uint64(n) * uint64(g.freq)
	next := uint32((uint64(g.accumulator) + delta) & AccumulatorMask)
	bitsSet := ^g.accumulator & next
	g.accumulator = next

	g.msbRising = bitsSet&accumulatorMSB == accumulatorMSB

	// shift the noise register once for every time bit 19 goes high. bit 19
	// goes high every 0x100000 added to the accumulator
	shiftPeriod := uint64(0x100000)
	for delta > 0 {
		if delta < shiftPeriod {
			shiftPeriod = delta

			// check whether bit 19 went high in the final period
			prev := (g.accumulator - uint32(shiftPeriod)) & AccumulatorMask
			if shiftPeriod <= accumulatorBit19 {
				if prev&accumulatorBit19 != 0 || g.accumulator&accumulatorBit19 == 0 {
					break
				}
			} else {
				if prev&accumulatorBit19 != 0 && g.accumulator&accumulatorBit19 == 0 {
					break
				}
			}
		}

		g.clockShiftRegister()
		delta -= shiftPeriod
	}

	if uint16(g.accumulator>>12) >= g.pw {
		g.pulseOutput = 0xfff
	} else {
		g.pulseOutput = 0x000
	}
}

// Synchronize applies hard sync to the destination generator if the MSB of
// this generator went high on the most recent clock.
//
// The source argument is the sync source of this generator. A generator that
// is itself being synced on the same cycle as its MSB rises does not sync its
// destination.
func (g *Generator) Synchronize(dest *Generator, source *Generator) {
	if g.msbRising && dest.sync && !(g.sync && source.msbRising) {
		dest.accumulator = 0
	}
}

// SetOutput calculates the waveform output for the current cycle. Called once
// per cycle after synchronisation and after writes to the control register.
func (g *Generator) SetOutput(source *Generator) {
	if g.waveform != 0 {
		ix := (g.accumulator ^ (^source.accumulator & g.ringMSBMask)) >> 12

		g.waveformOutput = g.wave[ix] & (g.noPulse | g.pulseOutput) & g.noNoiseOrNoiseOutput

		// triangle and sawtooth output is delayed half a cycle on the 8580,
		// which shows up as a one cycle delay in OSC3
		if g.waveform&0x03 != 0 && g.model == chipmodel.MOS8580 {
			g.osc3 = g.triSawPipeline & (g.noPulse | g.pulseOutput) & g.noNoiseOrNoiseOutput
			g.triSawPipeline = g.wave[ix]
		} else {
			g.osc3 = g.waveformOutput
		}

		// on the 6581 combined waveforms can pull the accumulator MSB low when
		// sawtooth is selected
		if g.waveform&0x02 != 0 && g.waveform&0x0d != 0 && g.model == chipmodel.MOS6581 {
			g.accumulator &= uint32(g.waveformOutput)<<12 | 0x7fffff
		}

		// combined waveforms including noise write back into the shift register
		if g.waveform > 0x08 && !g.test && g.shiftPipeline != 1 {
			g.writeShiftRegister()
		}
	} else if g.floatingOutputTTL > 0 {
		g.floatingOutputTTL--
		if g.floatingOutputTTL == 0 {
			g.waveformOutput = 0
			g.osc3 = 0
		}
	}

	// the result of the pulse comparison is delayed one cycle
	if uint16(g.accumulator>>12) >= g.pw {
		g.pulseOutput = 0xfff
	} else {
		g.pulseOutput = 0x000
	}
}

// SetOutputDelta is the multi-cycle equivalent of SetOutput().
func (g *Generator) SetOutputDelta(n int, source *Generator) {
	if g.waveform != 0 {
		ix := (g.accumulator ^ (^source.accumulator & g.ringMSBMask)) >> 12
		g.waveformOutput = g.wave[ix] & (g.noPulse | g.pulseOutput) & g.noNoiseOrNoiseOutput
		g.osc3 = g.waveformOutput

		if g.waveform&0x02 != 0 && g.waveform&0x0d != 0 && g.model == chipmodel.MOS6581 {
			g.accumulator &= uint32(g.waveformOutput)<<12 | 0x7fffff
		}

		if g.waveform > 0x08 && !g.test {
			g.writeShiftRegister()
		}
	} else if g.floatingOutputTTL > 0 {
		g.floatingOutputTTL -= int32(n)
		if g.floatingOutputTTL <= 0 {
			g.floatingOutputTTL = 0
			g.waveformOutput = 0
			g.osc3 = 0
		}
	}
}

// Output returns the waveform output after the waveform DAC. The DAC is not
// linear on the 6581.
func (g *Generator) Output() uint16 {
	return g.tables.DAC[g.waveformOutput]
}

// Waveform returns the 12 bit digital waveform output.
func (g *Generator) Waveform() uint16 {
	return g.waveformOutput
}

// ReadOSC returns the top 8 bits of the waveform output, as seen by reading the
// OSC3 register.
func (g *Generator) ReadOSC() uint8 {
	return uint8(g.osc3 >> 4)
}

// Accumulator returns the current value of the 24 bit accumulator.
func (g *Generator) Accumulator() uint32 {
	return g.accumulator
}

// Freq returns the value of the 16 bit frequency register.
func (g *Generator) Freq() uint16 {
	return g.freq
}

// PW returns the value of the 12 bit pulse width register.
func (g *Generator) PW() uint16 {
	return g.pw
}

// Control returns the control register as last written, without the gate bit.
func (g *Generator) Control() uint8 {
	v := g.waveform << 4
	if g.test {
		v |= ControlTest
	}
	if g.ringMod {
		v |= ControlRingMod
	}
	if g.sync {
		v |= ControlSync
	}
	return v
}

// SyncEnabled returns true if the sync bit of the control register is set.
func (g *Generator) SyncEnabled() bool {
	return g.sync
}

// MSBRising returns true if the accumulator MSB went high on the most recent
// clock.
func (g *Generator) MSBRising() bool {
	return g.msbRising
}

// ShiftRegister returns the value of the 23 bit noise shift register.
func (g *Generator) ShiftRegister() uint32 {
	return g.shiftRegister
}

// CyclesToMSBToggle returns the number of cycles before the accumulator MSB
// changes state. Returns -1 if the frequency is zero.
func (g *Generator) CyclesToMSBToggle() int {
	if g.freq == 0 {
		return -1
	}

	var delta uint32
	if g.accumulator&accumulatorMSB == accumulatorMSB {
		delta = 0x1000000 - g.accumulator
	} else {
		delta = accumulatorMSB - g.accumulator
	}

	n := delta / uint32(g.freq)
	if delta%uint32(g.freq) != 0 {
		n++
	}
	return int(n)
}

func (g *Generator) clockShiftRegister() {
	bit0 := ((g.shiftRegister >> 22) ^ (g.shiftRegister >> 17)) & 0x01
	g.shiftRegister = ((g.shiftRegister << 1) | bit0) & ShiftRegisterMask
	g.setNoiseOutput()
}

// combined waveforms pull bits of the shift register low. a bit once cleared
// cannot be set again by this process
func (g *Generator) writeShiftRegister() {
	w := uint32(g.waveformOutput)
	g.shiftRegister &= ^uint32(1<<20|1<<18|1<<14|1<<11|1<<9|1<<5|1<<2|1<<0) |
		(w&0x800)<<9 |
		(w&0x400)<<8 |
		(w&0x200)<<5 |
		(w&0x100)<<3 |
		(w&0x080)<<2 |
		(w&0x040)>>1 |
		(w&0x020)>>3 |
		(w&0x010)>>4

	g.noiseOutput &= g.waveformOutput
	g.noNoiseOrNoiseOutput = g.noNoise | g.noiseOutput
}

func (g *Generator) resetShiftRegister() {
	g.shiftRegister = ShiftRegisterMask
	g.shiftRegisterReset = 0
	g.setNoiseOutput()
}

func (g *Generator) setNoiseOutput() {
	sr := g.shiftRegister
	g.noiseOutput = uint16((sr&0x100000)>>9 |
		(sr&0x040000)>>8 |
		(sr&0x004000)>>5 |
		(sr&0x000800)>>3 |
		(sr&0x000200)>>2 |
		(sr&0x000020)<<1 |
		(sr&0x000004)<<3 |
		(sr&0x000001)<<4)
	g.noNoiseOrNoiseOutput = g.noNoise | g.noiseOutput
}
