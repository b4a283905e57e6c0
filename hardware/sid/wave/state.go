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

// State is the internal state of a Generator that is not visible through the
// registers. Register values are restored by writing to the registers before
// applying State.
type State struct {
	Accumulator        uint32
	ShiftRegister      uint32
	ShiftRegisterReset int32
	ShiftPipeline      uint8
	PulseOutput        uint16
	FloatingOutputTTL  int32
	WaveformOutput     uint16
	NoiseOutput        uint16
	OSC3               uint16
	TriSawPipeline     uint16
	MSBRising          bool
}

// State returns the internal state of the generator.
func (g *Generator) State() State {
	return State{
		Accumulator:        g.accumulator,
		ShiftRegister:      g.shiftRegister,
		ShiftRegisterReset: g.shiftRegisterReset,
		ShiftPipeline:      g.shiftPipeline,
		PulseOutput:        g.pulseOutput,
		FloatingOutputTTL:  g.floatingOutputTTL,
		WaveformOutput:     g.waveformOutput,
		NoiseOutput:        g.noiseOutput,
		OSC3:               g.osc3,
		TriSawPipeline:     g.triSawPipeline,
		MSBRising:          g.msbRising,
	}
}

// SetState restores the internal state of the generator. Values are masked to
// their valid bit widths.
func (g *Generator) SetState(s State) {
	g.accumulator = s.Accumulator & AccumulatorMask
	g.shiftRegister = s.ShiftRegister & ShiftRegisterMask
	g.shiftRegisterReset = s.ShiftRegisterReset
	g.shiftPipeline = s.ShiftPipeline
	g.pulseOutput = s.PulseOutput & 0xfff
	g.floatingOutputTTL = s.FloatingOutputTTL
	g.waveformOutput = s.WaveformOutput & 0xfff
	g.noiseOutput = s.NoiseOutput & 0xfff
	g.noNoiseOrNoiseOutput = g.noNoise | g.noiseOutput
	g.osc3 = s.OSC3 & 0xfff
	g.triSawPipeline = s.TriSawPipeline & 0xfff
	g.msbRising = s.MSBRising
}
