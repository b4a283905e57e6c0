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

package sid_test

import (
	"math"
	"math/cmplx"
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gophersid/environment"
	"github.com/jetsetilly/gophersid/hardware/sid"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
	"github.com/jetsetilly/gophersid/test"
)

func newSID(t *testing.T, model chipmodel.Model) *sid.SID {
	t.Helper()
	s, err := sid.NewSID(nil, model)
	test.DemandSuccess(t, err)
	return s
}

func clock(s *sid.SID, n int) {
	for i := 0; i < n; i++ {
		s.Clock()
	}
}

// writes a short sequence of register values that exercises all three voices
// and the filter
func tune(s *sid.SID) {
	regs := []struct {
		addr  uint8
		value uint8
	}{
		{0x00, 0x45}, {0x01, 0x1d}, {0x02, 0x00}, {0x03, 0x08}, {0x05, 0x09}, {0x06, 0xa4},
		{0x07, 0x12}, {0x08, 0x0e}, {0x0c, 0x22}, {0x0d, 0xf8},
		{0x0e, 0x00}, {0x0f, 0x30}, {0x13, 0x00}, {0x14, 0xf0},
		{0x15, 0x03}, {0x16, 0x40}, {0x17, 0xf1}, {0x18, 0x1f},
		{0x04, 0x41}, {0x0b, 0x11}, {0x12, 0x81},
	}
	for _, r := range regs {
		s.Write(r.addr, r.value)
		s.Clock()
	}
}

func TestRegisterWrite(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	s.Write(sid.RegVoice2+0, 0x34)
	s.Write(sid.RegVoice2+1, 0x12)
	s.Write(sid.RegVoice2+2, 0xff)
	s.Write(sid.RegVoice2+3, 0xff)

	reg := s.VoiceRegisters(1)
	test.ExpectEquality(t, reg.Freq, uint16(0x1234))
	test.ExpectEquality(t, reg.PW, uint16(0xfff))
	test.ExpectEquality(t, s.Voice(1).Wave.Freq(), uint16(0x1234))

	// only the low five bits of the address are decoded
	s.Write(0x20|sid.RegVoice3, 0x99)
	test.ExpectEquality(t, s.VoiceRegisters(2).Freq, uint16(0x0099))
}

func TestWritePipeline(t *testing.T) {
	s := newSID(t, chipmodel.MOS8580)

	// the 8580 applies a write on the following cycle
	s.Write(sid.RegVoice1, 0x55)
	test.ExpectEquality(t, s.VoiceRegisters(0).Freq, uint16(0))
	s.Clock()
	test.ExpectEquality(t, s.VoiceRegisters(0).Freq, uint16(0x55))

	// a second write before the clock does not lose the first
	s.Write(sid.RegVoice1, 0x66)
	s.Write(sid.RegVoice1+1, 0x77)
	s.Clock()
	test.ExpectEquality(t, s.VoiceRegisters(0).Freq, uint16(0x7766))

	// the 6581 applies writes immediately
	s = newSID(t, chipmodel.MOS6581)
	s.Write(sid.RegVoice1, 0x55)
	test.ExpectEquality(t, s.VoiceRegisters(0).Freq, uint16(0x55))
}

func TestReadBus(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)

	// reading a write-only register returns the value last on the bus
	s.Write(sid.RegModeVol, 0x5a)
	test.ExpectEquality(t, s.Read(sid.RegVoice1), uint8(0x5a))
	test.ExpectEquality(t, s.Read(0x1f), uint8(0x5a))

	// the value fades from the bus
	s.ClockDelta(0x1fff)
	test.ExpectEquality(t, s.Read(sid.RegFCLo), uint8(0x5a))
	s.ClockDelta(1)
	test.ExpectEquality(t, s.Read(sid.RegFCLo), uint8(0x00))

	// reading a readable register puts its value on the bus
	s.SetPot(0x12, 0x34)
	test.ExpectEquality(t, s.Read(sid.RegPotX), uint8(0x12))
	test.ExpectEquality(t, s.Read(sid.RegVoice1), uint8(0x12))
	test.ExpectEquality(t, s.Read(sid.RegPotY), uint8(0x34))
}

func TestReadVoice3(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	s.Write(sid.RegVoice3+1, 0x10)
	s.Write(sid.RegVoice3+4, wave.ControlSawtooth|wave.ControlGate)

	// sawtooth output is the top of the accumulator. the fastest attack
	// steps the envelope every nine cycles
	clock(s, 0x100)
	test.ExpectEquality(t, s.Read(sid.RegOSC3), uint8(0x10))
	test.ExpectEquality(t, s.Read(sid.RegENV3), uint8(0x100/9))

	clock(s, 1)
	test.ExpectEquality(t, s.Read(sid.RegOSC3), uint8(0x10))
}

type tracker struct {
	voice []int
	reg   []sid.VoiceRegisters
}

func (tr *tracker) SIDTick(voice int, reg sid.VoiceRegisters) {
	tr.voice = append(tr.voice, voice)
	tr.reg = append(tr.reg, reg)
}

func TestTracker(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	tr := &tracker{}
	s.SetTracker(tr)

	s.Write(sid.RegVoice2+4, 0x21)
	s.Write(sid.RegModeVol, 0x0f)
	s.Write(sid.RegVoice3+5, 0x88)

	test.DemandEquality(t, len(tr.voice), 2)
	test.ExpectEquality(t, tr.voice[0], 1)
	test.ExpectEquality(t, tr.reg[0].Control, uint8(0x21))
	test.ExpectEquality(t, tr.voice[1], 2)
	test.ExpectEquality(t, tr.reg[1].AttackDecay, uint8(0x88))

	s.SetTracker(nil)
	s.Write(sid.RegVoice1, 0x01)
	test.ExpectEquality(t, len(tr.voice), 2)
}

func TestDeterminism(t *testing.T) {
	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		a := newSID(t, m)
		b := newSID(t, m)
		tune(a)
		tune(b)

		for i := 0; i < 20000; i++ {
			a.Clock()
			b.Clock()
			test.DemandEquality(t, a.Output(), b.Output(), m, i)
		}
	}
}

func TestClockDelta(t *testing.T) {
	a := newSID(t, chipmodel.MOS6581)
	b := newSID(t, chipmodel.MOS6581)

	for _, s := range []*sid.SID{a, b} {
		s.Write(sid.RegVoice1+0, 0x34)
		s.Write(sid.RegVoice1+1, 0x12)
		s.Write(sid.RegVoice2+0, 0x67)
		s.Write(sid.RegVoice2+1, 0x05)
		s.Write(sid.RegVoice3+1, 0x03)
		s.Write(sid.RegVoice2+4, wave.ControlTriangle|wave.ControlSync)
	}

	// hard sync happens on the same cycle whether the chip is clocked one
	// cycle at a time or in one go
	clock(a, 10000)
	b.ClockDelta(10000)

	for v := 0; v < 3; v++ {
		test.ExpectEquality(t, b.Voice(v).Wave.Accumulator(), a.Voice(v).Wave.Accumulator(), v)
	}
}

func TestClockDeltaNoise(t *testing.T) {
	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		a := newSID(t, m)
		b := newSID(t, m)

		for _, s := range []*sid.SID{a, b} {
			s.Write(sid.RegVoice1+0, 0xff)
			s.Write(sid.RegVoice1+1, 0xff)
			s.Write(sid.RegVoice1+4, wave.ControlNoise)
		}

		// no voice is a sync source so the whole batch is a single step
		clock(a, 70000)
		b.ClockDelta(70000)
		test.ExpectEquality(t, b.Voice(0).Wave.Accumulator(), a.Voice(0).Wave.Accumulator(), m)

		clock(a, 3)
		clock(b, 3)
		test.ExpectEquality(t, b.Voice(0).Wave.ShiftRegister(), a.Voice(0).Wave.ShiftRegister(), m)
	}
}

func TestState(t *testing.T) {
	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		a := newSID(t, m)
		tune(a)
		clock(a, 5000)

		// the restoring chip starts as the other model
		b := newSID(t, chipmodel.MOS6581+chipmodel.MOS8580-m)
		test.DemandSuccess(t, b.WriteState(a.ReadState()), m)
		test.ExpectEquality(t, b.Model(), m)
		test.ExpectEquality(t, b.ReadState(), a.ReadState(), m)

		for i := 0; i < 5000; i++ {
			a.Clock()
			b.Clock()
			test.DemandEquality(t, b.Output(), a.Output(), m, i)
		}
	}
}

func TestSnapshot(t *testing.T) {
	a := newSID(t, chipmodel.MOS8580)
	tune(a)
	clock(a, 1000)

	b := a.Snapshot()
	test.ExpectEquality(t, b.ReadState(), a.ReadState())

	// the snapshot is independent of the original
	a.Write(sid.RegModeVol, 0x00)
	clock(a, 1000)
	test.ExpectInequality(t, b.ReadState(), a.ReadState())
}

func TestOutputBits(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	tune(s)
	clock(s, 3000)

	o := s.Output()
	test.ExpectEquality(t, s.OutputBits(sid.OutputBits), o)
	test.ExpectEquality(t, s.OutputBits(sid.OutputBits+4), o<<4)

	v := s.OutputBits(16)
	test.ExpectSuccess(t, v >= -32768 && v <= 32767)
	test.ExpectEquality(t, v, o>>4)

	test.ExpectEquality(t, s.OutputBits(0), s.OutputBits(1))
}

// counts the upward zero crossings of the output, which for a simple
// waveform is the frequency of the tone
func TestTone(t *testing.T) {
	s := newSID(t, chipmodel.MOS8580)

	// 0x1d00 * 1MHz / 2^24 is 442.5Hz
	s.Write(sid.RegVoice1+1, 0x1d)
	s.Write(sid.RegVoice1+6, 0xf0)
	s.Write(sid.RegModeVol, 0x0f)
	s.Write(sid.RegVoice1+4, wave.ControlTriangle|wave.ControlGate)

	// wait for the DC level to be removed by the external filter
	clock(s, 100000)

	var crossings int
	prev := s.Output()
	for i := 0; i < 1000000; i++ {
		s.Clock()
		o := s.Output()
		if prev < 0 && o >= 0 {
			crossings++
		}
		prev = o
	}

	test.ExpectApproximate(t, crossings, 442, 0.02)
}

func TestDump(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	tune(s)

	w := &strings.Builder{}
	test.DemandSuccess(t, s.Dump(w))
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "MODEL: 6581\nFREQ: 1d45 0e12 3000\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "VOL: f\n"))
	test.ExpectSuccess(t, strings.Contains(s.Summary(), "1: 1d45 41"))
}

func TestApplyPreferences(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		os.Chdir(wd)
	})

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	s, err := sid.NewSID(env, chipmodel.MOS6581)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, env.Prefs.SID.Model.Set("8580"))
	test.DemandSuccess(t, env.Prefs.SID.VoiceMask.Set(0x03))
	test.DemandSuccess(t, s.ApplyPreferences())

	test.ExpectEquality(t, s.Model(), chipmodel.MOS8580)
	test.ExpectEquality(t, s.ReadState().VoiceMask, uint8(0x03))

	// a chip without an environment has no preferences to apply
	test.ExpectSuccess(t, newSID(t, chipmodel.MOS6581).ApplyPreferences())
}

func TestPot(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	test.ExpectEquality(t, s.Read(sid.RegPotX), uint8(0xff))
	test.ExpectEquality(t, s.Read(sid.RegPotY), uint8(0xff))

	s.SetPot(0x12, 0x34)
	test.ExpectEquality(t, s.Read(sid.RegPotX), uint8(0x12))
	test.ExpectEquality(t, s.Read(sid.RegPotY), uint8(0x34))

	// the pot value is left on the bus
	test.ExpectEquality(t, s.Read(0x00), uint8(0x34))
}

func TestVoiceMask(t *testing.T) {
	s := newSID(t, chipmodel.MOS6581)
	test.ExpectEquality(t, s.ReadState().VoiceMask, uint8(0x0f))

	s.SetVoiceMask(0x13)
	test.ExpectEquality(t, s.ReadState().VoiceMask, uint8(0x03))
}

func TestDigiBoost(t *testing.T) {
	output := func(model chipmodel.Model, boost bool) int {
		s := newSID(t, model)
		s.SetDigiBoost(boost)
		s.Write(0x18, 0x0f)
		clock(s, 1000)
		return s.Output()
	}

	test.ExpectInequality(t, output(chipmodel.MOS8580, true), output(chipmodel.MOS8580, false))

	// no effect on the 6581
	test.ExpectEquality(t, output(chipmodel.MOS6581, true), output(chipmodel.MOS6581, false))
}

func TestInput(t *testing.T) {
	output := func(sample int16) int {
		s := newSID(t, chipmodel.MOS6581)
		s.Write(0x18, 0x0f)
		s.Input(sample)
		clock(s, 1000)
		return s.Output()
	}
	test.ExpectInequality(t, output(10000), output(0))
}

func TestFilterBias(t *testing.T) {
	output := func(mV float64) int {
		s := newSID(t, chipmodel.MOS6581)
		s.AdjustFilterBias(mV)
		tune(s)
		clock(s, 5000)
		return s.Output()
	}
	test.ExpectInequality(t, output(500), output(0))
}

// in place radix-2 FFT. the length of x must be a power of two
func fft(x []complex128) {
	n := len(x)

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := cmplx.Rect(1, -2*math.Pi*float64(k)/float64(size))
				a := x[start+k]
				b := x[start+k+half] * w
				x[start+k] = a + b
				x[start+k+half] = a - b
			}
		}
	}
}

func TestTriangleSpectrum(t *testing.T) {
	const (
		numSamples = 1 << 16
		stride     = 16
	)

	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		s := newSID(t, m)
		s.Write(sid.RegVoice1+0, 0x00)
		s.Write(sid.RegVoice1+1, 0x10)
		s.Write(sid.RegVoice1+5, 0x00)
		s.Write(sid.RegVoice1+6, 0xf0)
		s.Write(sid.RegModeVol, 0x0f)
		s.Write(sid.RegVoice1+4, wave.ControlTriangle|wave.ControlGate)

		// wait for the DC level to be removed by the external filter
		clock(s, 100000)

		// a frequency of 0x1000 has a period of 2^24/0x1000 = 4096 cycles.
		// the samples cover 2^20 cycles so the tone is 256 whole periods
		x := make([]complex128, numSamples)
		for i := range x {
			clock(s, stride)
			x[i] = complex(float64(s.Output()), 0)
		}

		var mean complex128
		for _, v := range x {
			mean += v
		}
		mean /= numSamples
		for i := range x {
			x[i] -= mean
		}

		fft(x)

		peak := 1
		for b := 1; b < numSamples/2; b++ {
			if cmplx.Abs(x[b]) > cmplx.Abs(x[peak]) {
				peak = b
			}
		}

		expected := numSamples * stride / 4096
		test.ExpectEquality(t, peak, expected, m)
	}
}

// a DC level on voice 1 routed through the low pass filter with the minimum
// cutoff frequency settles without oscillating
func TestLowPassSettle(t *testing.T) {
	// the fixed point integrator allows reversals of a couple of LSBs at 16
	// bits on the way to the final level
	const tolerance = 4

	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		s := newSID(t, m)
		s.EnableExternalFilter(false)

		// zero frequency with the test bit held gives a constant waveform
		s.Write(sid.RegVoice1+0, 0x00)
		s.Write(sid.RegVoice1+1, 0x00)
		s.Write(sid.RegVoice1+5, 0x00)
		s.Write(sid.RegVoice1+6, 0xf0)
		s.Write(sid.RegVoice1+4, wave.ControlTriangle|wave.ControlTest)
		s.Write(sid.RegFCLo, 0x00)
		s.Write(sid.RegFCHi, 0x00)
		s.Write(sid.RegResFilt, 0x01)
		s.Write(sid.RegModeVol, 0x1f)

		// the filter settles with the envelope at zero
		clock(s, 200000)
		start := s.OutputBits(16)

		// the gate raises the envelope and the DC level on voice 1
		s.Write(sid.RegVoice1+4, wave.ControlTriangle|wave.ControlTest|wave.ControlGate)

		out := make([]int, 300000)
		for i := range out {
			s.Clock()
			out[i] = s.OutputBits(16)
		}
		end := out[len(out)-1]

		d := end - start
		test.DemandSuccess(t, d > 256 || d < -256, m, start, end)

		prev := start
		for i, o := range out {
			if d > 0 {
				test.DemandSuccess(t, o >= prev-tolerance, m, i, prev, o)
			} else {
				test.DemandSuccess(t, o <= prev+tolerance, m, i, prev, o)
			}
			prev = o
		}

		for i := len(out) - 10000; i < len(out); i++ {
			test.DemandSuccess(t, out[i] >= end-tolerance && out[i] <= end+tolerance, m, i)
		}
	}
}
