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

package wave_test

import (
	"reflect"
	"testing"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
	"github.com/jetsetilly/gophersid/test"
)

func setFreq(g *wave.Generator, freq uint16) {
	g.WriteFreqLo(uint8(freq))
	g.WriteFreqHi(uint8(freq >> 8))
}

func setPW(g *wave.Generator, pw uint16) {
	g.WritePWLo(uint8(pw))
	g.WritePWHi(uint8(pw >> 8))
}

func TestRegisters(t *testing.T) {
	g := wave.NewGenerator(chipmodel.MOS6581)
	setFreq(g, 0x1234)
	setPW(g, 0xf987)
	test.ExpectEquality(t, g.Freq(), uint16(0x1234))
	test.ExpectEquality(t, g.PW(), uint16(0x987))

	g.WriteControl(0x47, g)
	test.ExpectEquality(t, g.Control(), uint8(0x46))
	test.ExpectSuccess(t, g.SyncEnabled())
}

func TestSawtooth(t *testing.T) {
	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		g := wave.NewGenerator(m)
		src := wave.NewGenerator(m)
		setFreq(g, 0x1000)
		g.WriteControl(wave.ControlSawtooth, src)

		for i := 1; i <= 100; i++ {
			g.Clock()
			g.SetOutput(src)
			acc := uint32(i*0x1000) & wave.AccumulatorMask
			test.ExpectEquality(t, g.Accumulator(), acc, m, i)
			test.ExpectEquality(t, g.Waveform(), uint16(acc>>12), m, i)
		}
	}
}

func TestTrianglePeriod(t *testing.T) {
	g := wave.NewGenerator(chipmodel.MOS8580)
	src := wave.NewGenerator(chipmodel.MOS8580)
	setFreq(g, 0x1000)
	g.WriteControl(wave.ControlTriangle, src)

	var lo, hi uint16 = 0xfff, 0
	first := g.Waveform()

	// a frequency of 0x1000 completes one cycle of the 24 bit accumulator in
	// 4096 cycles
	for i := 0; i < 4096; i++ {
		g.Clock()
		g.SetOutput(src)
		w := g.Waveform()
		if w < lo {
			lo = w
		}
		if w > hi {
			hi = w
		}
	}

	test.ExpectEquality(t, g.Accumulator(), uint32(0))
	test.ExpectEquality(t, g.Waveform(), first)
	test.ExpectEquality(t, lo, uint16(0))
	test.ExpectEquality(t, hi, uint16(0xffe))
}

func TestPulseWidth(t *testing.T) {
	g := wave.NewGenerator(chipmodel.MOS8580)
	src := wave.NewGenerator(chipmodel.MOS8580)
	setFreq(g, 0x1000)
	setPW(g, 0x800)
	g.WriteControl(wave.ControlPulse, src)

	high := 0
	for i := 0; i < 4096; i++ {
		g.Clock()
		g.SetOutput(src)
		switch g.Waveform() {
		case 0xfff:
			high++
		case 0x000:
		default:
			t.Fatalf("unexpected pulse output %03x", g.Waveform())
		}
	}

	test.ExpectEquality(t, high, 2048)
}

func TestTestBit(t *testing.T) {
	g := wave.NewGenerator(chipmodel.MOS6581)
	src := wave.NewGenerator(chipmodel.MOS6581)
	setFreq(g, 0x1000)
	g.WriteControl(wave.ControlSawtooth, src)

	for i := 0; i < 10; i++ {
		g.Clock()
	}
	test.ExpectEquality(t, g.Accumulator(), uint32(0xa000))

	// the test bit clears the accumulator and holds it at zero
	g.WriteControl(wave.ControlSawtooth|wave.ControlTest, src)
	test.ExpectEquality(t, g.Accumulator(), uint32(0))
	for i := 0; i < 10; i++ {
		g.Clock()
	}
	test.ExpectEquality(t, g.Accumulator(), uint32(0))

	g.WriteControl(wave.ControlSawtooth, src)
	g.Clock()
	test.ExpectEquality(t, g.Accumulator(), uint32(0x1000))
}

func TestNoise(t *testing.T) {
	g := wave.NewGenerator(chipmodel.MOS6581)
	src := wave.NewGenerator(chipmodel.MOS6581)

	// the shift register starts as all ones so all noise output bits are set
	g.WriteControl(wave.ControlNoise, src)
	test.ExpectEquality(t, g.ShiftRegister(), uint32(wave.ShiftRegisterMask))
	test.ExpectEquality(t, g.Waveform(), uint16(0xff0))
	test.ExpectEquality(t, g.ReadOSC(), uint8(0xff))

	setFreq(g, 0xffff)
	for i := 0; i < 1000; i++ {
		g.Clock()
		g.SetOutput(src)
	}
	test.ExpectInequality(t, g.ShiftRegister(), uint32(wave.ShiftRegisterMask))

	// the shift register fades back to all ones while the test bit is held
	g.WriteControl(wave.ControlNoise|wave.ControlTest, src)
	for i := 0; i < 0x8000; i++ {
		g.Clock()
	}
	test.ExpectEquality(t, g.ShiftRegister(), uint32(wave.ShiftRegisterMask))

	// releasing the test bit shifts in the inverse of bit 17
	g.WriteControl(wave.ControlNoise, src)
	test.ExpectEquality(t, g.ShiftRegister(), uint32(0x7ffffe))
}

func TestNoiseReset8580(t *testing.T) {
	g := wave.NewGenerator(chipmodel.MOS8580)
	src := wave.NewGenerator(chipmodel.MOS8580)
	setFreq(g, 0xffff)
	g.WriteControl(wave.ControlNoise, src)
	for i := 0; i < 1000; i++ {
		g.Clock()
		g.SetOutput(src)
	}
	sr := g.ShiftRegister()

	// the 8580 takes much longer than the 6581 for the register to fade
	g.WriteControl(wave.ControlNoise|wave.ControlTest, src)
	g.ClockDelta(0x8000)
	test.ExpectEquality(t, g.ShiftRegister(), sr)
	g.ClockDelta(0x950000)
	test.ExpectEquality(t, g.ShiftRegister(), uint32(wave.ShiftRegisterMask))
}

func TestSync(t *testing.T) {
	var g [wave.NumGenerators]*wave.Generator
	for i := range g {
		g[i] = wave.NewGenerator(chipmodel.MOS6581)
	}

	setFreq(g[0], 0x4000)
	setFreq(g[1], 0x0100)
	g[0].WriteControl(wave.ControlTriangle, g[wave.SyncSource(0)])
	g[1].WriteControl(wave.ControlTriangle|wave.ControlSync, g[wave.SyncSource(1)])

	test.ExpectEquality(t, g[0].CyclesToMSBToggle(), 512)
	test.ExpectEquality(t, g[2].CyclesToMSBToggle(), -1)

	for c := 1; c <= 512; c++ {
		for i := range g {
			g[i].Clock()
		}
		for i := range g {
			g[i].Synchronize(g[wave.SyncDest(i)], g[wave.SyncSource(i)])
		}
		if c < 512 {
			test.ExpectEquality(t, g[1].Accumulator(), uint32(c*0x100))
		}
	}

	test.ExpectSuccess(t, g[0].MSBRising())
	test.ExpectEquality(t, g[1].Accumulator(), uint32(0))
}

func TestSyncSameCycle(t *testing.T) {
	var g [wave.NumGenerators]*wave.Generator
	for i := range g {
		g[i] = wave.NewGenerator(chipmodel.MOS8580)
	}

	// voice 1 syncs voice 2 and voice 2 syncs voice 3. the MSBs of voice 1 and
	// voice 2 rise on the same cycle
	setFreq(g[0], 0x4000)
	setFreq(g[1], 0x4000)
	setFreq(g[2], 0x0100)
	g[1].WriteControl(wave.ControlSync, g[0])
	g[2].WriteControl(wave.ControlSync, g[1])

	for c := 1; c <= 512; c++ {
		for i := range g {
			g[i].Clock()
		}
		for i := range g {
			g[i].Synchronize(g[wave.SyncDest(i)], g[wave.SyncSource(i)])
		}
	}

	// voice 2 has been synced but because it was being synced it did not
	// sync voice 3
	test.ExpectEquality(t, g[1].Accumulator(), uint32(0))
	test.ExpectEquality(t, g[2].Accumulator(), uint32(512*0x100))
}

func TestClockDelta(t *testing.T) {
	a := wave.NewGenerator(chipmodel.MOS6581)
	b := wave.NewGenerator(chipmodel.MOS6581)
	setFreq(a, 0x1234)
	setFreq(b, 0x1234)

	for i := 0; i < 5000; i++ {
		a.Clock()
	}
	b.ClockDelta(5000)

	test.ExpectEquality(t, a.Accumulator(), b.Accumulator())
	test.ExpectEquality(t, b.Accumulator(), uint32(5000*0x1234)&wave.AccumulatorMask)
}

// long batches at high frequencies shift the noise register the same number
// of times as single cycle clocking
func TestClockDeltaNoise(t *testing.T) {
	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		for _, n := range []int{1000, 65537, 70000, 100000} {
			a := wave.NewGenerator(m)
			b := wave.NewGenerator(m)
			src := wave.NewGenerator(m)
			for _, g := range []*wave.Generator{a, b} {
				setFreq(g, 0xffff)
				g.WriteControl(wave.ControlNoise, src)
			}

			for i := 0; i < n; i++ {
				a.Clock()
			}
			b.ClockDelta(n)
			test.ExpectEquality(t, b.Accumulator(), a.Accumulator(), m, n)

			// single cycle clocking delays the shift by two cycles
			for i := 0; i < 3; i++ {
				a.Clock()
				b.Clock()
			}
			test.ExpectEquality(t, b.ShiftRegister(), a.ShiftRegister(), m, n)
		}
	}
}

func TestState(t *testing.T) {
	a := wave.NewGenerator(chipmodel.MOS8580)
	src := wave.NewGenerator(chipmodel.MOS8580)
	setFreq(a, 0x2345)
	setPW(a, 0x400)
	a.WriteControl(wave.ControlNoise|wave.ControlPulse, src)
	for i := 0; i < 10000; i++ {
		a.Clock()
		a.SetOutput(src)
	}

	b := wave.NewGenerator(chipmodel.MOS8580)
	setFreq(b, 0x2345)
	setPW(b, 0x400)
	b.WriteControl(wave.ControlNoise|wave.ControlPulse, src)
	b.SetState(a.State())

	test.ExpectEquality(t, b.State(), a.State())

	for i := 0; i < 10000; i++ {
		a.Clock()
		a.SetOutput(src)
		b.Clock()
		b.SetOutput(src)
	}
	test.ExpectEquality(t, b.State(), a.State())
}

func TestCombinedTables(t *testing.T) {
	triangle := func(phase int) uint16 {
		if phase&0x800 != 0 {
			phase ^= 0xfff
		}
		return uint16(phase<<1) & 0xffe
	}

	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		tbl := wave.TablesFor(m)
		test.ExpectEquality(t, tbl.Model, m)
		test.ExpectEquality(t, len(tbl.DAC), wave.TableLen)

		for p := 0; p < wave.TableLen; p++ {
			test.DemandEquality(t, tbl.Wave[1][p], triangle(p), m, p)
			test.DemandEquality(t, tbl.Wave[2][p], uint16(p), m, p)

			// combined waveforms can only output bits that are set in one of
			// the selected waveforms
			test.DemandEquality(t, tbl.Wave[3][p]&^uint16(p), uint16(0), m, p)
			test.DemandEquality(t, tbl.Wave[5][p]&^triangle(p), uint16(0), m, p)
			test.DemandEquality(t, tbl.Wave[6][p]&^uint16(p), uint16(0), m, p)
			test.DemandEquality(t, tbl.Wave[7][p]&^uint16(p), uint16(0), m, p)
		}

		// the tables are shared
		test.ExpectEquality(t, wave.TablesFor(m), tbl)

		// building the tables again gives the same values
		a := wave.BuildTables(m)
		b := wave.BuildTables(m)
		test.ExpectSuccess(t, a != b && a != tbl, m)
		test.ExpectSuccess(t, reflect.DeepEqual(a, b), m)
		test.ExpectSuccess(t, reflect.DeepEqual(a, tbl), m)
	}
}
