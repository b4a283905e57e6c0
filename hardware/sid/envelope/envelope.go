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

package envelope

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/dac"
)

// Phase of the ADSR state machine.
type Phase uint8

// List of valid Phase values.
const (
	Attack Phase = iota
	Decay
	Sustain
	Release
)

func (p Phase) String() string {
	switch p {
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	}
	return "unknown"
}

// the rate counter is 15 bits wide
const rateCounterMask = 0x7fff

// RatePeriods is the number of cycles between envelope steps for each of the
// 16 attack, decay and release settings. The decay and release rates use the
// same periods as attack, the apparent three times slower decay and release
// comes from the exponential counter.
var RatePeriods = [16]uint16{
	9,     //   2ms*1.0MHz/256 =     7.81
	32,    //   8ms*1.0MHz/256 =    31.25
	63,    //  16ms*1.0MHz/256 =    62.50
	95,    //  24ms*1.0MHz/256 =    93.75
	149,   //  38ms*1.0MHz/256 =   148.44
	220,   //  56ms*1.0MHz/256 =   218.75
	267,   //  68ms*1.0MHz/256 =   265.63
	313,   //  80ms*1.0MHz/256 =   312.50
	392,   // 100ms*1.0MHz/256 =   390.63
	977,   // 250ms*1.0MHz/256 =   976.56
	1954,  // 500ms*1.0MHz/256 =  1953.13
	3126,  // 800ms*1.0MHz/256 =  3125.00
	3907,  //   1 s*1.0MHz/256 =  3906.25
	11720, //   3 s*1.0MHz/256 = 11718.75
	19532, //   5 s*1.0MHz/256 = 19531.25
	31251, //   8 s*1.0MHz/256 = 31250.00
}

// SustainLevels maps the 4 bit sustain register to the envelope counter value
// at which decay stops.
var SustainLevels = [16]uint8{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
}

var dacTables [chipmodel.NumModels]struct {
	once sync.Once
	dac  []uint16
}

// DAC returns the shared 8 bit envelope DAC table for the chip model.
func DAC(model chipmodel.Model) []uint16 {
	d := &dacTables[model]
	d.once.Do(func() {
		if model == chipmodel.MOS6581 {
			d.dac = dac.Build(8, dac.Ratio6581, dac.Term6581)
		} else {
			d.dac = dac.Build(8, dac.Ratio8580, dac.Term8580)
		}
	})
	return d.dac
}

// Generator is the envelope generator of a single SID voice. The 8 bit
// envelope counter is stepped at a rate decided by the attack, decay and
// release registers. The decay and release phases additionally divide the rate
// with a divisor that changes at fixed counter levels, approximating an
// exponential curve.
type Generator struct {
	dac []uint16

	// registers
	attack  uint8
	decay   uint8
	sustain uint8
	release uint8
	gate    bool

	state Phase

	rateCounter uint16
	ratePeriod  uint16

	exponentialCounter       uint8
	exponentialCounterPeriod uint8

	envelopeCounter uint8

	// the value of the envelope counter as seen by reading ENV3. sampled at
	// the start of the clock
	env3 uint8

	// the counter is frozen at zero until the next attack
	holdZero bool

	// the envelope decrement is delayed one cycle when the exponential
	// counter period is not one
	envelopePipeline uint8
}

// NewGenerator is the preferred method of initialisation for the Generator
// type.
func NewGenerator(model chipmodel.Model) *Generator {
	g := &Generator{}
	g.SetChipModel(model)
	g.Reset()
	return g
}

// SetChipModel changes the DAC used for the envelope output.
func (g *Generator) SetChipModel(model chipmodel.Model) {
	g.dac = DAC(model)
}

// Reset the generator to its power-up state.
func (g *Generator) Reset() {
	g.envelopeCounter = 0
	g.envelopePipeline = 0
	g.env3 = 0
	g.attack = 0
	g.decay = 0
	g.sustain = 0
	g.release = 0
	g.gate = false
	g.rateCounter = 0
	g.exponentialCounter = 0
	g.exponentialCounterPeriod = 1
	g.state = Release
	g.ratePeriod = RatePeriods[g.release]
	g.holdZero = true
}

func (g *Generator) String() string {
	return fmt.Sprintf("%s env=%02x a=%x d=%x s=%x r=%x", g.state, g.envelopeCounter,
		g.attack, g.decay, g.sustain, g.release)
}

// WriteControl handles the gate bit of the voice control register. The rate
// counter is never reset so there is a delay before the envelope starts
// counting.
func (g *Generator) WriteControl(v uint8) {
	gateNext := v&0x01 == 0x01

	if !g.gate && gateNext {
		// attack unlocks the zero freeze and aborts any pipelined decrement
		g.state = Attack
		g.ratePeriod = RatePeriods[g.attack]
		g.holdZero = false
		g.envelopePipeline = 0
	} else if g.gate && !gateNext {
		g.state = Release
		g.ratePeriod = RatePeriods[g.release]
	}

	g.gate = gateNext
}

// WriteAttackDecay sets the attack (high nibble) and decay (low nibble) rates.
func (g *Generator) WriteAttackDecay(v uint8) {
	g.attack = (v >> 4) & 0x0f
	g.decay = v & 0x0f
	switch g.state {
	case Attack:
		g.ratePeriod = RatePeriods[g.attack]
	case Decay, Sustain:
		g.ratePeriod = RatePeriods[g.decay]
	}
}

// WriteSustainRelease sets the sustain level (high nibble) and release rate
// (low nibble).
func (g *Generator) WriteSustainRelease(v uint8) {
	g.sustain = (v >> 4) & 0x0f
	g.release = v & 0x0f
	switch g.state {
	case Release:
		g.ratePeriod = RatePeriods[g.release]
	case Sustain:
		// a new sustain level restarts the decay
		if g.envelopeCounter != SustainLevels[g.sustain] {
			g.state = Decay
		}
	}
}

// Clock advances the envelope by one cycle.
func (g *Generator) Clock() {
	g.env3 = g.envelopeCounter

	if g.envelopePipeline > 0 {
		g.envelopeCounter--
		g.envelopePipeline = 0
		g.setExponentialCounter()
		g.checkSustain()
	}

	// ADSR delay bug. if the rate period is set below the current value of the
	// rate counter the counter continues counting until it wraps around at
	// 0x8000
	g.rateCounter++
	if g.rateCounter&0x8000 != 0 {
		g.rateCounter = (g.rateCounter + 1) & rateCounterMask
	}

	if g.rateCounter != g.ratePeriod {
		return
	}
	g.rateCounter = 0

	// the first step in the attack phase also resets the exponential counter
	if g.state != Attack {
		g.exponentialCounter++
		if g.exponentialCounter != g.exponentialCounterPeriod {
			return
		}
	}
	g.exponentialCounter = 0

	if g.holdZero {
		return
	}

	switch g.state {
	case Attack:
		// the counter can flip from 0xff to 0x00 by changing to release and
		// then back to attack. the counter is then frozen at zero
		g.envelopeCounter++
		if g.envelopeCounter == 0xff {
			g.state = Decay
			g.ratePeriod = RatePeriods[g.decay]
			g.checkSustain()
		}
	case Decay, Sustain:
		if g.envelopeCounter == SustainLevels[g.sustain] {
			g.state = Sustain
			return
		}
		if g.exponentialCounterPeriod != 1 {
			g.envelopePipeline = 1
			return
		}
		g.envelopeCounter--
		g.checkSustain()
	case Release:
		// the counter can flip from 0x00 to 0xff by changing to attack and
		// then back to release. the counter then continues counting down
		if g.exponentialCounterPeriod != 1 {
			g.envelopePipeline = 1
			return
		}
		g.envelopeCounter--
	}

	g.setExponentialCounter()
}

// ClockDelta advances the envelope by n cycles. Any pipelined envelope
// decrement from single cycle clocking is lost.
func (g *Generator) ClockDelta(n int) {
	if n <= 0 {
		return
	}

	// ADSR delay bug
	rateStep := int(g.ratePeriod) - int(g.rateCounter)
	if rateStep <= 0 {
		rateStep += rateCounterMask
	}

	for n > 0 {
		if n < rateStep {
			g.rateCounter += uint16(n)
			if g.rateCounter&0x8000 != 0 {
				g.rateCounter = (g.rateCounter + 1) & rateCounterMask
			}
			break
		}

		g.rateCounter = 0
		n -= rateStep
		rateStep = int(g.ratePeriod)

		if g.state != Attack {
			g.exponentialCounter++
			if g.exponentialCounter != g.exponentialCounterPeriod {
				continue
			}
		}
		g.exponentialCounter = 0

		if g.holdZero {
			continue
		}

		switch g.state {
		case Attack:
			g.envelopeCounter++
			if g.envelopeCounter == 0xff {
				g.state = Decay
				g.ratePeriod = RatePeriods[g.decay]
				rateStep = int(g.ratePeriod)
				g.checkSustain()
			}
		case Decay, Sustain:
			if g.envelopeCounter == SustainLevels[g.sustain] {
				g.state = Sustain
				continue
			}
			g.envelopeCounter--
			g.checkSustain()
		case Release:
			g.envelopeCounter--
		}

		g.setExponentialCounter()
	}

	g.env3 = g.envelopeCounter
}

// the decay phase becomes the sustain phase once the counter reaches the
// sustain level
func (g *Generator) checkSustain() {
	if g.state == Decay && g.envelopeCounter == SustainLevels[g.sustain] {
		g.state = Sustain
	}
}

// the exponential counter period changes when the envelope counter passes
// specific values
func (g *Generator) setExponentialCounter() {
	switch g.envelopeCounter {
	case 0xff:
		g.exponentialCounterPeriod = 1
	case 0x5d:
		g.exponentialCounterPeriod = 2
	case 0x36:
		g.exponentialCounterPeriod = 4
	case 0x1a:
		g.exponentialCounterPeriod = 8
	case 0x0e:
		g.exponentialCounterPeriod = 16
	case 0x06:
		g.exponentialCounterPeriod = 30
	case 0x00:
		// the counter is frozen once it reaches zero
		g.exponentialCounterPeriod = 1
		g.holdZero = true
	}
}

// Output returns the envelope counter after the envelope DAC.
func (g *Generator) Output() uint16 {
	return g.dac[g.envelopeCounter]
}

// Counter returns the value of the 8 bit envelope counter.
func (g *Generator) Counter() uint8 {
	return g.envelopeCounter
}

// ReadENV returns the value of the envelope counter as seen by reading the
// ENV3 register.
func (g *Generator) ReadENV() uint8 {
	return g.env3
}

// Phase returns the current phase of the ADSR state machine.
func (g *Generator) Phase() Phase {
	return g.state
}

// HoldZero returns true if the envelope counter is frozen at zero.
func (g *Generator) HoldZero() bool {
	return g.holdZero
}

// Gate returns the state of the gate bit.
func (g *Generator) Gate() bool {
	return g.gate
}
