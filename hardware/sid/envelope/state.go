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

// State is the internal state of a Generator. The attack, decay, sustain and
// release values are restored by writing the registers.
type State struct {
	RateCounter              uint16
	RateCounterPeriod        uint16
	ExponentialCounter       uint8
	ExponentialCounterPeriod uint8
	EnvelopeCounter          uint8
	EnvelopeState            Phase
	HoldZero                 bool
	EnvelopePipeline         uint8
	Gate                     bool
	ENV3                     uint8
}

// State returns the internal state of the generator.
func (g *Generator) State() State {
	return State{
		RateCounter:              g.rateCounter,
		RateCounterPeriod:        g.ratePeriod,
		ExponentialCounter:       g.exponentialCounter,
		ExponentialCounterPeriod: g.exponentialCounterPeriod,
		EnvelopeCounter:          g.envelopeCounter,
		EnvelopeState:            g.state,
		HoldZero:                 g.holdZero,
		EnvelopePipeline:         g.envelopePipeline,
		Gate:                     g.gate,
		ENV3:                     g.env3,
	}
}

// SetState restores the internal state of the generator.
func (g *Generator) SetState(s State) {
	g.rateCounter = s.RateCounter & rateCounterMask
	g.ratePeriod = s.RateCounterPeriod
	g.exponentialCounter = s.ExponentialCounter
	g.exponentialCounterPeriod = s.ExponentialCounterPeriod
	if g.exponentialCounterPeriod == 0 {
		g.exponentialCounterPeriod = 1
	}
	g.envelopeCounter = s.EnvelopeCounter
	g.state = s.EnvelopeState
	if g.state > Release {
		g.state = Release
	}
	g.holdZero = s.HoldZero
	g.envelopePipeline = s.EnvelopePipeline
	g.gate = s.Gate
	g.env3 = s.ENV3
}
