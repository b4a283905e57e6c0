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

// Package voice combines a waveform generator with an envelope generator to
// make one of the three SID voices. The output of a voice is the waveform
// output multiplied by the envelope output, after both have been through their
// DACs.
package voice

import (
	"fmt"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/envelope"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
)

// Register offsets within the seven registers of a voice.
const (
	RegFreqLo = iota
	RegFreqHi
	RegPWLo
	RegPWHi
	RegControl
	RegAttackDecay
	RegSustainRelease
	NumRegisters
)

// Voice is a single SID voice. The zero value is not usable, use NewVoice() or
// call SetChipModel() and Reset() first.
type Voice struct {
	Wave     wave.Generator
	Envelope envelope.Generator

	// the waveform DAC output that corresponds to zero volts at the envelope
	// multiplier
	waveZero int
}

// NewVoice is the preferred method of initialisation for the Voice type.
func NewVoice(model chipmodel.Model) *Voice {
	v := &Voice{}
	v.SetChipModel(model)
	v.Reset()
	return v
}

// SetChipModel changes the chip model of the voice.
func (v *Voice) SetChipModel(model chipmodel.Model) {
	v.Wave.SetChipModel(model)
	v.Envelope.SetChipModel(model)

	// the waveform DAC of the 6581 has a DC offset. measured on a real chip to
	// be 0x380. there is no offset on the 8580
	if model == chipmodel.MOS6581 {
		v.waveZero = 0x380
	} else {
		v.waveZero = 0x800
	}
}

// Reset the voice to its power-up state.
func (v *Voice) Reset() {
	v.Wave.Reset()
	v.Envelope.Reset()
}

func (v *Voice) String() string {
	return fmt.Sprintf("%s %s", v.Wave.String(), v.Envelope.String())
}

// WriteControl writes the control register to both generators. The source
// argument is the sync source of this voice's waveform generator.
func (v *Voice) WriteControl(value uint8, source *wave.Generator) {
	v.Wave.WriteControl(value, source)
	v.Envelope.WriteControl(value)
}

// Output returns the amplitude modulated output of the voice. The range of the
// value is approximately 20 bits, signed.
func (v *Voice) Output() int {
	return (int(v.Wave.Output()) - v.waveZero) * int(v.Envelope.Output())
}
