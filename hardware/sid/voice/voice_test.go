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

package voice_test

import (
	"testing"

	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/voice"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
	"github.com/jetsetilly/gophersid/test"
)

func TestSilentEnvelope(t *testing.T) {
	for _, m := range []chipmodel.Model{chipmodel.MOS6581, chipmodel.MOS8580} {
		v := voice.NewVoice(m)
		src := wave.NewGenerator(m)
		v.Wave.WriteFreqHi(0x10)
		v.WriteControl(wave.ControlSawtooth, src)

		// the gate has never been set so the envelope is zero and the voice
		// is silent whatever the waveform
		for i := 0; i < 1000; i++ {
			v.Wave.Clock()
			v.Wave.SetOutput(src)
			v.Envelope.Clock()
			test.DemandEquality(t, v.Output(), 0, m, i)
		}
	}
}

func TestGate(t *testing.T) {
	v := voice.NewVoice(chipmodel.MOS8580)
	src := wave.NewGenerator(chipmodel.MOS8580)
	v.Envelope.WriteSustainRelease(0xf0)
	v.Wave.WritePWHi(0x08)

	// pulse with the test bit set holds the waveform output high
	v.WriteControl(wave.ControlPulse|wave.ControlTest|wave.ControlGate, src)
	test.ExpectSuccess(t, v.Envelope.Gate())
	test.ExpectEquality(t, v.Wave.Waveform(), uint16(0xfff))

	for i := 0; i < 3000; i++ {
		v.Wave.Clock()
		v.Wave.SetOutput(src)
		v.Envelope.Clock()
	}
	test.ExpectEquality(t, v.Envelope.Counter(), uint8(0xff))

	// full scale waveform at full volume
	test.ExpectEquality(t, v.Output(), (int(v.Wave.Output())-0x800)*int(v.Envelope.Output()))
	test.ExpectInequality(t, v.Output(), 0)

	v.WriteControl(wave.ControlPulse|wave.ControlTest, src)
	test.ExpectFailure(t, v.Envelope.Gate())
	test.ExpectEquality(t, v.Envelope.Phase().String(), "release")
}
