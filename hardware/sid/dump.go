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

package sid

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gophersid/hardware/sid/voice"
)

// Dump writes a readable summary of the register values and the voice 3
// readback registers.
func (sid *SID) Dump(w io.Writer) error {
	s := strings.Builder{}

	var reg [3]VoiceRegisters
	for i := range reg {
		reg[i] = sid.VoiceRegisters(i)
	}

	s.WriteString(fmt.Sprintf("MODEL: %s\n", sid.model))
	s.WriteString(fmt.Sprintf("FREQ: %04x %04x %04x\n", reg[0].Freq, reg[1].Freq, reg[2].Freq))
	s.WriteString(fmt.Sprintf("PW: %03x %03x %03x\n", reg[0].PW, reg[1].PW, reg[2].PW))
	s.WriteString(fmt.Sprintf("CTRL: %02x %02x %02x\n", reg[0].Control, reg[1].Control, reg[2].Control))
	s.WriteString(fmt.Sprintf("ADSR: %02x%02x %02x%02x %02x%02x\n",
		reg[0].AttackDecay, reg[0].SustainRelease,
		reg[1].AttackDecay, reg[1].SustainRelease,
		reg[2].AttackDecay, reg[2].SustainRelease))

	fc, res, filt, mode, vol := sid.filter.Registers()
	s.WriteString(fmt.Sprintf("FC: %03x\n", fc))
	s.WriteString(fmt.Sprintf("RES: %x\n", res))
	s.WriteString(fmt.Sprintf("FILT: %x\n", filt))
	s.WriteString(fmt.Sprintf("MODE: %x\n", mode))
	s.WriteString(fmt.Sprintf("VOL: %x\n", vol))

	s.WriteString(fmt.Sprintf("ENV: %02x %02x %02x\n",
		sid.voices[0].Envelope.Counter(),
		sid.voices[1].Envelope.Counter(),
		sid.voices[2].Envelope.Counter()))
	s.WriteString(fmt.Sprintf("OSC3: %02x ENV3: %02x\n",
		sid.voices[2].Wave.ReadOSC(),
		sid.voices[2].Envelope.ReadENV()))

	_, err := io.WriteString(w, s.String())
	return err
}

// envelope phase of each voice, for the terse one line summary
func (sid *SID) phases() string {
	p := make([]string, len(sid.voices))
	for i := range sid.voices {
		p[i] = sid.voices[i].Envelope.Phase().String()
	}
	return strings.Join(p, " ")
}

// Summary returns a one line summary of the voice registers and envelopes.
func (sid *SID) Summary() string {
	s := strings.Builder{}
	for i := 0; i < len(sid.voices); i++ {
		if i > 0 {
			s.WriteString(" | ")
		}
		s.WriteString(fmt.Sprintf("%d: %04x %02x", i+1, sid.VoiceRegisters(i).Freq, sid.registers[i*voice.NumRegisters+voice.RegControl]))
	}
	s.WriteString(" | ")
	s.WriteString(sid.phases())
	return s.String()
}
