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

	"github.com/jetsetilly/gophersid/hardware/sid/filter"
	"github.com/jetsetilly/gophersid/hardware/sid/voice"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
)

// Register addresses relative to the base address of the chip. The voice
// registers repeat every seven bytes, starting at zero for voice 1.
const (
	RegVoice1   = 0x00
	RegVoice2   = 0x07
	RegVoice3   = 0x0e
	RegFCLo     = 0x15
	RegFCHi     = 0x16
	RegResFilt  = 0x17
	RegModeVol  = 0x18
	RegPotX     = 0x19
	RegPotY     = 0x1a
	RegOSC3     = 0x1b
	RegENV3     = 0x1c
	NumWritable = 0x19

	// the address lines decode 32 registers
	NumRegisters = 0x20
	AddressMask  = NumRegisters - 1
)

// VoiceRegisters are the register values of one voice.
type VoiceRegisters struct {
	Freq           uint16
	PW             uint16
	Control        uint8
	AttackDecay    uint8
	SustainRelease uint8
}

func (reg VoiceRegisters) String() string {
	return fmt.Sprintf("freq=%04x pw=%03x ctrl=%02x ad=%02x sr=%02x",
		reg.Freq, reg.PW, reg.Control, reg.AttackDecay, reg.SustainRelease)
}

// VoiceRegisters returns the register values of the voice as last written.
// The voice is numbered from zero.
func (sid *SID) VoiceRegisters(v int) VoiceRegisters {
	b := v * voice.NumRegisters
	return VoiceRegisters{
		Freq:           uint16(sid.registers[b+voice.RegFreqHi])<<8 | uint16(sid.registers[b+voice.RegFreqLo]),
		PW:             uint16(sid.registers[b+voice.RegPWHi]&0x0f)<<8 | uint16(sid.registers[b+voice.RegPWLo]),
		Control:        sid.registers[b+voice.RegControl],
		AttackDecay:    sid.registers[b+voice.RegAttackDecay],
		SustainRelease: sid.registers[b+voice.RegSustainRelease],
	}
}

// write the value to the register and forward it to the voice or the filter.
// invalid addresses are ignored
func (sid *SID) writeRegister(addr uint8, v uint8) {
	if addr >= NumWritable {
		return
	}

	sid.registers[addr] = v

	if addr < RegFCLo {
		idx := int(addr) / voice.NumRegisters
		vc := &sid.voices[idx]

		switch int(addr) % voice.NumRegisters {
		case voice.RegFreqLo:
			vc.Wave.WriteFreqLo(v)
		case voice.RegFreqHi:
			vc.Wave.WriteFreqHi(v)
		case voice.RegPWLo:
			vc.Wave.WritePWLo(v)
		case voice.RegPWHi:
			vc.Wave.WritePWHi(v)
		case voice.RegControl:
			vc.WriteControl(v, &sid.voices[wave.SyncSource(idx)].Wave)
		case voice.RegAttackDecay:
			vc.Envelope.WriteAttackDecay(v)
		case voice.RegSustainRelease:
			vc.Envelope.WriteSustainRelease(v)
		}

		if sid.tracker != nil {
			sid.tracker.SIDTick(idx, sid.VoiceRegisters(idx))
		}

		return
	}

	switch addr {
	case RegFCLo:
		sid.filter.WriteFcLo(v)
	case RegFCHi:
		sid.filter.WriteFcHi(v)
	case RegResFilt:
		sid.filter.WriteResFilt(v)
	case RegModeVol:
		sid.filter.WriteModeVol(v)
	}
}

// Filter returns the filter of the chip.
func (sid *SID) Filter() *filter.Filter {
	return sid.filter
}

// Voice returns the voice, numbered from zero.
func (sid *SID) Voice(v int) *voice.Voice {
	return &sid.voices[v]
}
