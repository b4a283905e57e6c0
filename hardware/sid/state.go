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
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/envelope"
	"github.com/jetsetilly/gophersid/hardware/sid/extfilter"
	"github.com/jetsetilly/gophersid/hardware/sid/filter"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
	"github.com/jetsetilly/gophersid/logger"
)

// VoiceState is the internal state of one voice.
type VoiceState struct {
	Wave     wave.State
	Envelope envelope.State
}

// State is the complete state of a SID. Writing the State returned by
// ReadState() to another SID makes that SID behave identically to the first.
type State struct {
	Model chipmodel.Model

	// register values as last written
	SIDRegister [NumRegisters]uint8

	BusValue      uint8
	BusValueTTL   int32
	WritePipeline uint8
	WriteAddress  uint8
	VoiceMask     uint8

	Voice     [wave.NumGenerators]VoiceState
	Filter    filter.State
	ExtFilter extfilter.State
}

// ReadState returns the state of the chip.
func (sid *SID) ReadState() State {
	s := State{
		Model:         sid.model,
		SIDRegister:   sid.registers,
		BusValue:      sid.busValue,
		BusValueTTL:   int32(sid.busValueTTL),
		WritePipeline: sid.writePipeline,
		WriteAddress:  sid.writeAddress,
		VoiceMask:     sid.voiceMask,
		Filter:        sid.filter.State(),
		ExtFilter:     sid.extFilter.State(),
	}

	for i := range sid.voices {
		s.Voice[i].Wave = sid.voices[i].Wave.State()
		s.Voice[i].Envelope = sid.voices[i].Envelope.State()
	}

	return s
}

// WriteState restores the state of the chip. The chip model is changed if
// necessary, which is the only reason an error is returned.
func (sid *SID) WriteState(s State) error {
	if s.Model != sid.model {
		if err := sid.SetChipModel(s.Model); err != nil {
			return err
		}
	}

	// restoring the registers is not a change worth tracking
	tracker := sid.tracker
	sid.tracker = nil
	defer func() {
		sid.tracker = tracker
	}()

	// registers first. writing the registers disturbs the internal state,
	// which is then overwritten
	sid.writePipeline = 0
	for addr := 0; addr < NumWritable; addr++ {
		sid.writeRegister(uint8(addr), s.SIDRegister[addr])
	}
	for addr := NumWritable; addr < NumRegisters; addr++ {
		sid.registers[addr] = s.SIDRegister[addr]
	}

	for i := range sid.voices {
		sid.voices[i].Wave.SetState(s.Voice[i].Wave)
		sid.voices[i].Envelope.SetState(s.Voice[i].Envelope)
	}

	sid.SetVoiceMask(s.VoiceMask)
	sid.filter.SetState(s.Filter)
	sid.extFilter.SetState(s.ExtFilter)

	sid.busValue = s.BusValue
	sid.busValueTTL = int(s.BusValueTTL)
	sid.writePipeline = s.WritePipeline & 0x01
	sid.writeAddress = s.WriteAddress & AddressMask

	logger.Logf(sid.env, "sid", "state restored (%s)", sid.model)

	return nil
}
