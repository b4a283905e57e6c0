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

package snapshot

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/sid"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/envelope"
)

// Sentinal errors returned by Decode().
const (
	BadSize     = "snapshot: wrong size (%d bytes)"
	BadMagic    = "snapshot: not a SID snapshot"
	BadVersion  = "snapshot: unsupported version (%d)"
	BadChecksum = "snapshot: checksum mismatch"
	BadModel    = "snapshot: %v"
)

const (
	magic   = "GSID"
	version = 1

	headerSize = len(magic) + 1

	// size of the encoded state data
	voiceSize = 28 + 12
	dataSize  = 1 + sid.NumRegisters + 8 + 3*voiceSize + 11*4 + 2*4

	crcSize = 4
)

// Size is the length of an encoded snapshot.
const Size = headerSize + dataSize + crcSize

type encoder struct {
	b []byte
}

func (e *encoder) u8(v uint8) {
	e.b = append(e.b, v)
}

func (e *encoder) bool(v bool) {
	if v {
		e.b = append(e.b, 1)
	} else {
		e.b = append(e.b, 0)
	}
}

func (e *encoder) u16(v uint16) {
	e.b = binary.LittleEndian.AppendUint16(e.b, v)
}

func (e *encoder) u32(v uint32) {
	e.b = binary.LittleEndian.AppendUint32(e.b, v)
}

func (e *encoder) i32(v int32) {
	e.u32(uint32(v))
}

// Encode the SID state.
func Encode(s sid.State) []byte {
	e := &encoder{b: make([]byte, 0, Size)}

	e.b = append(e.b, magic...)
	e.u8(version)

	e.u8(uint8(s.Model))
	e.b = append(e.b, s.SIDRegister[:]...)
	e.u8(s.BusValue)
	e.i32(s.BusValueTTL)
	e.u8(s.WritePipeline)
	e.u8(s.WriteAddress)
	e.u8(s.VoiceMask)

	for _, v := range s.Voice {
		w := v.Wave
		e.u32(w.Accumulator)
		e.u32(w.ShiftRegister)
		e.i32(w.ShiftRegisterReset)
		e.u8(w.ShiftPipeline)
		e.u16(w.PulseOutput)
		e.i32(w.FloatingOutputTTL)
		e.u16(w.WaveformOutput)
		e.u16(w.NoiseOutput)
		e.u16(w.OSC3)
		e.u16(w.TriSawPipeline)
		e.bool(w.MSBRising)

		n := v.Envelope
		e.u16(n.RateCounter)
		e.u16(n.RateCounterPeriod)
		e.u8(n.ExponentialCounter)
		e.u8(n.ExponentialCounterPeriod)
		e.u8(n.EnvelopeCounter)
		e.u8(uint8(n.EnvelopeState))
		e.bool(n.HoldZero)
		e.u8(n.EnvelopePipeline)
		e.bool(n.Gate)
		e.u8(n.ENV3)
	}

	f := s.Filter
	for _, v := range []int32{f.V1, f.V2, f.V3, f.V4, f.Vhp, f.Vbp, f.VbpX, f.VbpVc, f.Vlp, f.VlpX, f.VlpVc} {
		e.i32(v)
	}

	e.i32(s.ExtFilter.Vlp)
	e.i32(s.ExtFilter.Vhp)

	e.u32(crc32.ChecksumIEEE(e.b[headerSize:]))

	return e.b
}

type decoder struct {
	b []byte
}

func (d *decoder) u8() uint8 {
	v := d.b[0]
	d.b = d.b[1:]
	return v
}

func (d *decoder) bool() bool {
	return d.u8() != 0
}

func (d *decoder) u16() uint16 {
	v := binary.LittleEndian.Uint16(d.b)
	d.b = d.b[2:]
	return v
}

func (d *decoder) u32() uint32 {
	v := binary.LittleEndian.Uint32(d.b)
	d.b = d.b[4:]
	return v
}

func (d *decoder) i32() int32 {
	return int32(d.u32())
}

// Decode a snapshot created by Encode().
func Decode(data []byte) (sid.State, error) {
	var s sid.State

	if len(data) != Size {
		return s, curated.Errorf(BadSize, len(data))
	}
	if string(data[:len(magic)]) != magic {
		return s, curated.Errorf(BadMagic)
	}
	if data[len(magic)] != version {
		return s, curated.Errorf(BadVersion, data[len(magic)])
	}

	crc := binary.LittleEndian.Uint32(data[headerSize+dataSize:])
	if crc != crc32.ChecksumIEEE(data[headerSize:headerSize+dataSize]) {
		return s, curated.Errorf(BadChecksum)
	}

	d := &decoder{b: data[headerSize : headerSize+dataSize]}

	s.Model = chipmodel.Model(d.u8())
	if !s.Model.Valid() {
		return sid.State{}, curated.Errorf(BadModel, curated.Errorf(chipmodel.UnknownModel, s.Model))
	}

	copy(s.SIDRegister[:], d.b[:sid.NumRegisters])
	d.b = d.b[sid.NumRegisters:]
	s.BusValue = d.u8()
	s.BusValueTTL = d.i32()
	s.WritePipeline = d.u8()
	s.WriteAddress = d.u8()
	s.VoiceMask = d.u8()

	for i := range s.Voice {
		w := &s.Voice[i].Wave
		w.Accumulator = d.u32()
		w.ShiftRegister = d.u32()
		w.ShiftRegisterReset = d.i32()
		w.ShiftPipeline = d.u8()
		w.PulseOutput = d.u16()
		w.FloatingOutputTTL = d.i32()
		w.WaveformOutput = d.u16()
		w.NoiseOutput = d.u16()
		w.OSC3 = d.u16()
		w.TriSawPipeline = d.u16()
		w.MSBRising = d.bool()

		n := &s.Voice[i].Envelope
		n.RateCounter = d.u16()
		n.RateCounterPeriod = d.u16()
		n.ExponentialCounter = d.u8()
		n.ExponentialCounterPeriod = d.u8()
		n.EnvelopeCounter = d.u8()
		n.EnvelopeState = envelope.Phase(d.u8())
		n.HoldZero = d.bool()
		n.EnvelopePipeline = d.u8()
		n.Gate = d.bool()
		n.ENV3 = d.u8()
	}

	f := &s.Filter
	for _, v := range []*int32{&f.V1, &f.V2, &f.V3, &f.V4, &f.Vhp, &f.Vbp, &f.VbpX, &f.VbpVc, &f.Vlp, &f.VlpX, &f.VlpVc} {
		*v = d.i32()
	}

	s.ExtFilter.Vlp = d.i32()
	s.ExtFilter.Vhp = d.i32()

	return s, nil
}
