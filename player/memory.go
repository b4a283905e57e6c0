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

package player

import (
	"github.com/jetsetilly/gophersid/hardware/sid"
)

// memory locations of interest
const (
	addrProcessorPort = 0x0001

	addrIRQVector       = 0x0314
	addrHardwareIRQ     = 0xfffe
	addrRasterControl   = 0xd011
	addrRasterLine      = 0xd012
	addrCIATimerALo     = 0xdc04
	addrCIATimerAHi     = 0xdc05
	addrSIDOrigin       = 0xd400
	addrSIDMemtop       = 0xd7ff
	addrKernalIRQReturn = 0xea31
	addrKernalIRQExit   = 0xea81
)

// memory implements the go6502 cpu.Memory interface. The SID is visible at
// 0xd400 to 0xd7ff, mirrored every 32 bytes, whenever the processor port
// selects the I/O area.
type memory struct {
	ram [0x10000]uint8
	sid *sid.SID
}

func (m *memory) reset() {
	for i := range m.ram {
		m.ram[i] = 0
	}
	m.ram[addrProcessorPort] = 0x37
}

// the I/O area is visible when CHAREN is set and at least one of LORAM and
// HIRAM is set
func (m *memory) ioVisible() bool {
	p := m.ram[addrProcessorPort]
	return p&0x04 != 0 && p&0x03 != 0
}

// the kernal ROM is visible unless the lower three bits of the processor port
// are 0b101
func (m *memory) kernalVisible() bool {
	return m.ram[addrProcessorPort]&0x07 != 0x05
}

func (m *memory) isSID(addr uint16) bool {
	return addr >= addrSIDOrigin && addr <= addrSIDMemtop && m.ioVisible()
}

// the raster line is advanced by one for every instruction. the high bit of
// the line is in the control register and the line wraps at 312
func (m *memory) stepRaster() {
	m.ram[addrRasterLine]++
	hi := m.ram[addrRasterControl]&0x80 != 0
	if m.ram[addrRasterLine] == 0 || (hi && m.ram[addrRasterLine] >= 0x38) {
		m.ram[addrRasterControl] ^= 0x80
		m.ram[addrRasterLine] = 0
	}
}

// ciaLatch returns the value of the CIA 1 timer A latch.
func (m *memory) ciaLatch() int {
	return int(m.ram[addrCIATimerAHi])<<8 | int(m.ram[addrCIATimerALo])
}

// LoadByte implements the cpu.Memory interface.
func (m *memory) LoadByte(addr uint16) byte {
	if m.isSID(addr) {
		return m.sid.Read(uint8(addr) & sid.AddressMask)
	}
	return m.ram[addr]
}

// LoadBytes implements the cpu.Memory interface.
func (m *memory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.LoadByte(addr + uint16(i))
	}
}

// LoadAddress implements the cpu.Memory interface. An address that straddles
// a page boundary has its high byte read from the start of the same page, as
// happens on an NMOS 6502.
func (m *memory) LoadAddress(addr uint16) uint16 {
	if addr&0xff == 0xff {
		return uint16(m.ram[addr]) | uint16(m.ram[addr-0xff])<<8
	}
	return uint16(m.ram[addr]) | uint16(m.ram[addr+1])<<8
}

// StoreByte implements the cpu.Memory interface.
func (m *memory) StoreByte(addr uint16, v byte) {
	if m.isSID(addr) {
		m.sid.Write(uint8(addr)&sid.AddressMask, v)
		return
	}
	m.ram[addr] = v
}

// StoreBytes implements the cpu.Memory interface.
func (m *memory) StoreBytes(addr uint16, b []byte) {
	for i := range b {
		m.StoreByte(addr+uint16(i), b[i])
	}
}

// StoreAddress implements the cpu.Memory interface.
func (m *memory) StoreAddress(addr uint16, v uint16) {
	m.ram[addr] = byte(v)
	if addr&0xff == 0xff {
		m.ram[addr-0xff] = byte(v >> 8)
	} else {
		m.ram[addr+1] = byte(v >> 8)
	}
}
