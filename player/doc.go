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

// Package player runs the 6502 code of a PSID tune and clocks a SID with the
// register writes it makes. It is a minimal C64: a flat 64K RAM with the SID
// mapped into the I/O area, the latch of CIA 1 timer A and a free running
// raster register. There are no interrupts. The init routine is called once
// for the selected song and the play routine is called at the start of every
// frame.
//
// The 6502 routines complete instantaneously. All register writes made
// during a routine arrive at the SID on the same cycle.
//
// Samples are produced at the rate given by the sid.samplerate preference.
// The number of SID cycles between samples is tracked as a 16.16 fixed point
// value, so the average sample rate is exact over time.
package player
