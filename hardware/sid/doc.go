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

// Package sid is the top level of the SID emulation. It ties the three voices,
// the filter and the external filter together behind the register interface
// of the chip.
//
// The SID type is driven by the host: register writes and reads at the
// correct cycle, and calls to Clock() or ClockDelta() for every cycle that
// passes. Output() can be sampled at any point.
//
// The voices are kept in a fixed array. Hard sync and ring modulation relate
// the voices by index (see wave.SyncSource() and wave.SyncDest()) so no voice
// holds a reference to another.
//
// Lookup tables for a chip model are built on first use and shared by all SID
// instances using that model. A SID instance itself has no shared mutable
// state so any number of instances can be created and clocked independently.
// An instance must not be used from more than one goroutine at a time.
package sid
