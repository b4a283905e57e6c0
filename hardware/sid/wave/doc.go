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

// Package wave implements the SID waveform generator. Each of the three voices
// has one generator, consisting of a 24 bit phase accumulator driven by a 16
// bit frequency register, a 12 bit pulse width comparator and a 23 bit noise
// shift register.
//
// The generator can output triangle, sawtooth, pulse and noise waveforms.
// Selecting more than one waveform does not produce the logical AND of the
// waveforms. Instead the output bits of the selected waveforms interfere with
// each other in the analog domain. This is modelled by precomputed tables,
// built once per chip model by simulating the interference for every phase of
// the accumulator. The tables are shared by all generators of the same model.
//
// The three generators form a ring: voice 1 syncs voice 2, voice 2 syncs voice
// 3 and voice 3 syncs voice 1. The ring is expressed with indices (see
// SyncSource() and SyncDest()) rather than with references between
// generators, so the generator that needs its source or destination is given
// it by the caller.
package wave
