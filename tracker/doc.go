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

// Package tracker keeps a history of the SID voice registers. It implements the
// sid.Tracker interface and records an entry every time the registers of a
// voice change. Each entry is decorated with a description of the waveform
// and the musical note nearest to the oscillator frequency.
//
// The history is used by the DUMP mode to print a tracker style listing of a
// tune.
package tracker
