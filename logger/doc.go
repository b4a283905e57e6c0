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

// Package logger is the central logging facility. Log entries are tagged and
// kept in a bounded list, with the oldest entries dropped as new entries are
// added. A repeated entry is folded into the previous entry with a repeat
// count rather than being added again.
//
// Every log request carries a Permission. The environment of an emulation
// implements Permission, so that a SID created for a background task (a
// snapshot comparison for example) can be prevented from filling the log.
//
// The package level functions operate on the central Logger. Other instances
// of Logger can be created with NewLogger(), which is useful for testing.
package logger
