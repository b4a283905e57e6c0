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

// Package envelope implements the SID envelope generator.
//
// The envelope is an 8 bit counter driven through four phases. A rising gate
// bit starts the attack phase, during which the counter counts up to 0xff.
// The decay phase follows and counts down to the sustain level, where the
// counter holds for as long as the gate bit is set. A falling gate bit starts
// the release phase from any other phase and the counter counts down to zero,
// where it is frozen until the next attack.
//
// The speed of counting is set by a 15 bit rate counter compared against a
// period from the RatePeriods table. During decay and release an additional
// exponential counter divides the rate, with the divisor depending on the
// current level of the envelope counter.
package envelope
