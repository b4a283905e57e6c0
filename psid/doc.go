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

// Package psid parses the PSID and RSID file formats. These files contain the
// 6502 machine code of a C64 tune together with a header describing where the
// code is loaded in memory and how it should be called.
//
// All header values are stored big endian. The exception is the load address
// embedded in the data when the header load address is zero, which is little
// endian like all other 6502 addresses.
//
// Only the fields needed to play a tune on a single SID are interpreted. The
// addresses of the second and third SID are parsed but are not used by the
// player.
package psid
