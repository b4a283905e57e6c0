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

// Package extin decodes audio files for use as the signal on the EXT IN pin of
// the SID. WAV files are decoded with go-audio and MP3 files with go-mp3.
//
// Only the first channel of a multi-channel file is used. Samples are
// converted to signed 16 bit values and are resampled to the output rate of
// the player by simple decimation or repetition.
package extin
