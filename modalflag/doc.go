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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given to the Modes type with NewArgs() and then Parse() is
// called with no arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RENDER", "PLAY", "DUMP", "INFO")
//	p, err := md.Parse()
//
// The first sub-mode is the default mode. After Parse() the Mode() function
// returns the selected mode, which is always upper case. Mode comparisons are
// case insensitive.
//
// A mode will normally have flags of its own. NewMode() starts a new layer of
// flags and sub-modes and a further call to Parse() processes the arguments
// that follow the mode selector:
//
//	switch md.Mode() {
//	case "RENDER":
//		md.NewMode()
//		duration := md.AddDuration("duration", time.Minute*3, "length of render")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseHelp:
//			return nil
//		case modalflag.ParseError:
//			return err
//		}
//		render(md.GetArg(0), *duration)
//	}
//
// Modes can be chained as deep as required. The Path() function returns the
// list of modes encountered so far, separated by a forward slash.
//
// Help messages are printed automatically by Parse() to the Output writer
// when the -help flag is given. The list of sub-modes and any text given to
// AdditionalHelp() is appended to the flag package's description of the
// flags.
package modalflag
